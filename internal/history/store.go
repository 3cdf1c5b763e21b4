// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/churnscope/churnscope/internal/churn"
)

// Key prefixes for BadgerDB storage
const (
	entryKeyPrefix = "history:"
	idKeyPrefix    = "history_id:"
)

// ErrEntryNotFound indicates no history entry exists for the given id.
var ErrEntryNotFound = errors.New("history entry not found")

// Entry is one persisted scoring outcome. Explanation and Recommendation
// are nil for plain predictions.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// CreatedAt is when the entry was stored, UTC.
	CreatedAt time.Time `json:"created_at"`

	// Record is the scored customer record.
	Record churn.CustomerRecord `json:"record"`

	// Prediction is the scoring outcome.
	Prediction *churn.PredictionResult `json:"prediction"`

	// Explanation is the feature attribution, when requested.
	Explanation *churn.ExplanationResult `json:"explanation,omitempty"`

	// Recommendation is the retention plan, when requested.
	Recommendation *churn.Recommendation `json:"recommendation,omitempty"`
}

// Store is a BadgerDB-backed prediction history.
type Store struct {
	db *badger.DB
}

// NewStore wraps an open BadgerDB handle. The caller owns the handle and
// closes it on shutdown.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Save persists an entry, assigning its ID and timestamp. The entry is
// mutated in place so the caller sees the assigned values.
func (s *Store) Save(ctx context.Context, e *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	key := entryKey(e.CreatedAt, e.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set history entry: %w", err)
		}
		// Secondary key for direct lookup by id.
		if err := txn.Set([]byte(idKeyPrefix+e.ID), key); err != nil {
			return fmt.Errorf("set history id mapping: %w", err)
		}
		return nil
	})
}

// List returns up to limit entries, newest first. A non-positive limit
// returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []*Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(entryKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the last possible entry key, then walk backwards.
		seek := append([]byte(entryKeyPrefix), 0xff)
		for it.Seek(seek); it.Valid(); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode history entry: %w", err)
			}
			entries = append(entries, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Get retrieves an entry by id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("get history id mapping: %w", err)
		}

		var key []byte
		if err := item.Value(func(val []byte) error {
			key = append([]byte{}, val...)
			return nil
		}); err != nil {
			return err
		}

		item, err = txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("get history entry: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry by id. Deleting an absent entry is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get history id mapping: %w", err)
		}

		var key []byte
		if err := item.Value(func(val []byte) error {
			key = append([]byte{}, val...)
			return nil
		}); err != nil {
			return err
		}

		if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete history entry: %w", err)
		}
		if err := txn.Delete([]byte(idKeyPrefix + id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete history id mapping: %w", err)
		}
		return nil
	})
}

// entryKey builds a timestamp-sorted key. Nanosecond precision keeps keys
// unique enough in practice; the uuid suffix breaks remaining ties.
func entryKey(ts time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", entryKeyPrefix, ts.UnixNano(), id))
}
