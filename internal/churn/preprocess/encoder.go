// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package preprocess

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/churnscope/churnscope/internal/churn"
)

// CategoryEncoder is a fixed, total bijection between category labels and
// small integer indices, captured at training time. The class list is the
// serialized form; the reverse index is rebuilt on load so the mapping never
// depends on map iteration order.
type CategoryEncoder struct {
	feature string
	classes []string
	index   map[string]int
}

// NewCategoryEncoder builds an encoder for the named feature from its
// ordered class list.
func NewCategoryEncoder(feature string, classes []string) *CategoryEncoder {
	e := &CategoryEncoder{
		feature: feature,
		classes: append([]string(nil), classes...),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range e.classes {
		e.index[c] = i
	}
	return e
}

// Feature returns the feature name this encoder applies to.
func (e *CategoryEncoder) Feature() string { return e.feature }

// Classes returns the ordered class list.
func (e *CategoryEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Index returns the integer code for a category label. A label the encoder
// was never fit on yields a ValidationError; it is never coerced to a
// default index.
func (e *CategoryEncoder) Index(label string) (int, error) {
	i, ok := e.index[label]
	if !ok {
		return 0, churn.NewValidationError(e.feature, label, "was not seen during training")
	}
	return i, nil
}

// Label returns the category label for an integer code.
func (e *CategoryEncoder) Label(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("encoder %q: index %d out of range [0,%d)", e.feature, i, len(e.classes))
	}
	return e.classes[i], nil
}

// encoderJSON is the serialized form of a CategoryEncoder.
type encoderJSON struct {
	Classes []string `json:"classes"`
}

// MarshalJSON serializes the ordered class list.
func (e *CategoryEncoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(encoderJSON{Classes: e.classes})
}

// UnmarshalJSON restores the bijection from the ordered class list. The
// feature name is assigned by the owning Encoders map after decoding.
func (e *CategoryEncoder) UnmarshalJSON(data []byte) error {
	var raw encoderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.classes = raw.Classes
	e.index = make(map[string]int, len(raw.Classes))
	for i, c := range raw.Classes {
		e.index[c] = i
	}
	return nil
}

// setFeature names the encoder after deserialization.
func (e *CategoryEncoder) setFeature(name string) { e.feature = name }

// Encoders maps categorical feature names to their fitted encoders.
type Encoders map[string]*CategoryEncoder

// UnmarshalJSON decodes the encoder map and stamps each encoder with its
// feature name so error messages identify the offending field.
func (m *Encoders) UnmarshalJSON(data []byte) error {
	raw := map[string]*CategoryEncoder{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, enc := range raw {
		enc.setFeature(name)
	}
	*m = raw
	return nil
}
