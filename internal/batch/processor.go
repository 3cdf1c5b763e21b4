// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package batch

import (
	"context"
	"math"
	"sync"

	"golang.org/x/time/rate"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/pipeline"
)

// DefaultWorkers bounds pool size when the caller passes zero.
const DefaultWorkers = 4

// Row is the scored outcome for one input record. Err is set when the
// record failed validation or scoring; the prediction fields are then zero.
type Row struct {
	// Index is the record's zero-based position in the input.
	Index int `json:"index"`

	// Record echoes the input record.
	Record churn.CustomerRecord `json:"record"`

	// Prediction is the predicted class, 0 stay or 1 churn.
	Prediction int `json:"prediction"`

	// ChurnProbabilityPct is the churn probability as a percentage
	// rounded to one decimal place.
	ChurnProbabilityPct float64 `json:"churn_probability_pct"`

	// RiskTier is the thresholded risk tier.
	RiskTier churn.RiskTier `json:"risk_level"`

	// Err is the scoring failure for this record, nil on success.
	Err error `json:"-"`

	// Error is the failure message carried on the wire.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	High      int `json:"high_risk"`
	Moderate  int `json:"moderate_risk"`
	Low       int `json:"low_risk"`
}

// Result is the full outcome of a batch run, rows in input order.
type Result struct {
	Rows    []Row   `json:"rows"`
	Summary Summary `json:"summary"`
}

// Processor scores batches of records against one pipeline.
type Processor struct {
	pipe    *pipeline.Pipeline
	workers int
	limiter *rate.Limiter
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithRateLimit caps scoring throughput at perSecond records per second.
// Zero or negative disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(p *Processor) {
		if perSecond > 0 {
			if burst < 1 {
				burst = 1
			}
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewProcessor builds a batch processor over the given pipeline.
func NewProcessor(pipe *pipeline.Pipeline, opts ...Option) *Processor {
	p := &Processor{pipe: pipe, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process scores all records and returns rows in input order. Individual
// record failures are recorded on their rows. The only errors returned are
// context cancellation and the unloaded-pipeline condition, both of which
// apply to the run as a whole.
func (p *Processor) Process(ctx context.Context, records []churn.CustomerRecord) (*Result, error) {
	if !p.pipe.Loaded() {
		return nil, churn.ErrModelNotLoaded
	}

	rows := make([]Row, len(records))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := p.workers
	if workers > len(records) {
		workers = len(records)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i] = p.scoreOne(ctx, i, records[i])
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range records {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}

	res := &Result{Rows: rows}
	res.Summary = summarize(rows)
	return res, nil
}

func (p *Processor) scoreOne(ctx context.Context, i int, rec churn.CustomerRecord) Row {
	row := Row{Index: i, Record: rec}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			row.Err = err
			row.Error = err.Error()
			return row
		}
	}

	pred, err := p.pipe.PredictChurn(rec)
	if err != nil {
		row.Err = err
		row.Error = err.Error()
		return row
	}

	row.Prediction = pred.Prediction
	row.ChurnProbabilityPct = roundPct(pred.ChurnProbability)
	row.RiskTier = pred.RiskTier
	return row
}

func summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for i := range rows {
		if rows[i].Err != nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		switch rows[i].RiskTier {
		case churn.RiskHigh:
			s.High++
		case churn.RiskModerate:
			s.Moderate++
		case churn.RiskLow:
			s.Low++
		}
	}
	return s
}

// roundPct converts a probability to a percentage with one decimal place.
func roundPct(p float64) float64 {
	return math.Round(p*1000) / 10
}
