// Copyright 2025 Equilex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recompute

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/equilex/equilex/aggregate"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// Summary reports the outcome of one full recompute run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    []core.ID
	Elapsed   time.Duration
}

// Recomputer re-runs aggregation for every stored document. Used after
// dictionary syncs or override edits to bring the derived aggregates back
// in line with the evidences.
type Recomputer struct {
	store          storage.Store
	aggregator     *aggregate.Aggregator
	maxRetries     int
	retryBaseDelay time.Duration
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Recomputer.
type Option func(*Recomputer)

// WithRetries sets the per-document retry policy.
// Defaults: 3 attempts, 500ms base delay.
func WithRetries(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Recomputer) {
		r.maxRetries = maxAttempts
		r.retryBaseDelay = baseDelay
	}
}

// WithProgress enables progress reporting to the given writer every
// interval documents.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Recomputer) {
		r.progressWriter = w
		r.reportInterval = interval
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recomputer) {
		r.logger = logger
	}
}

// New creates a Recomputer over the given store.
func New(store storage.Store, opts ...Option) (*Recomputer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	r := &Recomputer{
		store:          store,
		maxRetries:     3,
		retryBaseDelay: 500 * time.Millisecond,
		reportInterval: 10,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.aggregator = aggregate.New(store, aggregate.WithLogger(r.logger))
	return r, nil
}

// Run recomputes aggregates for all documents, retrying transient failures
// per document. A document that still fails after all attempts is reported
// in the summary and the run continues.
func (r *Recomputer) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()

	docs, err := r.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	var tracker *ProgressTracker
	if r.progressWriter != nil {
		tracker = NewProgressTracker(r.progressWriter, len(docs), r.reportInterval)
		tracker.Start()
	}

	summary := &Summary{Total: len(docs)}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docID := doc.Id
		err := RetryWithBackoff(ctx, func() error {
			_, err := r.aggregator.RecomputeDoc(ctx, docID)
			return err
		}, r.maxRetries, r.retryBaseDelay)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			r.logger.Error("recompute failed for document",
				"doc_id", docID, "doc_name", doc.Name, "err", err)
			summary.Failed = append(summary.Failed, docID)
		} else {
			summary.Succeeded++
		}

		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}
	summary.Elapsed = time.Since(started)
	r.logger.Info("recompute run finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", len(summary.Failed),
		"elapsed", summary.Elapsed)
	return summary, nil
}
