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


package equilex

import (
	"log/slog"

	"github.com/equilex/equilex/dictionary"
	"github.com/equilex/equilex/pipeline"
	"github.com/equilex/equilex/recompute"
	"github.com/equilex/equilex/segment"
	"github.com/equilex/equilex/storage"
	"github.com/equilex/equilex/storage/badger"
)

// Database bundles a store with the collaborators needed to run the
// matching pipeline. It is the module's main entry point.
type Database struct {
	store     storage.Store
	segmenter segment.Segmenter
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	segmenter segment.Segmenter
	logger    *slog.Logger
}

// WithSegmenter replaces the built-in naive segmenter, typically with a
// client for a real linguistic pipeline.
func WithSegmenter(seg segment.Segmenter) DatabaseOption {
	return func(o *databaseOptions) {
		o.segmenter = seg
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens (or creates) a database at the given path.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	store, err := badger.NewStore(filePath)
	if err != nil {
		return nil, err
	}
	return newDatabase(store, opts...)
}

// NewMemoryDatabase creates an ephemeral in-memory database, useful for
// tests and one-off runs.
func NewMemoryDatabase(opts ...DatabaseOption) (*Database, error) {
	store, err := badger.NewMemoryStore()
	if err != nil {
		return nil, err
	}
	return newDatabase(store, opts...)
}

func newDatabase(store storage.Store, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.segmenter == nil {
		seg, err := segment.NewNaive()
		if err != nil {
			store.Close()
			return nil, err
		}
		options.segmenter = seg
	}
	return &Database{
		store:     store,
		segmenter: options.segmenter,
		logger:    options.logger,
	}, nil
}

// Close releases the underlying store.
func (db *Database) Close() error {
	return db.store.Close()
}

// Store exposes the underlying repositories.
func (db *Database) Store() storage.Store {
	return db.store
}

// NewPipeline creates a document processing pipeline over this database.
// The caller owns it and must call Release.
func (db *Database) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(db.store, db.segmenter,
		append([]pipeline.Option{pipeline.WithLogger(db.logger)}, opts...)...)
}

// NewSyncer creates a dictionary CSV syncer over this database.
func (db *Database) NewSyncer() *dictionary.Syncer {
	return dictionary.NewSyncer(db.store, db.store)
}

// NewRecomputer creates a corpus-wide aggregate recomputer.
func (db *Database) NewRecomputer(opts ...recompute.Option) (*recompute.Recomputer, error) {
	return recompute.New(db.store,
		append([]recompute.Option{recompute.WithLogger(db.logger)}, opts...)...)
}
