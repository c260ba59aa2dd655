package badger

import (
	"context"
	"errors"

	"github.com/equilex/equilex/storage"
)

// Store combines every repository over one Backend and implements
// storage.Store.
type Store struct {
	*DocumentRepository
	*DictionaryRepository
	*GroupRepository
	*EvidenceRepository
	*AggregateRepository

	backend *Backend
}

var _ storage.Store = (*Store)(nil)

// NewStore opens a BadgerDB-backed store at the given path.
func NewStore(path string) (storage.Store, error) {
	return newStore(path, false)
}

// NewMemoryStore creates an in-memory store for testing.
func NewMemoryStore() (storage.Store, error) {
	return newStore("", true)
}

func newStore(path string, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	docs, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Store{
		DocumentRepository:   docs,
		DictionaryRepository: NewDictionaryRepository(backend),
		GroupRepository:      NewGroupRepository(backend),
		EvidenceRepository:   NewEvidenceRepository(backend),
		AggregateRepository:  NewAggregateRepository(backend),
		backend:              backend,
	}, nil
}

// WithTransaction delegates to the backend.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// Close releases every repository and closes the underlying database.
func (s *Store) Close() error {
	return errors.Join(
		s.DocumentRepository.Close(),
		s.DictionaryRepository.Close(),
		s.GroupRepository.Close(),
		s.EvidenceRepository.Close(),
		s.AggregateRepository.Close(),
		s.backend.Close(),
	)
}
