package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// EvidenceRepository implements storage.EvidenceRepository for BadgerDB.
//
// Evidence IDs are content-derived, so the same detection re-inserted is a
// skip, not a duplicate. That makes document reprocessing idempotent at the
// storage level.
type EvidenceRepository struct {
	backend *Backend
}

var _ storage.EvidenceRepository = (*EvidenceRepository)(nil)

// NewEvidenceRepository creates a new EvidenceRepository.
func NewEvidenceRepository(backend *Backend) *EvidenceRepository {
	return &EvidenceRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *EvidenceRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EvidenceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertEvidences stores evidences, skipping any whose ID already exists.
// Returns the number actually added.
func (r *EvidenceRepository) InsertEvidences(ctx context.Context, evidences ...*core.Evidence) (int, error) {
	added := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, ev := range evidences {
			if err := core.ValidateEvidence(ev); err != nil {
				return err
			}
			if ev.Id == 0 {
				ev.Id = core.EvidenceID(ev.DocName, ev.ConceptID, ev.Snippet)
			}

			key := makeEvidenceKey(ev.DocID, ev.Id)
			if _, err := tx.Get(key); err == nil {
				continue // already recorded
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			if ev.CreatedAt.IsZero() {
				ev.CreatedAt = time.Now().UTC()
			}
			if err := tx.Set(key, storage.MarshalEvidence(ev)); err != nil {
				return err
			}
			added++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return added, nil
}

// GetEvidencesByDoc returns all evidences recorded for a document.
func (r *EvidenceRepository) GetEvidencesByDoc(ctx context.Context, docID core.ID) ([]*core.Evidence, error) {
	var results []*core.Evidence
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEvidenceDocPrefix(docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				ev, err := storage.UnmarshalEvidence(val)
				if err != nil {
					return err
				}
				results = append(results, ev)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return results, err
}

// CountEvidencesByDoc returns the number of evidences for a document.
func (r *EvidenceRepository) CountEvidencesByDoc(ctx context.Context, docID core.ID) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeEvidenceDocPrefix(docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteEvidencesByDoc removes all evidences for a document.
// Returns the number removed.
func (r *EvidenceRepository) DeleteEvidencesByDoc(ctx context.Context, docID core.ID) (int, error) {
	removed := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeEvidenceDocPrefix(docID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			removed++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return removed, nil
}
