package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// AggregateRepository implements storage.AggregateRepository for BadgerDB.
//
// Derived aggregates (scores, mentions, co-occurrences, indices) are rebuilt
// wholesale per document in one transaction. Manual overrides live under a
// separate prefix and survive rebuilds.
type AggregateRepository struct {
	backend *Backend
}

var _ storage.AggregateRepository = (*AggregateRepository)(nil)

// NewAggregateRepository creates a new AggregateRepository.
func NewAggregateRepository(backend *Backend) *AggregateRepository {
	return &AggregateRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *AggregateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *AggregateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SetOverride stores a manual level floor for a (document, concept) pair.
// Level 0 clears the override.
func (r *AggregateRepository) SetOverride(ctx context.Context, docID, conceptID core.ID, level int) error {
	if level != 0 {
		if err := core.ValidateLevel(level); err != nil {
			return err
		}
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeOverrideKey(docID, conceptID)
		if level == 0 {
			if err := tx.Delete(key); err != nil {
				return err
			}
			return tx.Commit()
		}
		ov := &core.DocConceptOverride{DocID: docID, ConceptID: conceptID, Level: level}
		if err := tx.Set(key, storage.MarshalOverride(ov)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetOverridesByDoc returns all manual overrides for a document.
func (r *AggregateRepository) GetOverridesByDoc(ctx context.Context, docID core.ID) ([]*core.DocConceptOverride, error) {
	var results []*core.DocConceptOverride
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeOverrideDocPrefix(docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				ov, err := storage.UnmarshalOverride(val)
				if err != nil {
					return err
				}
				results = append(results, ov)
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

// ReplaceDocAggregates atomically deletes every derived aggregate for the
// document and writes the given set. Overrides are not touched.
func (r *AggregateRepository) ReplaceDocAggregates(ctx context.Context, docID core.ID,
	scores []*core.DocConceptScore,
	mentions []*core.GroupMentionCount,
	cooccurrences []*core.ConceptGroupCooccurrence,
	indices *core.DocumentIndices) error {

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, prefix := range []string{conceptScorePrefix, groupMentionPrefix, cooccurrencePrefix} {
			if err := deleteByPrefix(tx, makeAggregateDocPrefix(prefix, docID)); err != nil {
				return err
			}
		}

		for _, score := range scores {
			score.DocID = docID
			key := makeConceptScoreKey(docID, score.ConceptID)
			if err := tx.Set(key, storage.MarshalConceptScore(score)); err != nil {
				return err
			}
		}
		for _, mention := range mentions {
			mention.DocID = docID
			key := makeGroupMentionKey(docID, mention.GroupID)
			if err := tx.Set(key, storage.MarshalGroupMention(mention)); err != nil {
				return err
			}
		}
		for _, co := range cooccurrences {
			co.DocID = docID
			key := makeCooccurrenceKey(docID, co.ConceptID, co.GroupID)
			if err := tx.Set(key, storage.MarshalCooccurrence(co)); err != nil {
				return err
			}
		}
		if indices != nil {
			indices.DocID = docID
			if err := tx.Set(makeIndicesKey(docID), storage.MarshalIndices(indices)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConceptScoresByDoc returns a document's per-concept scores.
func (r *AggregateRepository) GetConceptScoresByDoc(ctx context.Context, docID core.ID) ([]*core.DocConceptScore, error) {
	var results []*core.DocConceptScore
	err := r.scanDocPrefix(makeAggregateDocPrefix(conceptScorePrefix, docID), func(val []byte) error {
		score, err := storage.UnmarshalConceptScore(val)
		if err != nil {
			return err
		}
		results = append(results, score)
		return nil
	})
	return results, err
}

// GetGroupMentionsByDoc returns a document's group mention counts.
func (r *AggregateRepository) GetGroupMentionsByDoc(ctx context.Context, docID core.ID) ([]*core.GroupMentionCount, error) {
	var results []*core.GroupMentionCount
	err := r.scanDocPrefix(makeAggregateDocPrefix(groupMentionPrefix, docID), func(val []byte) error {
		mention, err := storage.UnmarshalGroupMention(val)
		if err != nil {
			return err
		}
		results = append(results, mention)
		return nil
	})
	return results, err
}

// GetCooccurrencesByDoc returns a document's concept-group co-occurrences.
func (r *AggregateRepository) GetCooccurrencesByDoc(ctx context.Context, docID core.ID) ([]*core.ConceptGroupCooccurrence, error) {
	var results []*core.ConceptGroupCooccurrence
	err := r.scanDocPrefix(makeAggregateDocPrefix(cooccurrencePrefix, docID), func(val []byte) error {
		co, err := storage.UnmarshalCooccurrence(val)
		if err != nil {
			return err
		}
		results = append(results, co)
		return nil
	})
	return results, err
}

// GetDocumentIndices returns a document's coverage indices.
func (r *AggregateRepository) GetDocumentIndices(ctx context.Context, docID core.ID) (*core.DocumentIndices, error) {
	var result *core.DocumentIndices
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndicesKey(docID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalIndices(val)
			return err
		})
	}, false)
	return result, err
}

// scanDocPrefix iterates over values under a prefix in a read transaction.
func (r *AggregateRepository) scanDocPrefix(prefix []byte, fn func(val []byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := iter.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	}, false)
}
