package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// DictionaryRepository implements storage.DictionaryRepository for BadgerDB.
//
// Every successful mutation bumps a monotonic dictionary version. Cached
// match indexes compare versions to detect staleness instead of re-reading
// the whole dictionary.
type DictionaryRepository struct {
	backend *Backend
}

var _ storage.DictionaryRepository = (*DictionaryRepository)(nil)

// NewDictionaryRepository creates a new DictionaryRepository.
func NewDictionaryRepository(backend *Backend) *DictionaryRepository {
	return &DictionaryRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *DictionaryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DictionaryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertConcepts inserts or replaces concepts by ID.
func (r *DictionaryRepository) UpsertConcepts(ctx context.Context, concepts ...*core.Concept) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := tx.Set(makeConceptKey(concept.Id), storage.MarshalConcept(concept)); err != nil {
				return err
			}
		}
		if err := bumpVersion(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpsertLexiconTerms inserts or replaces lexicon terms.
func (r *DictionaryRepository) UpsertLexiconTerms(ctx context.Context, terms ...*core.LexiconTerm) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, term := range terms {
			if err := core.ValidateLexiconTerm(term); err != nil {
				return err
			}
			if err := tx.Set(makeLexiconTermKey(term), storage.MarshalLexiconTerm(term)); err != nil {
				return err
			}
		}
		if err := bumpVersion(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpsertKeyPhrases inserts or replaces key phrases.
func (r *DictionaryRepository) UpsertKeyPhrases(ctx context.Context, phrases ...*core.KeyPhrase) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, phrase := range phrases {
			if err := core.ValidateKeyPhrase(phrase); err != nil {
				return err
			}
			if err := tx.Set(makeKeyPhraseKey(phrase), storage.MarshalKeyPhrase(phrase)); err != nil {
				return err
			}
		}
		if err := bumpVersion(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpsertPatternRules inserts or replaces pattern rules by ID.
func (r *DictionaryRepository) UpsertPatternRules(ctx context.Context, rules ...*core.PatternRule) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, rule := range rules {
			if err := core.ValidatePatternRule(rule); err != nil {
				return err
			}
			if rule.Id == 0 {
				rule.Id = core.IDFromContent(rule.Lang + "\x00" + rule.Pattern)
			}
			if err := tx.Set(makePatternRuleKey(rule.Id), storage.MarshalPatternRule(rule)); err != nil {
				return err
			}
		}
		if err := bumpVersion(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a concept by ID.
func (r *DictionaryRepository) GetConcept(ctx context.Context, id core.ID) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeConceptKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalConcept(val)
			return err
		})
	}, false)
	return result, err
}

// GetAllConcepts returns the full concept catalog.
func (r *DictionaryRepository) GetAllConcepts(ctx context.Context) ([]*core.Concept, error) {
	var results []*core.Concept
	err := r.scanPrefix(conceptPrefix+":", func(val []byte) error {
		concept, err := storage.UnmarshalConcept(val)
		if err != nil {
			return err
		}
		results = append(results, concept)
		return nil
	})
	return results, err
}

// GetAllLexiconTerms returns every stored lexicon term.
func (r *DictionaryRepository) GetAllLexiconTerms(ctx context.Context) ([]*core.LexiconTerm, error) {
	var results []*core.LexiconTerm
	err := r.scanPrefix(lexiconPrefix+":", func(val []byte) error {
		term, err := storage.UnmarshalLexiconTerm(val)
		if err != nil {
			return err
		}
		results = append(results, term)
		return nil
	})
	return results, err
}

// GetAllKeyPhrases returns every stored key phrase.
func (r *DictionaryRepository) GetAllKeyPhrases(ctx context.Context) ([]*core.KeyPhrase, error) {
	var results []*core.KeyPhrase
	err := r.scanPrefix(keyPhrasePrefix+":", func(val []byte) error {
		phrase, err := storage.UnmarshalKeyPhrase(val)
		if err != nil {
			return err
		}
		results = append(results, phrase)
		return nil
	})
	return results, err
}

// GetAllPatternRules returns every stored pattern rule.
func (r *DictionaryRepository) GetAllPatternRules(ctx context.Context) ([]*core.PatternRule, error) {
	var results []*core.PatternRule
	err := r.scanPrefix(patternPrefix+":", func(val []byte) error {
		rule, err := storage.UnmarshalPatternRule(val)
		if err != nil {
			return err
		}
		results = append(results, rule)
		return nil
	})
	return results, err
}

// CountConcepts returns the size of the concept catalog.
func (r *DictionaryRepository) CountConcepts(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(conceptPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Version returns the current dictionary version, 0 for an empty store.
func (r *DictionaryRepository) Version(ctx context.Context) (uint64, error) {
	var version uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(dictVersionKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id, err := storage.UnmarshalID(val)
			version = uint64(id)
			return err
		})
	}, false)
	return version, err
}

// scanPrefix iterates over values under a prefix in a read transaction.
func (r *DictionaryRepository) scanPrefix(prefix string, fn func(val []byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
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

// bumpVersion increments the dictionary version within tx.
func bumpVersion(tx *badger.Txn) error {
	var version uint64
	item, err := tx.Get([]byte(dictVersionKey))
	if err == nil {
		if err := item.Value(func(val []byte) error {
			id, err := storage.UnmarshalID(val)
			version = uint64(id)
			return err
		}); err != nil {
			return err
		}
	} else if err != badger.ErrKeyNotFound {
		return err
	}
	return tx.Set([]byte(dictVersionKey), storage.MarshalID(core.ID(version+1)))
}
