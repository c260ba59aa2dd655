package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// GroupRepository implements storage.GroupRepository for BadgerDB.
type GroupRepository struct {
	backend *Backend
}

var _ storage.GroupRepository = (*GroupRepository)(nil)

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(backend *Backend) *GroupRepository {
	return &GroupRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *GroupRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *GroupRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertGroups inserts or replaces groups by ID.
func (r *GroupRepository) UpsertGroups(ctx context.Context, groups ...*core.Group) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, group := range groups {
			if err := tx.Set(makeGroupKey(group.Id), storage.MarshalGroup(group)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// UpsertGroupTerms inserts or replaces group terms. Lang is normalized so the
// key bucket matches what GetGroupTermsByLang scans.
func (r *GroupRepository) UpsertGroupTerms(ctx context.Context, terms ...*core.GroupTerm) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, term := range terms {
			if term.Term == "" {
				return core.ErrEmptyTerm
			}
			term.Lang = core.NormalizeLang(term.Lang)
			if err := tx.Set(makeGroupTermKey(term), storage.MarshalGroupTerm(term)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetAllGroups returns the full group catalog.
func (r *GroupRepository) GetAllGroups(ctx context.Context) ([]*core.Group, error) {
	var results []*core.Group
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(groupPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				group, err := storage.UnmarshalGroup(val)
				if err != nil {
					return err
				}
				results = append(results, group)
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

// GetGroupTermsByLang returns group terms for the given language bucket.
func (r *GroupRepository) GetGroupTermsByLang(ctx context.Context, lang string) ([]*core.GroupTerm, error) {
	return r.scanGroupTerms(makeGroupTermLangPrefix(core.NormalizeLang(lang)))
}

// GetAllGroupTerms returns every stored group term.
func (r *GroupRepository) GetAllGroupTerms(ctx context.Context) ([]*core.GroupTerm, error) {
	return r.scanGroupTerms([]byte(groupTermPrefix + ":"))
}

func (r *GroupRepository) scanGroupTerms(prefix []byte) ([]*core.GroupTerm, error) {
	var results []*core.GroupTerm
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				term, err := storage.UnmarshalGroupTerm(val)
				if err != nil {
					return err
				}
				results = append(results, term)
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
