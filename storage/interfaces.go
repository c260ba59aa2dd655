package storage

import (
	"context"

	"github.com/equilex/equilex/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository manages the document registry and stored sentences.
type DocumentRepository interface {
	Repository

	// AddDocument registers a document. For documents with ID=0 a new ID is
	// taken from the sequence. Sets CreatedAt/UpdatedAt when unset.
	// Returns ErrDuplicateKey if a document with the same name exists.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// UpdateDocument updates an existing document in place.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByName retrieves a document by its unique name.
	// Returns ErrNotFound if no document carries that name.
	GetDocumentByName(ctx context.Context, name string) (*core.Document, error)

	// ListDocuments returns all documents ordered by ID.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// ListDocumentsByStatus returns all documents in the given lifecycle state.
	ListDocumentsByStatus(ctx context.Context, status core.DocStatus) ([]*core.Document, error)

	// ReplaceSentences atomically deletes a document's stored sentences and
	// writes the given set. Returns the number of sentences written.
	ReplaceSentences(ctx context.Context, docID core.ID, sentences []*core.Sentence) (int, error)

	// GetSentences returns a document's sentences ordered by (page, index).
	GetSentences(ctx context.Context, docID core.ID) ([]*core.Sentence, error)

	// DeleteDocument removes a document together with its sentences.
	// Evidences and aggregates are owned by their own repositories.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error
}

// DictionaryRepository manages the matching dictionary: concepts, lexicon
// terms, key phrases and pattern rules. Every mutation bumps the dictionary
// version so cached match indexes can detect staleness.
type DictionaryRepository interface {
	Repository

	// UpsertConcepts inserts or replaces concepts by ID.
	UpsertConcepts(ctx context.Context, concepts ...*core.Concept) error

	// UpsertLexiconTerms inserts or replaces lexicon terms.
	// Returns core.ErrInvalidLexiconTerm wrapped per offending row.
	UpsertLexiconTerms(ctx context.Context, terms ...*core.LexiconTerm) error

	// UpsertKeyPhrases inserts or replaces key phrases.
	UpsertKeyPhrases(ctx context.Context, phrases ...*core.KeyPhrase) error

	// UpsertPatternRules inserts or replaces pattern rules by ID.
	UpsertPatternRules(ctx context.Context, rules ...*core.PatternRule) error

	// GetConcept retrieves a concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetAllConcepts returns the full concept catalog.
	GetAllConcepts(ctx context.Context) ([]*core.Concept, error)

	// GetAllLexiconTerms returns every stored lexicon term.
	GetAllLexiconTerms(ctx context.Context) ([]*core.LexiconTerm, error)

	// GetAllKeyPhrases returns every stored key phrase.
	GetAllKeyPhrases(ctx context.Context) ([]*core.KeyPhrase, error)

	// GetAllPatternRules returns every stored pattern rule.
	GetAllPatternRules(ctx context.Context) ([]*core.PatternRule, error)

	// CountConcepts returns the size of the concept catalog.
	// This is the divisor for document coverage percentages.
	CountConcepts(ctx context.Context) (int, error)

	// Version returns the current dictionary version. The version changes on
	// every successful mutation; callers use it to invalidate cached indexes.
	Version(ctx context.Context) (uint64, error)
}

// GroupRepository manages stakeholder groups and their surface terms.
type GroupRepository interface {
	Repository

	// UpsertGroups inserts or replaces groups by ID.
	UpsertGroups(ctx context.Context, groups ...*core.Group) error

	// UpsertGroupTerms inserts or replaces group terms.
	UpsertGroupTerms(ctx context.Context, terms ...*core.GroupTerm) error

	// GetAllGroups returns the full group catalog.
	GetAllGroups(ctx context.Context) ([]*core.Group, error)

	// GetGroupTermsByLang returns group terms for the given language bucket.
	// An empty lang selects the wildcard bucket.
	GetGroupTermsByLang(ctx context.Context, lang string) ([]*core.GroupTerm, error)

	// GetAllGroupTerms returns every stored group term.
	GetAllGroupTerms(ctx context.Context) ([]*core.GroupTerm, error)
}

// EvidenceRepository manages detected evidences. Evidence identity is
// content-derived (document name, concept, snippet), so re-inserting a
// detection is a no-op rather than a duplicate.
type EvidenceRepository interface {
	Repository

	// InsertEvidences stores evidences, skipping any whose ID already exists.
	// Returns the number actually added.
	InsertEvidences(ctx context.Context, evidences ...*core.Evidence) (int, error)

	// GetEvidencesByDoc returns all evidences recorded for a document.
	GetEvidencesByDoc(ctx context.Context, docID core.ID) ([]*core.Evidence, error)

	// CountEvidencesByDoc returns the number of evidences for a document.
	CountEvidencesByDoc(ctx context.Context, docID core.ID) (int, error)

	// DeleteEvidencesByDoc removes all evidences for a document.
	// Returns the number removed.
	DeleteEvidencesByDoc(ctx context.Context, docID core.ID) (int, error)
}

// AggregateRepository manages per-document aggregates: concept scores, group
// mention counts, concept-group co-occurrences, coverage indices and manual
// overrides. Aggregates are rebuilt wholesale; overrides persist across
// rebuilds.
type AggregateRepository interface {
	Repository

	// SetOverride stores a manual level floor for a (document, concept) pair.
	// Level 0 clears the override.
	SetOverride(ctx context.Context, docID, conceptID core.ID, level int) error

	// GetOverridesByDoc returns all manual overrides for a document.
	GetOverridesByDoc(ctx context.Context, docID core.ID) ([]*core.DocConceptOverride, error)

	// ReplaceDocAggregates atomically deletes every derived aggregate for the
	// document and writes the given set. Overrides are not touched.
	ReplaceDocAggregates(ctx context.Context, docID core.ID,
		scores []*core.DocConceptScore,
		mentions []*core.GroupMentionCount,
		cooccurrences []*core.ConceptGroupCooccurrence,
		indices *core.DocumentIndices) error

	// GetConceptScoresByDoc returns a document's per-concept scores.
	GetConceptScoresByDoc(ctx context.Context, docID core.ID) ([]*core.DocConceptScore, error)

	// GetGroupMentionsByDoc returns a document's group mention counts.
	GetGroupMentionsByDoc(ctx context.Context, docID core.ID) ([]*core.GroupMentionCount, error)

	// GetCooccurrencesByDoc returns a document's concept-group co-occurrences.
	GetCooccurrencesByDoc(ctx context.Context, docID core.ID) ([]*core.ConceptGroupCooccurrence, error)

	// GetDocumentIndices returns a document's coverage indices.
	// Returns ErrNotFound when the document has never been aggregated.
	GetDocumentIndices(ctx context.Context, docID core.ID) (*core.DocumentIndices, error)
}

// Store combines every repository over one backend.
type Store interface {
	DocumentRepository
	DictionaryRepository
	GroupRepository
	EvidenceRepository
	AggregateRepository
}
