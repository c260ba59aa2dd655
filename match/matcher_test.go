package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/dictionary"
	"github.com/equilex/equilex/storage"
	badgerstore "github.com/equilex/equilex/storage/badger"
)

// buildIndex seeds an in-memory store and builds an index from it.
func buildIndex(t *testing.T, seed func(ctx context.Context, store storage.Store)) *dictionary.Index {
	t.Helper()
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	seed(ctx, store)

	idx, err := dictionary.Build(ctx, store)
	require.NoError(t, err)
	return idx
}

func TestPhraseBeatsTermForSameConcept(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "accessibility"}))
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"}))
		require.NoError(t, store.UpsertKeyPhrases(ctx,
			&core.KeyPhrase{ConceptID: 1, Lang: "en", Phrase: "wheelchair access"}))
	})

	m := NewMatcher(DefaultScoring())
	text := "The building provides wheelchair access via a ramp."
	lemma := "the building provide wheelchair access via a ramp ."

	got := m.MatchSentence(text, lemma, "en", idx)
	require.Len(t, got, 1, "one concept, one merged candidate")
	assert.Equal(t, core.ID(1), got[0].ConceptID)
	// Phrase: 1.0*1.0 + 0.2*1 = 1.2 beats term: 0.5*1.0 + 0.1*1 = 0.6.
	assert.InDelta(t, 1.2, got[0].Score, 1e-9)
	assert.Equal(t, "wheelchair access", got[0].TermOrPhrase)
}

func TestConceptlessPatternIsDiscarded(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertPatternRules(ctx,
			&core.PatternRule{Id: 9, Lang: "en", LevelType: "monitor", Pattern: `\bshall monitor\b`}))
	})

	m := NewMatcher(DefaultScoring())
	got := m.MatchSentence("The agency shall monitor progress.", "the agency shall monitor progress .", "en", idx)
	assert.Empty(t, got, "pattern hit with no concept to borrow yields nothing")
}

func TestPatternBorrowsStrongestConcept(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx,
			&core.Concept{Id: 1, NameEN: "accessibility"},
			&core.Concept{Id: 2, NameEN: "participation"}))
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"}))
		require.NoError(t, store.UpsertKeyPhrases(ctx,
			&core.KeyPhrase{ConceptID: 2, Lang: "en", Phrase: "public consultation"}))
		require.NoError(t, store.UpsertPatternRules(ctx,
			&core.PatternRule{Id: 9, Lang: "en", LevelType: "promise", Pattern: `\bwe will\b`}))
	})

	m := NewMatcher(DefaultScoring())
	text := "We will hold a public consultation on the new ramp."
	lemma := "we will hold a public consultation on the new ramp ."

	got := m.MatchSentence(text, lemma, "en", idx)
	require.Len(t, got, 2)

	byConcept := map[core.ID]Candidate{}
	for _, c := range got {
		byConcept[c.ConceptID] = c
	}

	// The phrase (1.2) outscores the term (0.6), so the pattern's borrowed
	// concept is the phrase's. Pattern score 1.5+0.3 = 1.8 then wins the
	// per-concept merge for concept 2.
	c2 := byConcept[2]
	assert.Equal(t, core.MatchTypePattern, c2.MatchType)
	assert.Equal(t, core.LevelPromise, c2.Level)
	assert.InDelta(t, 1.8, c2.Score, 1e-9)

	c1 := byConcept[1]
	assert.Equal(t, core.MatchTypeLexical, c1.MatchType)
	assert.InDelta(t, 0.6, c1.Score, 1e-9)
}

func TestNegationDampensScoreNotLevel(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "accessibility"}))
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"}))
		require.NoError(t, store.UpsertPatternRules(ctx, &core.PatternRule{
			Id: 9, Lang: "en", LevelType: "promise",
			Pattern:         `\bwe will\b`,
			NegationPattern: `\bwill not\b`,
		}))
	})

	m := NewMatcher(DefaultScoring())
	text := "We will not remove the ramp, but we will review it."
	lemma := "we will not remove the ramp , but we will review it ."

	got := m.MatchSentence(text, lemma, "en", idx)
	require.Len(t, got, 1)

	// Term candidate scores 0.6; the dampened pattern scores 1.8*0.2 = 0.36
	// and loses the merge, but keeps its promise level while it competes.
	assert.Equal(t, core.MatchTypeLexical, got[0].MatchType)
	assert.InDelta(t, 0.6, got[0].Score, 1e-9)
}

func TestNegationDampeningFactorExact(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "participation"}))
		// Weak lexical anchor so the pattern candidate survives the merge.
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "consultation", Lemma: "consultation", Weight: 0.1}))
		require.NoError(t, store.UpsertPatternRules(ctx, &core.PatternRule{
			Id: 9, Lang: "en", LevelType: "promise",
			Pattern:         `\bcommits? to\b`,
			NegationPattern: `\bdoes not commit\b`,
		}))
	})

	m := NewMatcher(DefaultScoring())
	text := "The ministry does not commit to consultation, though it commits to reporting."
	lemma := "the ministry do not commit to consultation , though it commit to reporting ."

	got := m.MatchSentence(text, lemma, "en", idx)
	require.Len(t, got, 1)

	// Pattern 1.5+0.3 = 1.8, dampened to exactly 0.36; still above the
	// anchor term's 0.5*0.1+0.1 = 0.15, so it wins the merge. Level stays
	// promise.
	assert.Equal(t, core.MatchTypePattern, got[0].MatchType)
	assert.InDelta(t, 0.36, got[0].Score, 1e-9)
	assert.Equal(t, core.LevelPromise, got[0].Level)
}

func TestFuzzyFallbackOnRawText(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "accessibility"}))
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramps", Lemma: "zzz-no-such-lemma"}))
	})

	m := NewMatcher(DefaultScoring())
	// Lemma text misses, but the raw term appears verbatim: partial ratio 100.
	got := m.MatchSentence("Install ramps at all entrances.", "install zzz at all entrance .", "en", idx)
	require.Len(t, got, 1)
	assert.Equal(t, core.ID(1), got[0].ConceptID)
}

func TestAtMostOneCandidatePerConcept(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "accessibility"}))
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"},
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "elevator", Lemma: "elevator"},
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "braille", Lemma: "braille"}))
	})

	m := NewMatcher(DefaultScoring())
	text := "The ramp, elevator and braille signage are maintained."
	lemma := "the ramp , elevator and braille signage be maintain ."

	got := m.MatchSentence(text, lemma, "en", idx)
	assert.Len(t, got, 1)
}

func TestNoMatchesEmpty(t *testing.T) {
	idx := buildIndex(t, func(ctx context.Context, store storage.Store) {
		require.NoError(t, store.UpsertLexiconTerms(ctx,
			&core.LexiconTerm{ConceptID: 1, Lang: "en", Term: "ramp", Lemma: "ramp"}))
	})

	m := NewMatcher(DefaultScoring())
	got := m.MatchSentence("Totally unrelated sentence.", "totally unrelated sentence .", "en", idx)
	assert.Empty(t, got)
}
