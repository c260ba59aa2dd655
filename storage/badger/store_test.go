package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDictionaryVersionBumps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v0, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v0)

	require.NoError(t, store.UpsertConcepts(ctx, &core.Concept{Id: 1, NameEN: "climate change"}))

	v1, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	require.NoError(t, store.UpsertLexiconTerms(ctx, &core.LexiconTerm{
		ConceptID: 1, Lang: "en", Term: "emissions", Lemma: "emission", Weight: 1.0,
	}))

	v2, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Greater(t, v2, v1)
}

func TestDictionaryUpsertIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	term := &core.LexiconTerm{ConceptID: 3, Lang: "en", Term: "net zero", Weight: 1.0}
	require.NoError(t, store.UpsertLexiconTerms(ctx, term))
	require.NoError(t, store.UpsertLexiconTerms(ctx, term))

	terms, err := store.GetAllLexiconTerms(ctx)
	require.NoError(t, err)
	assert.Len(t, terms, 1)
}

func TestCountConcepts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountConcepts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.UpsertConcepts(ctx,
		&core.Concept{Id: 1, NameEN: "climate change"},
		&core.Concept{Id: 2, NameEN: "biodiversity"},
		&core.Concept{Id: 3, NameEN: "water stewardship"},
	))

	count, err = store.CountConcepts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPatternRuleGeneratedID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rule := &core.PatternRule{Lang: "en", LevelType: "promise", Pattern: `\bwe will\b`}
	require.NoError(t, store.UpsertPatternRules(ctx, rule))
	assert.NotZero(t, rule.Id)

	// Same (lang, pattern) gets the same generated ID, so re-upserting
	// replaces rather than duplicates.
	again := &core.PatternRule{Lang: "en", LevelType: "action", Pattern: `\bwe will\b`}
	require.NoError(t, store.UpsertPatternRules(ctx, again))
	assert.Equal(t, rule.Id, again.Id)

	rules, err := store.GetAllPatternRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestGroupTermsByLang(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertGroups(ctx, &core.Group{Id: 1, NameEN: "employees"}))
	require.NoError(t, store.UpsertGroupTerms(ctx,
		&core.GroupTerm{GroupID: 1, Lang: "EN", Term: "workforce"},
		&core.GroupTerm{GroupID: 1, Lang: "pt", Term: "trabalhadores"},
		&core.GroupTerm{GroupID: 1, Lang: "", Term: "staff"},
	))

	en, err := store.GetGroupTermsByLang(ctx, "en")
	require.NoError(t, err)
	require.Len(t, en, 1)
	assert.Equal(t, "workforce", en[0].Term)

	wildcard, err := store.GetGroupTermsByLang(ctx, "")
	require.NoError(t, err)
	require.Len(t, wildcard, 1)
	assert.Equal(t, "staff", wildcard[0].Term)

	all, err := store.GetAllGroupTerms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEvidenceInsertDeduplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ev := func() *core.Evidence {
		return &core.Evidence{
			DocID:     10,
			DocName:   "report.txt",
			ConceptID: 1,
			MatchType: core.MatchTypeLexical,
			Level:     core.LevelMention,
			Snippet:   "emissions fell last year",
		}
	}

	added, err := store.InsertEvidences(ctx, ev())
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// Same (doc name, concept, snippet) is a skip, not a duplicate.
	added, err = store.InsertEvidences(ctx, ev())
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	count, err := store.CountEvidencesByDoc(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteEvidencesByDoc(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertEvidences(ctx,
		&core.Evidence{DocID: 10, DocName: "a.txt", ConceptID: 1, Level: 1, Snippet: "one"},
		&core.Evidence{DocID: 10, DocName: "a.txt", ConceptID: 2, Level: 2, Snippet: "two"},
		&core.Evidence{DocID: 11, DocName: "b.txt", ConceptID: 1, Level: 1, Snippet: "other doc"},
	)
	require.NoError(t, err)

	removed, err := store.DeleteEvidencesByDoc(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// The other document's evidences are untouched.
	count, err := store.CountEvidencesByDoc(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReplaceDocAggregates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []*core.DocConceptScore{
		{ConceptID: 1, BestLevel: 2, EvidenceCnt: 3},
		{ConceptID: 2, BestLevel: 4, EvidenceCnt: 1},
	}
	err := store.ReplaceDocAggregates(ctx, 7, first,
		[]*core.GroupMentionCount{{GroupID: 5, MentionCnt: 2}},
		[]*core.ConceptGroupCooccurrence{{ConceptID: 1, GroupID: 5, SnippetCnt: 1}},
		&core.DocumentIndices{CCCovered: 2, CCQuality3P: 1, VGCovered: 1})
	require.NoError(t, err)

	// Rebuild with a smaller set; the old rows must be gone.
	second := []*core.DocConceptScore{{ConceptID: 1, BestLevel: 1, EvidenceCnt: 1}}
	err = store.ReplaceDocAggregates(ctx, 7, second, nil, nil,
		&core.DocumentIndices{CCCovered: 1})
	require.NoError(t, err)

	scores, err := store.GetConceptScoresByDoc(ctx, 7)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, core.ID(1), scores[0].ConceptID)
	assert.Equal(t, 1, scores[0].BestLevel)

	mentions, err := store.GetGroupMentionsByDoc(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, mentions)

	cooc, err := store.GetCooccurrencesByDoc(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cooc)

	ix, err := store.GetDocumentIndices(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, ix.CCCovered)
}

func TestOverridesSurviveRebuild(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetOverride(ctx, 7, 1, core.LevelAction))

	err := store.ReplaceDocAggregates(ctx, 7,
		[]*core.DocConceptScore{{ConceptID: 1, BestLevel: 1, EvidenceCnt: 1}},
		nil, nil, &core.DocumentIndices{CCCovered: 1})
	require.NoError(t, err)

	overrides, err := store.GetOverridesByDoc(ctx, 7)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, core.LevelAction, overrides[0].Level)

	// Level 0 clears.
	require.NoError(t, store.SetOverride(ctx, 7, 1, 0))
	overrides, err = store.GetOverridesByDoc(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
