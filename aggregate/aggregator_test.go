package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
	badgerstore "github.com/equilex/equilex/storage/badger"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func addDoc(t *testing.T, store storage.Store, name, lang string) *core.Document {
	t.Helper()
	doc, err := store.AddDocument(context.Background(), &core.Document{Name: name, Lang: lang})
	require.NoError(t, err)
	return doc
}

func addEvidence(t *testing.T, store storage.Store, doc *core.Document, conceptID core.ID, level int, snippet string) {
	t.Helper()
	n, err := store.InsertEvidences(context.Background(), &core.Evidence{
		DocID:     doc.Id,
		DocName:   doc.Name,
		ConceptID: conceptID,
		MatchType: core.MatchTypeLexical,
		Level:     level,
		Lang:      doc.Lang,
		Snippet:   snippet,
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func seedConcepts(t *testing.T, store storage.Store, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, store.UpsertConcepts(context.Background(),
			&core.Concept{Id: core.ID(i), NameEN: "concept"}))
	}
}

func TestRecomputeDocScoresAndIndices(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 4)
	doc := addDoc(t, store, "policy.pdf", "en")

	addEvidence(t, store, doc, 1, core.LevelMention, "a ramp is mentioned")
	addEvidence(t, store, doc, 1, core.LevelAction, "the ramp was built")
	addEvidence(t, store, doc, 2, core.LevelPromise, "we will consult")

	agg := New(store)
	res, err := agg.RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)

	assert.Equal(t, 3, res.EvidenceRows)
	assert.Equal(t, 2, res.ConceptScores)
	assert.Equal(t, 2, res.CCCovered)
	assert.Equal(t, 1, res.CCQuality3P)
	assert.InDelta(t, 2.0/4.0, res.PctCCCovered, 1e-9)
	assert.InDelta(t, 1.0/4.0, res.PctCCQuality3P, 1e-9)

	scores, err := store.GetConceptScoresByDoc(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, core.ID(1), scores[0].ConceptID)
	assert.Equal(t, core.LevelAction, scores[0].BestLevel)
	assert.Equal(t, 2, scores[0].EvidenceCnt)
	assert.Equal(t, core.LevelPromise, scores[1].BestLevel)

	got, err := store.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.EvidenceCount)
}

func TestOverrideFloorsQualityIndexOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 2)
	doc := addDoc(t, store, "plan.pdf", "en")

	addEvidence(t, store, doc, 1, core.LevelPromise, "we will build a ramp")
	require.NoError(t, store.SetOverride(ctx, doc.Id, 1, core.LevelAction))
	// Overrides for concepts without evidence have no effect.
	require.NoError(t, store.SetOverride(ctx, doc.Id, 2, core.LevelMonitor))

	res, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)

	assert.Equal(t, 1, res.CCCovered)
	assert.Equal(t, 1, res.CCQuality3P, "override floors the final level to action")

	scores, err := store.GetConceptScoresByDoc(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, core.LevelPromise, scores[0].BestLevel, "stored best level is pre-override")
}

func TestOverrideNeverLowers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 1)
	doc := addDoc(t, store, "report.pdf", "en")

	addEvidence(t, store, doc, 1, core.LevelMonitor, "progress is tracked annually")
	require.NoError(t, store.SetOverride(ctx, doc.Id, 1, core.LevelMention))

	res, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CCQuality3P, "monitor-level evidence stays above the lower override")
}

func TestRecomputeZeroEvidence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 3)
	doc := addDoc(t, store, "empty.pdf", "en")

	// Seed stale aggregates from an earlier run, then delete the evidence.
	addEvidence(t, store, doc, 1, core.LevelAction, "the ramp was built")
	_, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	_, err = store.DeleteEvidencesByDoc(ctx, doc.Id)
	require.NoError(t, err)

	res, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, res.EvidenceRows)
	assert.Equal(t, 0, res.CCCovered)

	scores, err := store.GetConceptScoresByDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Empty(t, scores, "stale scores wiped")

	indices, err := store.GetDocumentIndices(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, indices.CCCovered)
	assert.Equal(t, 0, indices.VGCovered)
	assert.Zero(t, indices.PctCCCovered)
	assert.False(t, indices.ComputedAt.IsZero())

	got, err := store.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.EvidenceCount)
}

func TestGroupMentionsAndCooccurrence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 2)
	doc := addDoc(t, store, "strategy.pdf", "en")

	require.NoError(t, store.UpsertGroups(ctx,
		&core.Group{Id: 10, NameEN: "wheelchair users"},
		&core.Group{Id: 11, NameEN: "children"}))
	require.NoError(t, store.UpsertGroupTerms(ctx,
		&core.GroupTerm{GroupID: 10, Lang: "en", Term: "wheelchair users"},
		&core.GroupTerm{GroupID: 11, Lang: "en", Term: "children"}))

	// Two matches of the same group term inside one snippet: mention count
	// sums occurrences, co-occurrence counts the snippet once.
	addEvidence(t, store, doc, 1, core.LevelAction,
		"Wheelchair users were consulted; wheelchair  users approved the design")
	addEvidence(t, store, doc, 2, core.LevelMention, "nothing about any group here")

	res, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.GroupMentions)
	assert.Equal(t, 1, res.MatrixRows)
	assert.Equal(t, 1, res.VGCovered)

	mentions, err := store.GetGroupMentionsByDoc(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, core.ID(10), mentions[0].GroupID)
	assert.Equal(t, 2, mentions[0].MentionCnt)

	matrix, err := store.GetCooccurrencesByDoc(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, matrix, 1)
	assert.Equal(t, core.ID(1), matrix[0].ConceptID)
	assert.Equal(t, 1, matrix[0].SnippetCnt)
}

func TestGroupLangFallback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 1)
	doc := addDoc(t, store, "plano.pdf", "pt")

	// Only English group terms exist; the Portuguese doc falls back to them.
	require.NoError(t, store.UpsertGroups(ctx, &core.Group{Id: 10, NameEN: "refugees"}))
	require.NoError(t, store.UpsertGroupTerms(ctx,
		&core.GroupTerm{GroupID: 10, Lang: "en", Term: "refugees"}))

	addEvidence(t, store, doc, 1, core.LevelMention, "support for refugees is noted")

	res, err := New(store).RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.VGCovered)
}

func TestWordBoundaryRegex(t *testing.T) {
	rx, err := wordBoundaryRegex("wheelchair users")
	require.NoError(t, err)
	assert.True(t, rx.MatchString("all Wheelchair\n users attended"))
	assert.False(t, rx.MatchString("wheelchairusers"))

	rx, err = wordBoundaryRegex("c++ skills")
	require.NoError(t, err, "metacharacters are quoted")
	assert.True(t, rx.MatchString("listed C++ skills"))
}

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedConcepts(t, store, 2)
	doc := addDoc(t, store, "policy.pdf", "en")
	addEvidence(t, store, doc, 1, core.LevelAction, "the ramp was built")

	agg := New(store)
	first, err := agg.RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)
	second, err := agg.RecomputeDoc(ctx, doc.Id)
	require.NoError(t, err)

	assert.Equal(t, first.ConceptScores, second.ConceptScores)
	assert.Equal(t, first.CCCovered, second.CCCovered)

	scores, err := store.GetConceptScoresByDoc(ctx, doc.Id)
	require.NoError(t, err)
	assert.Len(t, scores, 1, "rerun does not duplicate rows")
}
