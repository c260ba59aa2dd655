package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/segment"
	"github.com/equilex/equilex/storage"
)

// failingStore wraps a Store and fails evidence writes for one document.
type failingStore struct {
	storage.Store
	failDocName string
}

func (f *failingStore) InsertEvidences(ctx context.Context, evidences ...*core.Evidence) (int, error) {
	for _, ev := range evidences {
		if ev.DocName == f.failDocName {
			return 0, errors.New("disk full")
		}
	}
	return f.Store.InsertEvidences(ctx, evidences...)
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedDictionary(t, store)
	p := newTestPipeline(t, store)

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_, err := p.Ingest(ctx, name, "en", "The ramp is done.")
		require.NoError(t, err)
	}

	res, err := p.ProcessBatch(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, res.Summaries, 3)
	assert.Empty(t, res.Failed)

	pending, err := p.PendingDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessBatchLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedDictionary(t, store)
	p := newTestPipeline(t, store)

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_, err := p.Ingest(ctx, name, "en", "The ramp is done.")
		require.NoError(t, err)
	}

	res, err := p.ProcessBatch(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, res.Summaries, 2)

	pending, err := p.PendingDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestProcessBatchContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedDictionary(t, store)

	wrapped := &failingStore{Store: store, failDocName: "bad.pdf"}
	seg, err := segment.NewNaive()
	require.NoError(t, err)
	p, err := NewPipeline(wrapped, seg, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(p.Release)

	good, err := p.Ingest(ctx, "good.pdf", "en", "The ramp is done.")
	require.NoError(t, err)
	bad, err := p.Ingest(ctx, "bad.pdf", "en", "The ramp is done.")
	require.NoError(t, err)

	res, err := p.ProcessBatch(ctx, 0)
	require.NoError(t, err)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, good.Id, res.Summaries[0].DocID)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, bad.Id, res.Failed[0])

	badDoc, err := store.GetDocument(ctx, bad.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocStatusError, badDoc.Status)
	assert.Contains(t, badDoc.LastError, "disk full")

	goodDoc, err := store.GetDocument(ctx, good.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocStatusProcessed, goodDoc.Status)
}
