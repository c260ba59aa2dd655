package pipeline

import (
	"context"
	"sync"

	"github.com/equilex/equilex/core"
)

// BatchResult is the outcome of one ProcessBatch call.
type BatchResult struct {
	Summaries []*core.RunSummary
	Failed    []core.ID
}

// ProcessBatch processes up to limit parsed documents concurrently on the
// worker pool. A failing document is marked error and the batch continues;
// its ID is reported in Failed. Limit <= 0 means no limit.
func (p *Pipeline) ProcessBatch(ctx context.Context, limit int) (*BatchResult, error) {
	docs, err := p.store.ListDocumentsByStatus(ctx, core.DocStatusParsed)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res = &BatchResult{}
	)
	for _, doc := range docs {
		doc := doc
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			summary, err := p.ProcessDocument(ctx, doc.Id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error("batch document failed", "doc_id", doc.Id, "doc_name", doc.Name, "err", err)
				res.Failed = append(res.Failed, doc.Id)
				return
			}
			res.Summaries = append(res.Summaries, summary)
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}
	wg.Wait()
	return res, nil
}

// PendingDocuments returns documents awaiting processing.
func (p *Pipeline) PendingDocuments(ctx context.Context) ([]*core.Document, error) {
	return p.store.ListDocumentsByStatus(ctx, core.DocStatusParsed)
}
