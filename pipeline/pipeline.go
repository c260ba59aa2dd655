// Copyright 2025 Equilex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/equilex/equilex/aggregate"
	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/dictionary"
	"github.com/equilex/equilex/match"
	"github.com/equilex/equilex/segment"
	"github.com/equilex/equilex/storage"
)

// Pipeline orchestrates document processing: segmentation, sentence
// matching against the dictionary, evidence storage and aggregation.
type Pipeline struct {
	store      storage.Store
	segmenter  segment.Segmenter
	cache      *dictionary.Cache
	matcher    *match.Matcher
	aggregator *aggregate.Aggregator
	pool       *ants.Pool
	monitor    RunMonitor
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMonitor sets a run monitor. Default is a no-op.
func WithMonitor(monitor RunMonitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithScoring overrides the matcher's scoring constants.
func WithScoring(scoring match.Scoring) Option {
	return func(p *Pipeline) error {
		if err := scoring.Validate(); err != nil {
			return err
		}
		p.matcher = match.NewMatcher(scoring)
		return nil
	}
}

// NewPipeline creates a processing pipeline over the given store and
// segmenter. Release must be called when done.
func NewPipeline(store storage.Store, segmenter segment.Segmenter, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if segmenter == nil {
		return nil, ErrSegmenterRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:      store,
		segmenter:  segmenter,
		cache:      dictionary.NewCache(store),
		matcher:    match.NewMatcher(match.DefaultScoring()),
		aggregator: aggregate.New(store),
		pool:       pool,
		monitor:    &noopMonitor{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.aggregator = aggregate.New(store, aggregate.WithLogger(p.logger))
	return p, nil
}

// Ingest registers a document and segments its text into stored sentences.
// The document ends in status parsed, ready for ProcessDocument. Page breaks
// are form feeds in the text.
func (p *Pipeline) Ingest(ctx context.Context, name, lang, text string) (*core.Document, error) {
	doc, err := p.store.AddDocument(ctx, &core.Document{
		Name:   name,
		Lang:   core.NormalizeLang(lang),
		Status: core.DocStatusUploaded,
	})
	if err != nil {
		return nil, err
	}
	if err := p.segmentInto(ctx, doc, text); err != nil {
		p.markError(ctx, doc, err)
		return nil, err
	}
	return doc, nil
}

// Reparse replaces a document's sentences from new text and resets it to
// status parsed. Existing evidences are left for the next ProcessDocument
// run to rebuild.
func (p *Pipeline) Reparse(ctx context.Context, docID core.ID, text string) (*core.Document, error) {
	doc, err := p.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := p.segmentInto(ctx, doc, text); err != nil {
		p.markError(ctx, doc, err)
		return nil, err
	}
	return doc, nil
}

func (p *Pipeline) segmentInto(ctx context.Context, doc *core.Document, text string) error {
	pages := segment.Pages(text)
	var sentences []*core.Sentence
	for pageNo, pageText := range pages {
		pageSents, err := p.segmenter.SegmentPage(ctx, pageText, doc.Lang)
		if err != nil {
			return fmt.Errorf("segmenting page %d: %w", pageNo+1, err)
		}
		for i := range pageSents {
			s := pageSents[i]
			s.DocID = doc.Id
			s.Page = pageNo + 1
			sentences = append(sentences, &s)
		}
	}

	count, err := p.store.ReplaceSentences(ctx, doc.Id, sentences)
	if err != nil {
		return fmt.Errorf("storing sentences: %w", err)
	}
	p.monitor.AfterSegmentation(len(pages), count)

	doc.Status = core.DocStatusParsed
	doc.SentenceCount = count
	doc.LastError = ""
	if _, err := p.store.UpdateDocument(ctx, doc); err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	p.logger.Debug("document parsed", "doc_id", doc.Id, "pages", len(pages), "sentences", count)
	return nil
}

// ProcessDocument matches a parsed document's stored sentences against the
// dictionary, records the evidences and recomputes the aggregates. The
// document ends in status processed; on failure it is marked error with the
// cause recorded, and the error is returned.
func (p *Pipeline) ProcessDocument(ctx context.Context, docID core.ID) (*core.RunSummary, error) {
	started := time.Now()

	doc, err := p.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	p.monitor.Start(doc)

	summary, err := p.processDoc(ctx, doc, started)
	if err != nil {
		p.markError(ctx, doc, err)
		return nil, err
	}
	p.monitor.Finish(summary)
	return summary, nil
}

func (p *Pipeline) processDoc(ctx context.Context, doc *core.Document, started time.Time) (*core.RunSummary, error) {
	idx, err := p.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}

	sentences, err := p.store.GetSentences(ctx, doc.Id)
	if err != nil {
		return nil, fmt.Errorf("loading sentences: %w", err)
	}

	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	// Fresh run: previous evidences go away so removed dictionary entries
	// do not leave stale hits behind.
	if _, err := p.store.DeleteEvidencesByDoc(ctx, doc.Id); err != nil {
		return nil, fmt.Errorf("clearing evidences: %w", err)
	}

	added := 0
	page := 0
	pageSentences := 0
	pageAdded := 0
	for _, sent := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sent.Page != page {
			if page != 0 {
				p.monitor.AfterPageMatched(page, pageSentences, pageAdded)
			}
			page, pageSentences, pageAdded = sent.Page, 0, 0
		}
		pageSentences++

		candidates := p.matcher.MatchSentence(sent.Text, sent.LemmaText, lang, idx)
		if len(candidates) == 0 {
			continue
		}
		evidences := make([]*core.Evidence, 0, len(candidates))
		for _, c := range candidates {
			evidences = append(evidences, &core.Evidence{
				DocID:        doc.Id,
				DocName:      doc.Name,
				ConceptID:    c.ConceptID,
				MatchType:    c.MatchType,
				Level:        c.Level,
				Lang:         lang,
				Snippet:      sent.Text,
				Pattern:      c.Pattern,
				TermOrPhrase: c.TermOrPhrase,
				RuleID:       c.RuleID,
				Score:        c.Score,
				Page:         sent.Page,
			})
		}
		n, err := p.store.InsertEvidences(ctx, evidences...)
		if err != nil {
			return nil, fmt.Errorf("storing evidences: %w", err)
		}
		added += n
		pageAdded += n
	}
	if page != 0 {
		p.monitor.AfterPageMatched(page, pageSentences, pageAdded)
	}

	result, err := p.aggregator.RecomputeDoc(ctx, doc.Id)
	if err != nil {
		return nil, fmt.Errorf("aggregating: %w", err)
	}
	p.monitor.AfterAggregation(result)

	// RecomputeDoc rewrote the document record; reload before the status
	// transition so the evidence count survives.
	doc, err = p.store.GetDocument(ctx, doc.Id)
	if err != nil {
		return nil, err
	}
	doc.Status = core.DocStatusProcessed
	doc.LastError = ""
	if _, err := p.store.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}

	summary := &core.RunSummary{
		DocID:           doc.Id,
		DocName:         doc.Name,
		Sentences:       len(sentences),
		Evidences:       added,
		ConceptsCovered: result.CCCovered,
		GroupsCovered:   result.VGCovered,
		PctCCCovered:    result.PctCCCovered,
		PctCCQuality3P:  result.PctCCQuality3P,
		Elapsed:         time.Since(started),
	}
	p.logger.Info("document processed",
		"doc_id", doc.Id,
		"doc_name", doc.Name,
		"sentences", summary.Sentences,
		"evidences", summary.Evidences,
		"concepts_covered", summary.ConceptsCovered,
		"elapsed", summary.Elapsed)
	return summary, nil
}

// markError records a failure on the document. Best effort: the original
// error is what the caller sees.
func (p *Pipeline) markError(ctx context.Context, doc *core.Document, cause error) {
	doc.Status = core.DocStatusError
	doc.LastError = cause.Error()
	if _, err := p.store.UpdateDocument(ctx, doc); err != nil {
		p.logger.Error("failed to record document error", "doc_id", doc.Id, "err", err)
	}
}

// InvalidateDictionary drops the cached dictionary index so the next run
// rebuilds it. Syncs through the same store bump the version and invalidate
// implicitly; this is for out-of-band changes.
func (p *Pipeline) InvalidateDictionary() {
	p.cache.Invalidate()
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
