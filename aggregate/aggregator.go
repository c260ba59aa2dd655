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


package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// Result summarizes one aggregation run over a document.
type Result struct {
	DocID          core.ID
	EvidenceRows   int
	ConceptScores  int
	GroupMentions  int
	MatrixRows     int
	CCCovered      int
	CCQuality3P    int
	VGCovered      int
	PctCCCovered   float64
	PctCCQuality3P float64
	Elapsed        time.Duration
}

// Aggregator recomputes a document's derived aggregates from its stored
// evidences: per-concept scores, group mention counts, the concept-group
// co-occurrence matrix and the coverage indices. Every run is a full
// delete-and-rebuild, so aggregation is idempotent.
type Aggregator struct {
	store  storage.Store
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// New creates an Aggregator over the given store.
func New(store storage.Store, opts ...Option) *Aggregator {
	a := &Aggregator{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RecomputeDoc rebuilds every aggregate for the document. Manual overrides
// are read, never modified: they floor the final level used for the quality
// index but leave the stored best level untouched.
func (a *Aggregator) RecomputeDoc(ctx context.Context, docID core.ID) (*Result, error) {
	started := time.Now()

	doc, err := a.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loading document %d: %w", docID, err)
	}

	evidences, err := a.store.GetEvidencesByDoc(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loading evidences for document %d: %w", docID, err)
	}

	if len(evidences) == 0 {
		return a.clearAggregates(ctx, doc, started)
	}

	// Per-concept rollup. Levels below mention are clamped up.
	bestLevel := map[core.ID]int{}
	evCount := map[core.ID]int{}
	conceptSnippets := map[core.ID][]string{}
	var langSeen string

	for _, ev := range evidences {
		lvl := ev.Level
		if lvl < core.LevelMention {
			lvl = core.LevelMention
		}
		if lvl > bestLevel[ev.ConceptID] {
			bestLevel[ev.ConceptID] = lvl
		}
		evCount[ev.ConceptID]++
		if snip := strings.TrimSpace(ev.Snippet); snip != "" {
			conceptSnippets[ev.ConceptID] = append(conceptSnippets[ev.ConceptID], snip)
		}
		if langSeen == "" && ev.Lang != "" {
			langSeen = ev.Lang
		}
	}

	overrides, err := a.store.GetOverridesByDoc(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loading overrides for document %d: %w", docID, err)
	}
	finalLevel := map[core.ID]int{}
	for cid, lvl := range bestLevel {
		finalLevel[cid] = lvl
	}
	for _, ov := range overrides {
		if lvl, ok := finalLevel[ov.ConceptID]; ok && ov.Level > lvl {
			finalLevel[ov.ConceptID] = ov.Level
		}
	}

	conceptIDs := make([]core.ID, 0, len(bestLevel))
	for cid := range bestLevel {
		conceptIDs = append(conceptIDs, cid)
	}
	sort.Slice(conceptIDs, func(i, j int) bool { return conceptIDs[i] < conceptIDs[j] })

	scores := make([]*core.DocConceptScore, 0, len(conceptIDs))
	for _, cid := range conceptIDs {
		scores = append(scores, &core.DocConceptScore{
			DocID:       docID,
			ConceptID:   cid,
			BestLevel:   bestLevel[cid],
			EvidenceCnt: evCount[cid],
		})
	}

	groupPatterns, err := a.loadGroupPatterns(ctx, langSeen)
	if err != nil {
		return nil, err
	}

	mentionCnt, cooccurCnt := countGroupMentions(conceptIDs, conceptSnippets, groupPatterns)

	mentions := make([]*core.GroupMentionCount, 0, len(mentionCnt))
	for gid, n := range mentionCnt {
		mentions = append(mentions, &core.GroupMentionCount{DocID: docID, GroupID: gid, MentionCnt: n})
	}
	sort.Slice(mentions, func(i, j int) bool { return mentions[i].GroupID < mentions[j].GroupID })

	matrix := make([]*core.ConceptGroupCooccurrence, 0, len(cooccurCnt))
	for pair, n := range cooccurCnt {
		matrix = append(matrix, &core.ConceptGroupCooccurrence{
			DocID: docID, ConceptID: pair.concept, GroupID: pair.group, SnippetCnt: n,
		})
	}
	sort.Slice(matrix, func(i, j int) bool {
		if matrix[i].ConceptID != matrix[j].ConceptID {
			return matrix[i].ConceptID < matrix[j].ConceptID
		}
		return matrix[i].GroupID < matrix[j].GroupID
	})

	totalCC, err := a.store.CountConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting concepts: %w", err)
	}
	if totalCC < 1 {
		totalCC = 1
	}

	ccCovered := 0
	for _, lvl := range bestLevel {
		if lvl >= core.LevelMention {
			ccCovered++
		}
	}
	ccQuality3p := 0
	for _, lvl := range finalLevel {
		if lvl >= core.LevelAction {
			ccQuality3p++
		}
	}
	vgCovered := 0
	for _, n := range mentionCnt {
		if n > 0 {
			vgCovered++
		}
	}

	indices := &core.DocumentIndices{
		DocID:          docID,
		CCCovered:      ccCovered,
		CCQuality3P:    ccQuality3p,
		VGCovered:      vgCovered,
		PctCCCovered:   float64(ccCovered) / float64(totalCC),
		PctCCQuality3P: float64(ccQuality3p) / float64(totalCC),
		ComputedAt:     time.Now().UTC(),
	}

	if err := a.store.ReplaceDocAggregates(ctx, docID, scores, mentions, matrix, indices); err != nil {
		return nil, fmt.Errorf("replacing aggregates for document %d: %w", docID, err)
	}

	totalEvidences := 0
	for _, n := range evCount {
		totalEvidences += n
	}
	doc.EvidenceCount = totalEvidences
	if _, err := a.store.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("updating document %d: %w", docID, err)
	}

	res := &Result{
		DocID:          docID,
		EvidenceRows:   len(evidences),
		ConceptScores:  len(scores),
		GroupMentions:  len(mentions),
		MatrixRows:     len(matrix),
		CCCovered:      ccCovered,
		CCQuality3P:    ccQuality3p,
		VGCovered:      vgCovered,
		PctCCCovered:   indices.PctCCCovered,
		PctCCQuality3P: indices.PctCCQuality3P,
		Elapsed:        time.Since(started),
	}
	a.logger.Debug("aggregates recomputed",
		"doc_id", docID,
		"evidence_rows", res.EvidenceRows,
		"concept_scores", res.ConceptScores,
		"vg_covered", res.VGCovered,
		"elapsed", res.Elapsed)
	return res, nil
}

// clearAggregates handles the no-evidence path: wipe derived rows, write
// all-zero indices, reset the document's evidence count.
func (a *Aggregator) clearAggregates(ctx context.Context, doc *core.Document, started time.Time) (*Result, error) {
	indices := &core.DocumentIndices{DocID: doc.Id, ComputedAt: time.Now().UTC()}
	if err := a.store.ReplaceDocAggregates(ctx, doc.Id, nil, nil, nil, indices); err != nil {
		return nil, fmt.Errorf("clearing aggregates for document %d: %w", doc.Id, err)
	}
	doc.EvidenceCount = 0
	if _, err := a.store.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("updating document %d: %w", doc.Id, err)
	}
	return &Result{DocID: doc.Id, Elapsed: time.Since(started)}, nil
}

// loadGroupPatterns compiles word-boundary regexes for the group vocabulary
// of the document's language, falling back to all terms when the language
// bucket is empty.
func (a *Aggregator) loadGroupPatterns(ctx context.Context, lang string) (map[core.ID][]*regexp.Regexp, error) {
	var terms []*core.GroupTerm
	var err error
	if lang != "" {
		terms, err = a.store.GetGroupTermsByLang(ctx, lang)
		if err != nil {
			return nil, fmt.Errorf("loading group terms for lang %q: %w", lang, err)
		}
	}
	if len(terms) == 0 {
		terms, err = a.store.GetAllGroupTerms(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading group terms: %w", err)
		}
	}

	patterns := map[core.ID][]*regexp.Regexp{}
	for _, gt := range terms {
		term := strings.TrimSpace(gt.Term)
		if term == "" {
			continue
		}
		rx, err := wordBoundaryRegex(term)
		if err != nil {
			a.logger.Warn("skipping unusable group term", "group_id", gt.GroupID, "term", term, "error", err)
			continue
		}
		patterns[gt.GroupID] = append(patterns[gt.GroupID], rx)
	}
	return patterns, nil
}

type conceptGroup struct {
	concept core.ID
	group   core.ID
}

// countGroupMentions walks every snippet once. Mention counts sum all term
// occurrences; co-occurrence counts each (concept, group) pair at most once
// per snippet.
func countGroupMentions(
	conceptIDs []core.ID,
	conceptSnippets map[core.ID][]string,
	groupPatterns map[core.ID][]*regexp.Regexp,
) (map[core.ID]int, map[conceptGroup]int) {
	mentionCnt := map[core.ID]int{}
	cooccurCnt := map[conceptGroup]int{}
	if len(groupPatterns) == 0 {
		return mentionCnt, cooccurCnt
	}

	for _, cid := range conceptIDs {
		for _, snip := range conceptSnippets[cid] {
			for gid, patterns := range groupPatterns {
				m := 0
				for _, rx := range patterns {
					m += len(rx.FindAllStringIndex(snip, -1))
				}
				if m > 0 {
					mentionCnt[gid] += m
					cooccurCnt[conceptGroup{concept: cid, group: gid}]++
				}
			}
		}
	}
	return mentionCnt, cooccurCnt
}

var wsRun = regexp.MustCompile(`\s+`)

// wordBoundaryRegex builds a case-insensitive whole-word regex for a term,
// tolerant of whitespace runs between its words.
func wordBoundaryRegex(term string) (*regexp.Regexp, error) {
	p := wsRun.ReplaceAllLiteralString(regexp.QuoteMeta(term), `\s+`)
	return regexp.Compile(`(?i)\b` + p + `\b`)
}
