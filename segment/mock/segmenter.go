package mock

import (
	"context"
	"strings"

	"github.com/equilex/equilex/core"
)

// MockSegmenter is a test double for segment.Segmenter.
// It allows custom behavior injection via function fields.
type MockSegmenter struct {
	// SegmentPageFunc is called by SegmentPage if set.
	// If nil, uses default deterministic behavior.
	SegmentPageFunc func(ctx context.Context, text, lang string) ([]core.Sentence, error)

	callCount int
}

// NewMockSegmenter creates a mock segmenter with default deterministic behavior.
func NewMockSegmenter() *MockSegmenter {
	return &MockSegmenter{}
}

// SegmentPage splits on periods and uses the lowercase sentence as lemma text.
func (m *MockSegmenter) SegmentPage(ctx context.Context, text, lang string) ([]core.Sentence, error) {
	m.callCount++

	if m.SegmentPageFunc != nil {
		return m.SegmentPageFunc(ctx, text, lang)
	}

	sentences := []core.Sentence{}
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, core.Sentence{
			Index:     len(sentences),
			Lang:      core.NormalizeLang(lang),
			Text:      part,
			LemmaText: strings.ToLower(part),
		})
	}
	return sentences, nil
}

// CallCount returns the number of times SegmentPage was called.
func (m *MockSegmenter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockSegmenter) Reset() {
	m.callCount = 0
	m.SegmentPageFunc = nil
}
