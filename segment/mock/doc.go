// Package mock provides a test double implementation of segment.Segmenter.
//
// MockSegmenter lets tests run without a linguistic pipeline. Its default
// behavior is deterministic (split on periods, lemma = lowercase text), and
// custom behavior can be injected via the SegmentPageFunc field:
//
//	seg := mock.NewMockSegmenter()
//	seg.SegmentPageFunc = func(ctx context.Context, text, lang string) ([]core.Sentence, error) {
//		return nil, errors.New("boom")
//	}
package mock
