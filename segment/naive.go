package segment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/equilex/equilex/core"
)

// Sentence boundaries: sentence-final punctuation followed by whitespace,
// or a blank line.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+|\n{2,}`)

// Naive is a language-agnostic Segmenter that splits on punctuation and
// approximates lemmas by lowercasing tokens. It is a stand-in for a real
// linguistic pipeline, which stays an external collaborator behind the
// Segmenter interface.
type Naive struct {
	chunkSize int
	splitter  textsplitter.RecursiveCharacter
}

// NaiveOption configures a Naive segmenter.
type NaiveOption func(*Naive) error

// WithChunkSize sets the maximum chunk length, in characters, handed to the
// sentence splitter at a time. Default 4000.
func WithChunkSize(size int) NaiveOption {
	return func(n *Naive) error {
		if size <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		n.chunkSize = size
		return nil
	}
}

// NewNaive creates a naive segmenter.
func NewNaive(opts ...NaiveOption) (*Naive, error) {
	n := &Naive{chunkSize: 4000}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	// Pre-chunk oversized pages on paragraph, line and sentence breaks so
	// no chunk splits a sentence mid-word if it can help it.
	n.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(n.chunkSize),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " "}),
	)
	return n, nil
}

// SegmentPage splits page text into sentences with lowercase lemma text.
func (n *Naive) SegmentPage(ctx context.Context, text, lang string) ([]core.Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return []core.Sentence{}, nil
	}

	chunks := []string{text}
	if len(text) > n.chunkSize {
		var err error
		chunks, err = n.splitter.SplitText(text)
		if err != nil {
			return nil, fmt.Errorf("chunking page text: %w", err)
		}
	}

	lang = core.NormalizeLang(lang)
	var sentences []core.Sentence
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, s := range splitSentences(chunk) {
			sentences = append(sentences, core.Sentence{
				Index:     len(sentences),
				Lang:      lang,
				Text:      s,
				LemmaText: naiveLemma(s),
			})
		}
	}
	return sentences, nil
}

// splitSentences cuts text at sentence boundaries, keeping the final
// punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	prev := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[prev:loc[1]]); s != "" {
			out = append(out, s)
		}
		prev = loc[1]
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		out = append(out, s)
	}
	return out
}

// naiveLemma lowercases tokens and detaches trailing punctuation into its
// own token, mimicking the shape of tokenizer output.
func naiveLemma(sentence string) string {
	words := strings.Fields(sentence)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimLeft(w, "'\"([{"))
		stem := strings.TrimRight(w, ".,!?;:'\")]}")
		if stem != "" {
			tokens = append(tokens, stem)
		}
		if tail := w[len(stem):]; tail != "" {
			tokens = append(tokens, tail)
		}
	}
	return strings.Join(tokens, " ")
}
