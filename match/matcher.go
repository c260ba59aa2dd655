package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/dictionary"
)

// Candidate is one potential evidence emitted for a sentence, before the
// per-concept merge.
type Candidate struct {
	ConceptID    core.ID // 0 until consolidation for pattern-only hits
	MatchType    string
	Level        int
	RuleID       core.ID
	Pattern      string
	TermOrPhrase string
	Score        float64
}

// Matcher runs the three dictionary passes over single sentences.
// It is stateless and safe for concurrent use.
type Matcher struct {
	scoring Scoring
}

// NewMatcher creates a matcher with the given scoring constants.
func NewMatcher(scoring Scoring) *Matcher {
	return &Matcher{scoring: scoring}
}

// MatchSentence returns at most one candidate per concept for the sentence:
// the lexical term pass, the key phrase pass and the pattern rule pass run
// in order, pattern-only hits borrow the sentence's strongest concept, and
// the survivors are merged best-score-per-concept.
func (m *Matcher) MatchSentence(text, lemmaText, lang string, idx *dictionary.Index) []Candidate {
	var out []Candidate
	textLower := strings.ToLower(text)

	// 1) Lexicon terms: whole-token lemma match, fuzzy fallback on raw text.
	for _, term := range idx.TermsFor(lang) {
		hit := containsToken(lemmaText, strings.ToLower(term.Lemma))
		if !hit {
			hit = fuzzy.PartialRatio(strings.ToLower(term.Term), textLower) >= m.scoring.FuzzyThreshold
		}
		if hit {
			out = append(out, Candidate{
				ConceptID:    term.ConceptID,
				MatchType:    core.MatchTypeLexical,
				Level:        core.LevelMention,
				TermOrPhrase: term.Term,
				Score:        m.scoring.TermWeight*term.Weight + m.scoring.TermPriority*float64(term.Priority),
			})
		}
	}

	// 2) Key phrases: case-insensitive substring.
	for _, phrase := range idx.PhrasesFor(lang) {
		p := strings.ToLower(phrase.Phrase)
		if p != "" && strings.Contains(textLower, p) {
			out = append(out, Candidate{
				ConceptID:    phrase.ConceptID,
				MatchType:    core.MatchTypeLexical,
				Level:        core.LevelMention,
				TermOrPhrase: phrase.Phrase,
				Score:        m.scoring.PhraseWeight*phrase.Weight + m.scoring.PhrasePriority*float64(phrase.Priority),
			})
		}
	}

	// 3) Pattern rules: regex with negation dampening. Rules carry no
	// concept of their own.
	for _, rule := range idx.RulesFor(lang) {
		if !rule.Pattern.MatchString(text) {
			continue
		}
		score := m.scoring.PatternBase + m.scoring.PatternPriority*float64(rule.Priority)
		if rule.Negation != nil && rule.Negation.MatchString(text) && rule.LevelType != "negation" {
			score *= m.scoring.NegationDampening
		}
		out = append(out, Candidate{
			MatchType: core.MatchTypePattern,
			Level:     rule.Level,
			RuleID:    rule.ID,
			Pattern:   rule.PatternStr,
			Score:     score,
		})
	}

	out = consolidate(out)
	return merge(out)
}

// containsToken reports whether lemma occurs in lemmaText on whole-token
// boundaries. Multi-word lemmas match as contiguous token runs.
func containsToken(lemmaText, lemma string) bool {
	if lemma == "" || lemmaText == "" {
		return false
	}
	return strings.Contains(" "+lemmaText+" ", " "+lemma+" ")
}

// consolidate lets concept-less pattern hits borrow the concept of the
// sentence's highest-scoring concept-bearing candidate (first seen wins on
// ties), then drops any hit still without a concept.
func consolidate(candidates []Candidate) []Candidate {
	var best core.ID
	bestScore := -1.0
	for _, c := range candidates {
		if c.ConceptID != 0 && c.Score > bestScore {
			best, bestScore = c.ConceptID, c.Score
		}
	}

	out := candidates[:0]
	for _, c := range candidates {
		if c.ConceptID == 0 && c.RuleID != 0 {
			if best == 0 {
				continue // nothing to borrow from, discard
			}
			c.ConceptID = best
		}
		if c.ConceptID == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// merge keeps the single highest-scoring candidate per concept, first seen
// winning on ties.
func merge(candidates []Candidate) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	bestByConcept := make(map[core.ID]int, len(candidates))
	var order []core.ID
	for i, c := range candidates {
		if j, ok := bestByConcept[c.ConceptID]; ok {
			if c.Score > candidates[j].Score {
				bestByConcept[c.ConceptID] = i
			}
			continue
		}
		bestByConcept[c.ConceptID] = i
		order = append(order, c.ConceptID)
	}

	out := make([]Candidate, 0, len(order))
	for _, cid := range order {
		out = append(out, candidates[bestByConcept[cid]])
	}
	return out
}
