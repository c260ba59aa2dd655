package match

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scoring holds the confidence formula constants. Scores rank competing
// candidates within a sentence; they are not calibrated probabilities.
type Scoring struct {
	// TermWeight and TermPriority scale a lexicon term hit:
	// score = TermWeight*weight + TermPriority*priority.
	TermWeight   float64 `yaml:"term_weight"`
	TermPriority float64 `yaml:"term_priority"`

	// PhraseWeight and PhrasePriority scale a key phrase hit:
	// score = PhraseWeight*weight + PhrasePriority*priority.
	PhraseWeight   float64 `yaml:"phrase_weight"`
	PhrasePriority float64 `yaml:"phrase_priority"`

	// PatternBase and PatternPriority scale a pattern rule hit:
	// score = PatternBase + PatternPriority*priority.
	PatternBase     float64 `yaml:"pattern_base"`
	PatternPriority float64 `yaml:"pattern_priority"`

	// NegationDampening multiplies a non-negation rule's score when its
	// negation pattern also matches the sentence. The level is untouched.
	NegationDampening float64 `yaml:"negation_dampening"`

	// FuzzyThreshold is the minimum partial-ratio (0-100) for the fuzzy
	// fallback of the lexical term pass.
	FuzzyThreshold int `yaml:"fuzzy_threshold"`
}

// DefaultScoring returns the standard constants.
func DefaultScoring() Scoring {
	return Scoring{
		TermWeight:        0.5,
		TermPriority:      0.1,
		PhraseWeight:      1.0,
		PhrasePriority:    0.2,
		PatternBase:       1.5,
		PatternPriority:   0.3,
		NegationDampening: 0.2,
		FuzzyThreshold:    90,
	}
}

// LoadScoring reads YAML overrides over the defaults. Keys absent from the
// file keep their default values.
func LoadScoring(path string) (Scoring, error) {
	s := DefaultScoring()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultScoring(), fmt.Errorf("parsing scoring config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return DefaultScoring(), err
	}
	return s, nil
}

// Validate rejects constants that would break ranking.
func (s Scoring) Validate() error {
	if s.NegationDampening < 0 || s.NegationDampening > 1 {
		return fmt.Errorf("negation_dampening must be within [0,1], got %v", s.NegationDampening)
	}
	if s.FuzzyThreshold < 0 || s.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy_threshold must be within [0,100], got %d", s.FuzzyThreshold)
	}
	return nil
}
