package dictionary

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

// CompiledRule is a pattern rule with its regexes compiled and its numeric
// level resolved, ready for matching.
type CompiledRule struct {
	ID         core.ID
	LevelType  string
	Level      int
	Priority   int
	Pattern    *regexp.Regexp
	PatternStr string
	Negation   *regexp.Regexp
}

// Index is an immutable, language-partitioned snapshot of the dictionary.
// Build once, share across goroutines.
type Index struct {
	version      uint64
	conceptCount int
	concepts     map[core.ID]*core.Concept
	terms        map[string][]*core.LexiconTerm
	phrases      map[string][]*core.KeyPhrase
	rules        map[string][]*CompiledRule
}

// Build loads the whole dictionary from the store into an Index. Rules whose
// regex fails to compile are skipped and logged, never fatal. Missing lemmas
// fall back to the term; zero weights and priorities get the defaults 1.0
// and 1.
func Build(ctx context.Context, dict storage.DictionaryRepository) (*Index, error) {
	version, err := dict.Version(ctx)
	if err != nil {
		return nil, err
	}

	concepts, err := dict.GetAllConcepts(ctx)
	if err != nil {
		return nil, err
	}
	terms, err := dict.GetAllLexiconTerms(ctx)
	if err != nil {
		return nil, err
	}
	phrases, err := dict.GetAllKeyPhrases(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := dict.GetAllPatternRules(ctx)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		version:      version,
		conceptCount: len(concepts),
		concepts:     make(map[core.ID]*core.Concept, len(concepts)),
		terms:        make(map[string][]*core.LexiconTerm),
		phrases:      make(map[string][]*core.KeyPhrase),
		rules:        make(map[string][]*CompiledRule),
	}

	for _, concept := range concepts {
		idx.concepts[concept.Id] = concept
	}

	for _, term := range terms {
		t := *term
		t.Lang = core.NormalizeLang(t.Lang)
		if t.Lemma == "" {
			t.Lemma = t.Term
		}
		if t.Weight == 0 {
			t.Weight = 1.0
		}
		if t.Priority == 0 {
			t.Priority = 1
		}
		idx.terms[t.Lang] = append(idx.terms[t.Lang], &t)
	}

	for _, phrase := range phrases {
		p := *phrase
		p.Lang = core.NormalizeLang(p.Lang)
		if p.Weight == 0 {
			p.Weight = 1.0
		}
		if p.Priority == 0 {
			p.Priority = 1
		}
		idx.phrases[p.Lang] = append(idx.phrases[p.Lang], &p)
	}

	for _, rule := range rules {
		lang := core.NormalizeLang(rule.Lang)
		pattern, err := regexp.Compile("(?im)" + rule.Pattern)
		if err != nil {
			slog.Warn("skipping pattern rule with invalid regex",
				"rule_id", rule.Id, "pattern", rule.Pattern, "error", err)
			continue
		}
		var negation *regexp.Regexp
		if rule.NegationPattern != "" {
			negation, err = regexp.Compile("(?im)" + rule.NegationPattern)
			if err != nil {
				slog.Warn("skipping pattern rule with invalid negation regex",
					"rule_id", rule.Id, "pattern", rule.NegationPattern, "error", err)
				continue
			}
		}
		priority := rule.Priority
		if priority == 0 {
			priority = 1
		}
		idx.rules[lang] = append(idx.rules[lang], &CompiledRule{
			ID:         rule.Id,
			LevelType:  rule.LevelType,
			Level:      core.LevelForType(rule.LevelType),
			Priority:   priority,
			Pattern:    pattern,
			PatternStr: rule.Pattern,
			Negation:   negation,
		})
	}

	return idx, nil
}

// Version returns the dictionary version this index was built from.
func (idx *Index) Version() uint64 {
	return idx.version
}

// ConceptCount returns the size of the concept catalog.
func (idx *Index) ConceptCount() int {
	return idx.conceptCount
}

// Concept returns the concept with the given ID, or nil.
func (idx *Index) Concept(id core.ID) *core.Concept {
	return idx.concepts[id]
}

// TermsFor returns lexicon terms for a language: the language's own bucket
// followed by the wildcard bucket.
func (idx *Index) TermsFor(lang string) []*core.LexiconTerm {
	return langBucket(idx.terms, core.NormalizeLang(lang))
}

// PhrasesFor returns key phrases for a language plus the wildcard bucket.
func (idx *Index) PhrasesFor(lang string) []*core.KeyPhrase {
	return langBucket(idx.phrases, core.NormalizeLang(lang))
}

// RulesFor returns compiled pattern rules for a language plus the wildcard
// bucket.
func (idx *Index) RulesFor(lang string) []*CompiledRule {
	return langBucket(idx.rules, core.NormalizeLang(lang))
}

func langBucket[T any](m map[string][]T, lang string) []T {
	bucket := m[lang]
	if lang == "" {
		return bucket
	}
	wildcard := m[""]
	if len(wildcard) == 0 {
		return bucket
	}
	out := make([]T, 0, len(bucket)+len(wildcard))
	out = append(out, bucket...)
	return append(out, wildcard...)
}
