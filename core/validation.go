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


package core

import (
	"fmt"
	"strings"
)

// ValidateEvidence validates an Evidence according to domain rules.
//
// Validation rules:
//   - DocName must not be empty
//   - ConceptID must be set
//   - Snippet must not be empty
//   - Level must be within 1-4
//
// NOT validated (optional provenance):
//   - Pattern, TermOrPhrase, RuleID, Page, Score
func ValidateEvidence(ev *Evidence) error {
	if ev == nil {
		return fmt.Errorf("%w: evidence is nil", ErrInvalidEvidence)
	}
	if ev.DocName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptyDocName)
	}
	if ev.ConceptID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrMissingConcept)
	}
	if ev.Snippet == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptySnippet)
	}
	if err := ValidateLevel(ev.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, err)
	}
	return nil
}

// ValidateLexiconTerm validates a LexiconTerm according to domain rules.
// A term with no lemma is usable: the matcher falls back to the term itself.
func ValidateLexiconTerm(t *LexiconTerm) error {
	if t == nil {
		return fmt.Errorf("%w: term is nil", ErrInvalidLexiconTerm)
	}
	if t.ConceptID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLexiconTerm, ErrMissingConcept)
	}
	if t.Term == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLexiconTerm, ErrEmptyTerm)
	}
	return nil
}

// ValidateKeyPhrase validates a KeyPhrase according to domain rules.
func ValidateKeyPhrase(p *KeyPhrase) error {
	if p == nil {
		return fmt.Errorf("%w: phrase is nil", ErrInvalidKeyPhrase)
	}
	if p.ConceptID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKeyPhrase, ErrMissingConcept)
	}
	if p.Phrase == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKeyPhrase, ErrEmptyTerm)
	}
	return nil
}

// ValidatePatternRule validates a PatternRule according to domain rules.
// The regex itself is compiled (and possibly rejected) at index build time,
// not here: a syntactically broken pattern is a build-time skip, not a
// storage-time failure.
func ValidatePatternRule(r *PatternRule) error {
	if r == nil {
		return fmt.Errorf("%w: rule is nil", ErrInvalidPatternRule)
	}
	if r.Pattern == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPatternRule, ErrEmptyPattern)
	}
	if r.LevelType == "" {
		return fmt.Errorf("%w: level type is required", ErrInvalidPatternRule)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocName)
	}
	return nil
}

// ValidateLevel checks that a level is within the ordinal 1-4 range.
func ValidateLevel(level int) error {
	if level < LevelMention || level > LevelMonitor {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return nil
}

// NormalizeLang lower-cases and trims a language code. An unset language or
// an explicit "*" maps to the empty string, which the dictionary index treats
// as the wildcard bucket.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "*" {
		return ""
	}
	return lang
}
