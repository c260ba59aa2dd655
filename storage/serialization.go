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


package storage

import (
	"github.com/equilex/equilex/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalSentence serializes a Sentence to bytes.
func MarshalSentence(sent *core.Sentence) []byte {
	buf := make([]byte, core.SentenceMUS.Size(*sent))
	core.SentenceMUS.Marshal(*sent, buf)
	return buf
}

// UnmarshalSentence deserializes a Sentence from bytes.
func UnmarshalSentence(data []byte) (*core.Sentence, error) {
	sent, _, err := core.SentenceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// MarshalEvidence serializes an Evidence to bytes.
func MarshalEvidence(ev *core.Evidence) []byte {
	buf := make([]byte, core.EvidenceMUS.Size(*ev))
	core.EvidenceMUS.Marshal(*ev, buf)
	return buf
}

// UnmarshalEvidence deserializes an Evidence from bytes.
func UnmarshalEvidence(data []byte) (*core.Evidence, error) {
	ev, _, err := core.EvidenceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// MarshalConcept serializes a Concept to bytes.
func MarshalConcept(concept *core.Concept) []byte {
	buf := make([]byte, core.ConceptMUS.Size(*concept))
	core.ConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalConcept deserializes a Concept from bytes.
func UnmarshalConcept(data []byte) (*core.Concept, error) {
	concept, _, err := core.ConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

// MarshalLexiconTerm serializes a LexiconTerm to bytes.
func MarshalLexiconTerm(term *core.LexiconTerm) []byte {
	buf := make([]byte, core.LexiconTermMUS.Size(*term))
	core.LexiconTermMUS.Marshal(*term, buf)
	return buf
}

// UnmarshalLexiconTerm deserializes a LexiconTerm from bytes.
func UnmarshalLexiconTerm(data []byte) (*core.LexiconTerm, error) {
	term, _, err := core.LexiconTermMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// MarshalKeyPhrase serializes a KeyPhrase to bytes.
func MarshalKeyPhrase(phrase *core.KeyPhrase) []byte {
	buf := make([]byte, core.KeyPhraseMUS.Size(*phrase))
	core.KeyPhraseMUS.Marshal(*phrase, buf)
	return buf
}

// UnmarshalKeyPhrase deserializes a KeyPhrase from bytes.
func UnmarshalKeyPhrase(data []byte) (*core.KeyPhrase, error) {
	phrase, _, err := core.KeyPhraseMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &phrase, nil
}

// MarshalPatternRule serializes a PatternRule to bytes.
func MarshalPatternRule(rule *core.PatternRule) []byte {
	buf := make([]byte, core.PatternRuleMUS.Size(*rule))
	core.PatternRuleMUS.Marshal(*rule, buf)
	return buf
}

// UnmarshalPatternRule deserializes a PatternRule from bytes.
func UnmarshalPatternRule(data []byte) (*core.PatternRule, error) {
	rule, _, err := core.PatternRuleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// MarshalGroup serializes a Group to bytes.
func MarshalGroup(group *core.Group) []byte {
	buf := make([]byte, core.GroupMUS.Size(*group))
	core.GroupMUS.Marshal(*group, buf)
	return buf
}

// UnmarshalGroup deserializes a Group from bytes.
func UnmarshalGroup(data []byte) (*core.Group, error) {
	group, _, err := core.GroupMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// MarshalGroupTerm serializes a GroupTerm to bytes.
func MarshalGroupTerm(term *core.GroupTerm) []byte {
	buf := make([]byte, core.GroupTermMUS.Size(*term))
	core.GroupTermMUS.Marshal(*term, buf)
	return buf
}

// UnmarshalGroupTerm deserializes a GroupTerm from bytes.
func UnmarshalGroupTerm(data []byte) (*core.GroupTerm, error) {
	term, _, err := core.GroupTermMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// MarshalOverride serializes a DocConceptOverride to bytes.
func MarshalOverride(ov *core.DocConceptOverride) []byte {
	buf := make([]byte, core.DocConceptOverrideMUS.Size(*ov))
	core.DocConceptOverrideMUS.Marshal(*ov, buf)
	return buf
}

// UnmarshalOverride deserializes a DocConceptOverride from bytes.
func UnmarshalOverride(data []byte) (*core.DocConceptOverride, error) {
	ov, _, err := core.DocConceptOverrideMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// MarshalConceptScore serializes a DocConceptScore to bytes.
func MarshalConceptScore(score *core.DocConceptScore) []byte {
	buf := make([]byte, core.DocConceptScoreMUS.Size(*score))
	core.DocConceptScoreMUS.Marshal(*score, buf)
	return buf
}

// UnmarshalConceptScore deserializes a DocConceptScore from bytes.
func UnmarshalConceptScore(data []byte) (*core.DocConceptScore, error) {
	score, _, err := core.DocConceptScoreMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// MarshalGroupMention serializes a GroupMentionCount to bytes.
func MarshalGroupMention(gm *core.GroupMentionCount) []byte {
	buf := make([]byte, core.GroupMentionCountMUS.Size(*gm))
	core.GroupMentionCountMUS.Marshal(*gm, buf)
	return buf
}

// UnmarshalGroupMention deserializes a GroupMentionCount from bytes.
func UnmarshalGroupMention(data []byte) (*core.GroupMentionCount, error) {
	gm, _, err := core.GroupMentionCountMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &gm, nil
}

// MarshalCooccurrence serializes a ConceptGroupCooccurrence to bytes.
func MarshalCooccurrence(co *core.ConceptGroupCooccurrence) []byte {
	buf := make([]byte, core.ConceptGroupCooccurrenceMUS.Size(*co))
	core.ConceptGroupCooccurrenceMUS.Marshal(*co, buf)
	return buf
}

// UnmarshalCooccurrence deserializes a ConceptGroupCooccurrence from bytes.
func UnmarshalCooccurrence(data []byte) (*core.ConceptGroupCooccurrence, error) {
	co, _, err := core.ConceptGroupCooccurrenceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &co, nil
}

// MarshalIndices serializes a DocumentIndices to bytes.
func MarshalIndices(ix *core.DocumentIndices) []byte {
	buf := make([]byte, core.DocumentIndicesMUS.Size(*ix))
	core.DocumentIndicesMUS.Marshal(*ix, buf)
	return buf
}

// UnmarshalIndices deserializes a DocumentIndices from bytes.
func UnmarshalIndices(data []byte) (*core.DocumentIndices, error) {
	ix, _, err := core.DocumentIndicesMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ix, nil
}
