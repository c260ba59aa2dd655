package core

// Hand-written MUS serializers for every persisted record. Field order is the
// wire format: append new fields at the end only.

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Serializer values, one per persisted type.
var (
	IDMUS                       = idMUS{}
	TimeMUS                     = timeMUS{}
	ConceptMUS                  = conceptMUS{}
	LexiconTermMUS              = lexiconTermMUS{}
	KeyPhraseMUS                = keyPhraseMUS{}
	PatternRuleMUS              = patternRuleMUS{}
	GroupMUS                    = groupMUS{}
	GroupTermMUS                = groupTermMUS{}
	DocumentMUS                 = documentMUS{}
	SentenceMUS                 = sentenceMUS{}
	EvidenceMUS                 = evidenceMUS{}
	DocConceptOverrideMUS       = docConceptOverrideMUS{}
	DocConceptScoreMUS          = docConceptScoreMUS{}
	GroupMentionCountMUS        = groupMentionCountMUS{}
	ConceptGroupCooccurrenceMUS = conceptGroupCooccurrenceMUS{}
	DocumentIndicesMUS          = documentIndicesMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS encodes timestamps as Unix microseconds, always UTC on decode.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type conceptMUS struct{}

func (conceptMUS) Marshal(v Concept, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.NameEN, bs[n:])
	n += ord.String.Marshal(v.NamePT, bs[n:])
	n += ord.String.Marshal(v.DefinitionEN, bs[n:])
	n += ord.String.Marshal(v.DefinitionPT, bs[n:])
	return
}

func (conceptMUS) Unmarshal(bs []byte) (v Concept, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.NameEN, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.NamePT, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DefinitionEN, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.DefinitionPT, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (conceptMUS) Size(v Concept) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.NameEN)
	size += ord.String.Size(v.NamePT)
	size += ord.String.Size(v.DefinitionEN)
	size += ord.String.Size(v.DefinitionPT)
	return
}

func (s conceptMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type lexiconTermMUS struct{}

func (lexiconTermMUS) Marshal(v LexiconTerm, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ConceptID, bs)
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.Term, bs[n:])
	n += ord.String.Marshal(v.Lemma, bs[n:])
	n += raw.Float64.Marshal(v.Weight, bs[n:])
	n += varint.Int.Marshal(v.Priority, bs[n:])
	n += ord.String.Marshal(v.SourceRef, bs[n:])
	return
}

func (lexiconTermMUS) Unmarshal(bs []byte) (v LexiconTerm, n int, err error) {
	var n1 int
	if v.ConceptID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Term, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Lemma, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Weight, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Priority, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.SourceRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (lexiconTermMUS) Size(v LexiconTerm) (size int) {
	size = IDMUS.Size(v.ConceptID)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.Term)
	size += ord.String.Size(v.Lemma)
	size += raw.Float64.Size(v.Weight)
	size += varint.Int.Size(v.Priority)
	size += ord.String.Size(v.SourceRef)
	return
}

func (s lexiconTermMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type keyPhraseMUS struct{}

func (keyPhraseMUS) Marshal(v KeyPhrase, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ConceptID, bs)
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.Phrase, bs[n:])
	n += raw.Float64.Marshal(v.Weight, bs[n:])
	n += varint.Int.Marshal(v.Priority, bs[n:])
	n += ord.String.Marshal(v.SourceRef, bs[n:])
	return
}

func (keyPhraseMUS) Unmarshal(bs []byte) (v KeyPhrase, n int, err error) {
	var n1 int
	if v.ConceptID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Phrase, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Weight, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Priority, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.SourceRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (keyPhraseMUS) Size(v KeyPhrase) (size int) {
	size = IDMUS.Size(v.ConceptID)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.Phrase)
	size += raw.Float64.Size(v.Weight)
	size += varint.Int.Size(v.Priority)
	size += ord.String.Size(v.SourceRef)
	return
}

func (s keyPhraseMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type patternRuleMUS struct{}

func (patternRuleMUS) Marshal(v PatternRule, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.LevelType, bs[n:])
	n += ord.String.Marshal(v.Pattern, bs[n:])
	n += ord.String.Marshal(v.NegationPattern, bs[n:])
	n += varint.Int.Marshal(v.Priority, bs[n:])
	n += ord.String.Marshal(v.SourceRef, bs[n:])
	return
}

func (patternRuleMUS) Unmarshal(bs []byte) (v PatternRule, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LevelType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Pattern, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.NegationPattern, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Priority, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.SourceRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (patternRuleMUS) Size(v PatternRule) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.LevelType)
	size += ord.String.Size(v.Pattern)
	size += ord.String.Size(v.NegationPattern)
	size += varint.Int.Size(v.Priority)
	size += ord.String.Size(v.SourceRef)
	return
}

func (s patternRuleMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type groupMUS struct{}

func (groupMUS) Marshal(v Group, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.NameEN, bs[n:])
	n += ord.String.Marshal(v.NamePT, bs[n:])
	return
}

func (groupMUS) Unmarshal(bs []byte) (v Group, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.NameEN, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.NamePT, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (groupMUS) Size(v Group) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.NameEN)
	size += ord.String.Size(v.NamePT)
	return
}

func (s groupMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type groupTermMUS struct{}

func (groupTermMUS) Marshal(v GroupTerm, bs []byte) (n int) {
	n = IDMUS.Marshal(v.GroupID, bs)
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.Term, bs[n:])
	n += raw.Float64.Marshal(v.Weight, bs[n:])
	n += varint.Int.Marshal(v.Priority, bs[n:])
	n += ord.String.Marshal(v.SourceRef, bs[n:])
	return
}

func (groupTermMUS) Unmarshal(bs []byte) (v GroupTerm, n int, err error) {
	var n1 int
	if v.GroupID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Term, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Weight, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Priority, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.SourceRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (groupTermMUS) Size(v GroupTerm) (size int) {
	size = IDMUS.Size(v.GroupID)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.Term)
	size += raw.Float64.Size(v.Weight)
	size += varint.Int.Size(v.Priority)
	size += ord.String.Size(v.SourceRef)
	return
}

func (s groupTermMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type documentMUS struct{}

func (documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += varint.Int.Marshal(v.SentenceCount, bs[n:])
	n += varint.Int.Marshal(v.EvidenceCount, bs[n:])
	n += ord.String.Marshal(v.LastError, bs[n:])
	n += TimeMUS.Marshal(v.CreatedAt, bs[n:])
	n += TimeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var status int
	if status, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Status = DocStatus(status)
	n += n1
	if v.SentenceCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.EvidenceCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LastError, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CreatedAt, n1, err = TimeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Lang)
	size += varint.Int.Size(int(v.Status))
	size += varint.Int.Size(v.SentenceCount)
	size += varint.Int.Size(v.EvidenceCount)
	size += ord.String.Size(v.LastError)
	size += TimeMUS.Size(v.CreatedAt)
	size += TimeMUS.Size(v.UpdatedAt)
	return
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type sentenceMUS struct{}

func (sentenceMUS) Marshal(v Sentence, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += varint.Int.Marshal(v.Page, bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(v.LemmaText, bs[n:])
	return
}

func (sentenceMUS) Unmarshal(bs []byte) (v Sentence, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Page, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Index, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.LemmaText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (sentenceMUS) Size(v Sentence) (size int) {
	size = IDMUS.Size(v.DocID)
	size += varint.Int.Size(v.Page)
	size += varint.Int.Size(v.Index)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.Text)
	size += ord.String.Size(v.LemmaText)
	return
}

func (s sentenceMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type evidenceMUS struct{}

func (evidenceMUS) Marshal(v Evidence, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.DocID, bs[n:])
	n += ord.String.Marshal(v.DocName, bs[n:])
	n += IDMUS.Marshal(v.ConceptID, bs[n:])
	n += ord.String.Marshal(v.MatchType, bs[n:])
	n += varint.Int.Marshal(v.Level, bs[n:])
	n += ord.String.Marshal(v.Lang, bs[n:])
	n += ord.String.Marshal(v.Snippet, bs[n:])
	n += ord.String.Marshal(v.Pattern, bs[n:])
	n += ord.String.Marshal(v.TermOrPhrase, bs[n:])
	n += IDMUS.Marshal(v.RuleID, bs[n:])
	n += raw.Float64.Marshal(v.Score, bs[n:])
	n += varint.Int.Marshal(v.Page, bs[n:])
	n += TimeMUS.Marshal(v.CreatedAt, bs[n:])
	return
}

func (evidenceMUS) Unmarshal(bs []byte) (v Evidence, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.DocID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DocName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ConceptID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.MatchType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Level, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Lang, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Snippet, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Pattern, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.TermOrPhrase, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.RuleID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Score, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Page, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.CreatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (evidenceMUS) Size(v Evidence) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.DocID)
	size += ord.String.Size(v.DocName)
	size += IDMUS.Size(v.ConceptID)
	size += ord.String.Size(v.MatchType)
	size += varint.Int.Size(v.Level)
	size += ord.String.Size(v.Lang)
	size += ord.String.Size(v.Snippet)
	size += ord.String.Size(v.Pattern)
	size += ord.String.Size(v.TermOrPhrase)
	size += IDMUS.Size(v.RuleID)
	size += raw.Float64.Size(v.Score)
	size += varint.Int.Size(v.Page)
	size += TimeMUS.Size(v.CreatedAt)
	return
}

func (s evidenceMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type docConceptOverrideMUS struct{}

func (docConceptOverrideMUS) Marshal(v DocConceptOverride, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += IDMUS.Marshal(v.ConceptID, bs[n:])
	n += varint.Int.Marshal(v.Level, bs[n:])
	return
}

func (docConceptOverrideMUS) Unmarshal(bs []byte) (v DocConceptOverride, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.ConceptID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.Level, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (docConceptOverrideMUS) Size(v DocConceptOverride) (size int) {
	return IDMUS.Size(v.DocID) + IDMUS.Size(v.ConceptID) + varint.Int.Size(v.Level)
}

func (s docConceptOverrideMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type docConceptScoreMUS struct{}

func (docConceptScoreMUS) Marshal(v DocConceptScore, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += IDMUS.Marshal(v.ConceptID, bs[n:])
	n += varint.Int.Marshal(v.BestLevel, bs[n:])
	n += varint.Int.Marshal(v.EvidenceCnt, bs[n:])
	return
}

func (docConceptScoreMUS) Unmarshal(bs []byte) (v DocConceptScore, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.ConceptID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.BestLevel, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.EvidenceCnt, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (docConceptScoreMUS) Size(v DocConceptScore) (size int) {
	return IDMUS.Size(v.DocID) + IDMUS.Size(v.ConceptID) +
		varint.Int.Size(v.BestLevel) + varint.Int.Size(v.EvidenceCnt)
}

func (s docConceptScoreMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type groupMentionCountMUS struct{}

func (groupMentionCountMUS) Marshal(v GroupMentionCount, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += IDMUS.Marshal(v.GroupID, bs[n:])
	n += varint.Int.Marshal(v.MentionCnt, bs[n:])
	return
}

func (groupMentionCountMUS) Unmarshal(bs []byte) (v GroupMentionCount, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.GroupID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.MentionCnt, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (groupMentionCountMUS) Size(v GroupMentionCount) (size int) {
	return IDMUS.Size(v.DocID) + IDMUS.Size(v.GroupID) + varint.Int.Size(v.MentionCnt)
}

func (s groupMentionCountMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type conceptGroupCooccurrenceMUS struct{}

func (conceptGroupCooccurrenceMUS) Marshal(v ConceptGroupCooccurrence, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += IDMUS.Marshal(v.ConceptID, bs[n:])
	n += IDMUS.Marshal(v.GroupID, bs[n:])
	n += varint.Int.Marshal(v.SnippetCnt, bs[n:])
	return
}

func (conceptGroupCooccurrenceMUS) Unmarshal(bs []byte) (v ConceptGroupCooccurrence, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.ConceptID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.GroupID, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.SnippetCnt, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (conceptGroupCooccurrenceMUS) Size(v ConceptGroupCooccurrence) (size int) {
	return IDMUS.Size(v.DocID) + IDMUS.Size(v.ConceptID) +
		IDMUS.Size(v.GroupID) + varint.Int.Size(v.SnippetCnt)
}

func (s conceptGroupCooccurrenceMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type documentIndicesMUS struct{}

func (documentIndicesMUS) Marshal(v DocumentIndices, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocID, bs)
	n += varint.Int.Marshal(v.CCCovered, bs[n:])
	n += varint.Int.Marshal(v.CCQuality3P, bs[n:])
	n += varint.Int.Marshal(v.VGCovered, bs[n:])
	n += raw.Float64.Marshal(v.PctCCCovered, bs[n:])
	n += raw.Float64.Marshal(v.PctCCQuality3P, bs[n:])
	n += TimeMUS.Marshal(v.ComputedAt, bs[n:])
	return
}

func (documentIndicesMUS) Unmarshal(bs []byte) (v DocumentIndices, n int, err error) {
	var n1 int
	if v.DocID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.CCCovered, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CCQuality3P, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.VGCovered, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PctCCCovered, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PctCCQuality3P, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.ComputedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentIndicesMUS) Size(v DocumentIndices) (size int) {
	size = IDMUS.Size(v.DocID)
	size += varint.Int.Size(v.CCCovered)
	size += varint.Int.Size(v.CCQuality3P)
	size += varint.Int.Size(v.VGCovered)
	size += raw.Float64.Size(v.PctCCCovered)
	size += raw.Float64.Size(v.PctCCQuality3P)
	size += TimeMUS.Size(v.ComputedAt)
	return
}

func (s documentIndicesMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
