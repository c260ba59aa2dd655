package badger

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/equilex/equilex/core"
)

// Key prefixes for different data types
const (
	docRecordPrefix    = "docrec"
	docNamePrefix      = "docname"
	docIDSeq           = "docrecseq"
	sentencePrefix     = "sentrec"
	conceptPrefix      = "conrec"
	lexiconPrefix      = "lexrec"
	keyPhrasePrefix    = "phrrec"
	patternPrefix      = "rulrec"
	dictVersionKey     = "dictver"
	groupPrefix        = "grprec"
	groupTermPrefix    = "grpterm"
	evidencePrefix     = "evirec"
	overridePrefix     = "ovrrec"
	conceptScorePrefix = "aggsco"
	groupMentionPrefix = "aggmen"
	cooccurrencePrefix = "aggcoo"
	indicesPrefix      = "aggidx"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", docRecordPrefix, id))
}

// makeDocumentNameKey generates a key for the document name index.
func makeDocumentNameKey(name string) []byte {
	return []byte(docNamePrefix + ":" + name)
}

// makeSentenceKey generates a composite key for a stored sentence.
// Format: prefix:docID:page:index, all BigEndian so iteration yields
// sentences in document order.
func makeSentenceKey(docID core.ID, page, index int) []byte {
	prefix := []byte(sentencePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint32(buf[offset:], uint32(page))
	offset += 4
	binary.BigEndian.PutUint32(buf[offset:], uint32(index))
	return buf
}

// makeSentenceDocPrefix generates the scan prefix for one document's sentences.
func makeSentenceDocPrefix(docID core.ID) []byte {
	prefix := []byte(sentencePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptPrefix, id))
}

// makeLexiconTermKey generates a content-derived key for a lexicon term.
// The identity of a term row is its (concept, lang, term) tuple, so
// re-upserting the same row overwrites in place.
func makeLexiconTermKey(t *core.LexiconTerm) []byte {
	hash := core.IDFromContent(strconv.FormatUint(uint64(t.ConceptID), 10) + "\x00" + t.Lang + "\x00" + t.Term)
	return []byte(fmt.Sprintf("%s:%d", lexiconPrefix, hash))
}

// makeKeyPhraseKey generates a content-derived key for a key phrase.
func makeKeyPhraseKey(p *core.KeyPhrase) []byte {
	hash := core.IDFromContent(strconv.FormatUint(uint64(p.ConceptID), 10) + "\x00" + p.Lang + "\x00" + p.Phrase)
	return []byte(fmt.Sprintf("%s:%d", keyPhrasePrefix, hash))
}

// makePatternRuleKey generates a key for a pattern rule by ID.
func makePatternRuleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", patternPrefix, id))
}

// makeGroupKey generates a key for a group by ID.
func makeGroupKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", groupPrefix, id))
}

// makeGroupTermKey generates a lang-bucketed, content-derived key for a group
// term. Format: prefix:lang\x00hash so one language bucket is a single
// contiguous scan range.
func makeGroupTermKey(t *core.GroupTerm) []byte {
	hash := core.IDFromContent(strconv.FormatUint(uint64(t.GroupID), 10) + "\x00" + t.Term)
	prefix := []byte(groupTermPrefix + ":" + t.Lang + "\x00")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(hash))
	return buf
}

// makeGroupTermLangPrefix generates the scan prefix for one language bucket.
func makeGroupTermLangPrefix(lang string) []byte {
	return []byte(groupTermPrefix + ":" + lang + "\x00")
}

// makeEvidenceKey generates a composite key for an evidence.
// Format: prefix:docID:evidenceID, both BigEndian so one document's
// evidences form a contiguous scan range.
func makeEvidenceKey(docID, evidenceID core.ID) []byte {
	prefix := []byte(evidencePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(evidenceID))
	return buf
}

// makeEvidenceDocPrefix generates the scan prefix for one document's evidences.
func makeEvidenceDocPrefix(docID core.ID) []byte {
	prefix := []byte(evidencePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makeOverrideKey generates a composite key for a manual override.
func makeOverrideKey(docID, conceptID core.ID) []byte {
	prefix := []byte(overridePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(conceptID))
	return buf
}

// makeOverrideDocPrefix generates the scan prefix for one document's overrides.
func makeOverrideDocPrefix(docID core.ID) []byte {
	prefix := []byte(overridePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makeConceptScoreKey generates a composite key for a per-concept score.
func makeConceptScoreKey(docID, conceptID core.ID) []byte {
	return makeDocPairKey(conceptScorePrefix, docID, conceptID)
}

// makeGroupMentionKey generates a composite key for a group mention count.
func makeGroupMentionKey(docID, groupID core.ID) []byte {
	return makeDocPairKey(groupMentionPrefix, docID, groupID)
}

// makeCooccurrenceKey generates a composite key for a concept-group
// co-occurrence count.
func makeCooccurrenceKey(docID, conceptID, groupID core.ID) []byte {
	prefix := []byte(cooccurrencePrefix + ":")
	buf := make([]byte, len(prefix)+24)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(conceptID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(groupID))
	return buf
}

// makeIndicesKey generates the key for a document's coverage indices.
func makeIndicesKey(docID core.ID) []byte {
	prefix := []byte(indicesPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}

// makeDocPairKey generates prefix:docID:secondID with BigEndian components.
func makeDocPairKey(prefix string, docID, secondID core.ID) []byte {
	p := []byte(prefix + ":")
	buf := make([]byte, len(p)+16)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(secondID))
	return buf
}

// makeAggregateDocPrefix generates the scan prefix for one document's rows
// under an aggregate prefix.
func makeAggregateDocPrefix(prefix string, docID core.ID) []byte {
	p := []byte(prefix + ":")
	buf := make([]byte, len(p)+8)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}
