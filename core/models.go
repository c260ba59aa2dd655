package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EvidenceID derives the identity of an evidence row from its uniqueness key:
// (document name, concept, snippet content). Re-detecting the same concept in
// the same snippet always yields the same ID, so duplicate detections collapse
// on insert.
func EvidenceID(docName string, conceptID ID, snippet string) ID {
	return IDFromContent(docName + "\x00" + strconv.FormatUint(uint64(conceptID), 10) + "\x00" + snippet)
}

// Detection levels. An evidence carries an ordinal 1-4 strength
// classification: mention, promise, action, monitor.
const (
	LevelMention = 1
	LevelPromise = 2
	LevelAction  = 3
	LevelMonitor = 4
)

// LevelForType maps a pattern rule's level_type label to its numeric level.
// Unknown labels default to LevelMention.
func LevelForType(levelType string) int {
	switch levelType {
	case "mention", "negation":
		return LevelMention
	case "promise":
		return LevelPromise
	case "action":
		return LevelAction
	case "monitor":
		return LevelMonitor
	default:
		return LevelMention
	}
}

// Match type labels recorded on evidences.
const (
	MatchTypeLexical = "lexical"
	MatchTypePattern = "pattern"
)

// Concept represents a coded construct from the domain taxonomy, searched for
// in document text. IDs are stable and immutable once assigned; evidences,
// scores and the co-occurrence matrix reference them.
type Concept struct {
	Id           ID
	NameEN       string
	NamePT       string
	DefinitionEN string
	DefinitionPT string
}

// LexiconTerm is a single dictionary term bound to a concept and language.
// The (ConceptID, Lang, Term) tuple is the natural key.
type LexiconTerm struct {
	ConceptID ID
	Lang      string
	Term      string
	Lemma     string // lemma form matched against sentence lemma text
	Weight    float64
	Priority  int
	SourceRef string
}

// KeyPhrase is a multi-word dictionary entry matched as a literal substring.
// The (ConceptID, Lang, Phrase) tuple is the natural key.
type KeyPhrase struct {
	ConceptID ID
	Lang      string
	Phrase    string
	Weight    float64
	Priority  int
	SourceRef string
}

// PatternRule is a regex detection rule. Rules are language-scoped and signal
// a level, not a concept: concept attribution happens at match time.
type PatternRule struct {
	Id              ID
	Lang            string
	LevelType       string // mention, promise, action, monitor, negation
	Pattern         string
	NegationPattern string
	Priority        int
	SourceRef       string
}

// Group represents a vulnerable group from the secondary vocabulary used to
// measure which populations are mentioned alongside concepts.
type Group struct {
	Id     ID
	NameEN string
	NamePT string
}

// GroupTerm is a vocabulary entry for a group.
// The (GroupID, Lang, Term) tuple is the natural key.
type GroupTerm struct {
	GroupID   ID
	Lang      string
	Term      string
	Weight    float64
	Priority  int
	SourceRef string
}

// DocStatus tracks a document through its processing lifecycle.
type DocStatus int

const (
	// DocStatusUploaded means the document is registered but not yet segmented.
	DocStatusUploaded DocStatus = iota + 1
	// DocStatusParsed means sentences have been extracted and stored.
	DocStatusParsed
	// DocStatusProcessed means matching and aggregation completed.
	DocStatusProcessed
	// DocStatusError means a run failed; Document.LastError holds the message.
	DocStatusError
)

// String returns the lifecycle label used in logs and CLI output.
func (s DocStatus) String() string {
	switch s {
	case DocStatusUploaded:
		return "uploaded"
	case DocStatusParsed:
		return "parsed"
	case DocStatusProcessed:
		return "processed"
	case DocStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Document is the processing unit. Sentences, evidences and aggregates all
// hang off a document.
type Document struct {
	Id            ID
	Name          string
	Lang          string
	Status        DocStatus
	SentenceCount int
	EvidenceCount int
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Sentence is one pre-segmented sentence of a document, with the lemma form
// supplied by the upstream segmentation stage.
type Sentence struct {
	DocID     ID
	Page      int
	Index     int // position within the page
	Lang      string
	Text      string
	LemmaText string
}

// Evidence is one detected occurrence of a concept signal in a document
// snippet. At most one evidence exists per (doc, concept, snippet content);
// Id is the content hash of that tuple (see EvidenceID).
type Evidence struct {
	Id           ID
	DocID        ID
	DocName      string
	ConceptID    ID
	MatchType    string
	Level        int
	Lang         string
	Snippet      string
	Pattern      string // originating regex, when pattern-derived
	TermOrPhrase string // originating term or phrase, when lexical
	RuleID       ID     // 0 when not produced by a pattern rule
	Score        float64
	Page         int
	CreatedAt    time.Time
}

// DocConceptOverride is a manually curated level for a (document, concept)
// pair. It floors the automatically computed level, never lowers it.
type DocConceptOverride struct {
	DocID     ID
	ConceptID ID
	Level     int
}

// DocConceptScore is the per-(document, concept) aggregate: the best level
// observed across all evidences (pre-override) and the evidence count.
// Fully recomputed on every aggregation run.
type DocConceptScore struct {
	DocID       ID
	ConceptID   ID
	BestLevel   int
	EvidenceCnt int
}

// GroupMentionCount is the total number of group term occurrences across all
// snippets of a document.
type GroupMentionCount struct {
	DocID      ID
	GroupID    ID
	MentionCnt int
}

// ConceptGroupCooccurrence counts the snippets in which a concept's evidence
// and at least one of the group's terms co-occur. Counted once per snippet,
// regardless of how many times the group's terms appear in it.
type ConceptGroupCooccurrence struct {
	DocID      ID
	ConceptID  ID
	GroupID    ID
	SnippetCnt int
}

// DocumentIndices are the per-document coverage summary statistics.
// Percentages divide by the total concept catalog size (floored at 1).
type DocumentIndices struct {
	DocID          ID
	CCCovered      int // concepts with best_level >= 1
	CCQuality3P    int // concepts with final (post-override) level >= 3
	VGCovered      int // groups with mention_cnt > 0
	PctCCCovered   float64
	PctCCQuality3P float64
	ComputedAt     time.Time
}

// RunSummary reports the outcome of one document processing run.
type RunSummary struct {
	DocID           ID
	DocName         string
	Sentences       int
	Evidences       int
	ConceptsCovered int
	GroupsCovered   int
	PctCCCovered    float64
	PctCCQuality3P  float64
	Elapsed         time.Duration
}
