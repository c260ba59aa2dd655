package core

import (
	"testing"
	"time"
)

func TestEvidenceMUS_RoundTrip(t *testing.T) {
	ev := Evidence{
		Id:           EvidenceID("report.txt", 7, "we will reduce emissions"),
		DocID:        42,
		DocName:      "report.txt",
		ConceptID:    7,
		MatchType:    MatchTypePattern,
		Level:        LevelPromise,
		Lang:         "en",
		Snippet:      "we will reduce emissions",
		Pattern:      `\bwe will\b`,
		RuleID:       11,
		Score:        1.8,
		Page:         3,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		TermOrPhrase: "",
	}

	bs := make([]byte, EvidenceMUS.Size(ev))
	n := EvidenceMUS.Marshal(ev, bs)
	if n != len(bs) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(bs))
	}

	got, n, err := EvidenceMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(bs) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(bs))
	}
	if !got.CreatedAt.Equal(ev.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, ev.CreatedAt)
	}
	got.CreatedAt, ev.CreatedAt = time.Time{}, time.Time{}
	if got != ev {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, ev)
	}
}

func TestDocumentMUS_RoundTrip(t *testing.T) {
	doc := Document{
		Id:            IDFromContent("annual_report_2024.txt"),
		Name:          "annual_report_2024.txt",
		Lang:          "pt",
		Status:        DocStatusProcessed,
		SentenceCount: 120,
		EvidenceCount: 14,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	bs := make([]byte, DocumentMUS.Size(doc))
	DocumentMUS.Marshal(doc, bs)

	got, _, err := DocumentMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !got.CreatedAt.Equal(doc.CreatedAt) || !got.UpdatedAt.Equal(doc.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v/%v", got.CreatedAt, got.UpdatedAt, doc.CreatedAt, doc.UpdatedAt)
	}
	got.CreatedAt, doc.CreatedAt = time.Time{}, time.Time{}
	got.UpdatedAt, doc.UpdatedAt = time.Time{}, time.Time{}
	if got != doc {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, doc)
	}
}

func TestEvidenceMUS_UnmarshalTruncated(t *testing.T) {
	ev := Evidence{
		Id:        1,
		DocID:     2,
		DocName:   "doc",
		ConceptID: 3,
		MatchType: MatchTypeLexical,
		Level:     LevelMention,
		Snippet:   "snippet",
		CreatedAt: time.Now(),
	}
	bs := make([]byte, EvidenceMUS.Size(ev))
	EvidenceMUS.Marshal(ev, bs)

	if _, _, err := EvidenceMUS.Unmarshal(bs[:len(bs)/2]); err == nil {
		t.Error("Unmarshal accepted truncated input")
	}
}
