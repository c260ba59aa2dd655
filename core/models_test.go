package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "short content",
			content: "carbon neutrality",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "The company commits to reducing scope 1 and scope 2 emissions by 50% before 2030",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEvidenceID(t *testing.T) {
	id1 := EvidenceID("report.txt", 7, "we will reduce emissions")
	id2 := EvidenceID("report.txt", 7, "we will reduce emissions")
	if id1 != id2 {
		t.Errorf("EvidenceID() not deterministic: %d vs %d", id1, id2)
	}

	// Any component change must change the ID.
	if EvidenceID("other.txt", 7, "we will reduce emissions") == id1 {
		t.Error("EvidenceID() ignored document name")
	}
	if EvidenceID("report.txt", 8, "we will reduce emissions") == id1 {
		t.Error("EvidenceID() ignored concept id")
	}
	if EvidenceID("report.txt", 7, "we reduced emissions") == id1 {
		t.Error("EvidenceID() ignored snippet")
	}
}

func TestEvidenceID_NoFieldBleed(t *testing.T) {
	// Separator keeps (docName, snippet) pairs from colliding when the
	// boundary between them shifts.
	id1 := EvidenceID("ab", 1, "c")
	id2 := EvidenceID("a", 1, "bc")
	if id1 == id2 {
		t.Error("EvidenceID() collided across field boundaries")
	}
}

func TestLevelForType(t *testing.T) {
	tests := []struct {
		levelType string
		want      int
	}{
		{levelType: "mention", want: LevelMention},
		{levelType: "promise", want: LevelPromise},
		{levelType: "action", want: LevelAction},
		{levelType: "monitor", want: LevelMonitor},
		{levelType: "negation", want: LevelMention},
		{levelType: "", want: LevelMention},
		{levelType: "unknown", want: LevelMention},
	}

	for _, tt := range tests {
		t.Run(tt.levelType, func(t *testing.T) {
			if got := LevelForType(tt.levelType); got != tt.want {
				t.Errorf("LevelForType(%q) = %d, want %d", tt.levelType, got, tt.want)
			}
		})
	}
}

func TestDocStatus_String(t *testing.T) {
	tests := []struct {
		status DocStatus
		want   string
	}{
		{status: DocStatusUploaded, want: "uploaded"},
		{status: DocStatusParsed, want: "parsed"},
		{status: DocStatusProcessed, want: "processed"},
		{status: DocStatusError, want: "error"},
		{status: DocStatus(0), want: "unknown"},
		{status: DocStatus(99), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("DocStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}
