package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/equilex/equilex/core"
	"github.com/equilex/equilex/storage"
)

func TestDocumentBasics(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{Name: "report.txt", Lang: "en"}
	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.Status != core.DocStatusUploaded {
		t.Fatalf("Expected uploaded status, got %s", added.Status)
	}

	retrieved, err := docRepo.GetDocument(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Name != "report.txt" {
		t.Fatalf("Expected 'report.txt', got '%s'", retrieved.Name)
	}

	byName, err := docRepo.GetDocumentByName(ctx, "report.txt")
	if err != nil {
		t.Fatalf("Failed to get document by name: %v", err)
	}
	if byName.Id != added.Id {
		t.Fatalf("Name index returned wrong document: %d vs %d", byName.Id, added.Id)
	}
}

func TestDocumentDuplicateName(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := docRepo.AddDocument(ctx, &core.Document{Name: "dup.txt"}); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	_, err = docRepo.AddDocument(ctx, &core.Document{Name: "dup.txt"})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestDocumentStatusTransitions(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{Name: "transitions.txt"})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	doc.Status = core.DocStatusError
	doc.LastError = "segmentation failed"
	if _, err := docRepo.UpdateDocument(ctx, doc); err != nil {
		t.Fatalf("Failed to update document: %v", err)
	}

	got, err := docRepo.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if got.Status != core.DocStatusError || got.LastError != "segmentation failed" {
		t.Fatalf("Status update not persisted: %s / %q", got.Status, got.LastError)
	}

	listed, err := docRepo.ListDocumentsByStatus(ctx, core.DocStatusError)
	if err != nil {
		t.Fatalf("Failed to list by status: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("Expected 1 errored document, got %d", len(listed))
	}
}

func TestReplaceSentences(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{Name: "sentences.txt", Lang: "en"})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	first := []*core.Sentence{
		{Page: 1, Index: 0, Text: "Old sentence."},
		{Page: 1, Index: 1, Text: "Another old sentence."},
		{Page: 2, Index: 0, Text: "Old page two."},
	}
	n, err := docRepo.ReplaceSentences(ctx, doc.Id, first)
	if err != nil {
		t.Fatalf("Failed to replace sentences: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected 3 written, got %d", n)
	}

	// Replacement must discard the previous set entirely.
	second := []*core.Sentence{
		{Page: 1, Index: 0, Text: "New sentence."},
	}
	if _, err := docRepo.ReplaceSentences(ctx, doc.Id, second); err != nil {
		t.Fatalf("Failed to replace sentences: %v", err)
	}

	got, err := docRepo.GetSentences(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get sentences: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 sentence after replace, got %d", len(got))
	}
	if got[0].Text != "New sentence." {
		t.Fatalf("Unexpected sentence text: %q", got[0].Text)
	}
}

func TestGetSentencesOrder(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{Name: "ordered.txt"})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	// Inserted out of order on purpose.
	sentences := []*core.Sentence{
		{Page: 2, Index: 0, Text: "third"},
		{Page: 1, Index: 1, Text: "second"},
		{Page: 1, Index: 0, Text: "first"},
	}
	if _, err := docRepo.ReplaceSentences(ctx, doc.Id, sentences); err != nil {
		t.Fatalf("Failed to replace sentences: %v", err)
	}

	got, err := docRepo.GetSentences(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get sentences: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d sentences, got %d", len(want), len(got))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("Position %d: expected %q, got %q", i, text, got[i].Text)
		}
	}
}

func TestDeleteDocument(t *testing.T) {
	docRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{Name: "todelete.txt"})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	if _, err := docRepo.ReplaceSentences(ctx, doc.Id, []*core.Sentence{{Page: 1, Index: 0, Text: "gone"}}); err != nil {
		t.Fatalf("Failed to replace sentences: %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	if _, err := docRepo.GetDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if _, err := docRepo.GetDocumentByName(ctx, "todelete.txt"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected name index cleared, got %v", err)
	}

	sentences, err := docRepo.GetSentences(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get sentences: %v", err)
	}
	if len(sentences) != 0 {
		t.Fatalf("Expected sentences removed, got %d", len(sentences))
	}
}
