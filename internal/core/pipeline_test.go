// ABOUTME: Tests for the split/embed/store pipeline using a fake provider
// ABOUTME: The store is a real in-memory sqlite instance, not a mock
package core

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/ideanotes/internal/storage/sqlite"
	"github.com/harper/ideanotes/internal/vector"
)

// fakeProvider returns canned ideas and vectors, or fails on demand.
type fakeProvider struct {
	ideas      []string
	vectors    [][]float64
	queryVec   []float64
	splitErr   error
	embedErr   error
	queryErr   error
	splitCalls int
	embedCalls int
}

func (f *fakeProvider) SplitIdeas(_ context.Context, _, _ string) ([]string, error) {
	f.splitCalls++
	if f.splitErr != nil {
		return nil, f.splitErr
	}
	return f.ideas, nil
}

func (f *fakeProvider) EmbedIdeas(_ context.Context, _ []string) ([][]float64, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vectors, nil
}

func (f *fakeProvider) EmbedQuery(_ context.Context, _ string) ([]float64, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryVec, nil
}

func newPipelineStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.OpenInMemory(4, vector.Cosine)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestProcessNoteStoresAllIdeas(t *testing.T) {
	store := newPipelineStore(t)
	provider := &fakeProvider{
		ideas:   []string{"first idea", "second idea"},
		vectors: [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}},
	}
	pipeline := NewPipeline(store, provider)

	note, err := store.CreateNote("n1", "Title", "Content")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	count, err := pipeline.ProcessNote(context.Background(), note)
	if err != nil {
		t.Fatalf("ProcessNote() error = %v", err)
	}
	if count != 2 {
		t.Errorf("ProcessNote() count = %d, want 2", count)
	}

	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 2 {
		t.Errorf("stored embeddings = %d, want 2", len(embeddings))
	}
}

func TestProcessNoteSplitFailureWritesNothing(t *testing.T) {
	store := newPipelineStore(t)
	provider := &fakeProvider{splitErr: errors.New("model unavailable")}
	pipeline := NewPipeline(store, provider)

	note, err := store.CreateNote("n1", "Title", "Content")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	if _, err := pipeline.ProcessNote(context.Background(), note); err == nil {
		t.Fatal("ProcessNote() should fail when splitting fails")
	}
	if provider.embedCalls != 0 {
		t.Errorf("EmbedIdeas called %d times after split failure, want 0", provider.embedCalls)
	}

	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 0 {
		t.Errorf("embeddings written despite split failure: %d", len(embeddings))
	}
}

func TestProcessNoteEmbedFailureKeepsPriorState(t *testing.T) {
	store := newPipelineStore(t)

	note, err := store.CreateNote("n1", "Title", "Content")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	provider := &fakeProvider{
		ideas:    []string{"an idea"},
		embedErr: errors.New("rate limited"),
	}
	pipeline := NewPipeline(store, provider)

	if _, err := pipeline.ProcessNote(context.Background(), note); err == nil {
		t.Fatal("ProcessNote() should fail when embedding fails")
	}

	// A failed run must not disturb the embeddings already stored
	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 1 {
		t.Errorf("prior embeddings = %d after failed run, want 1", len(embeddings))
	}
}

func TestProcessNoteReplacesOldEmbeddings(t *testing.T) {
	store := newPipelineStore(t)

	note, err := store.CreateNote("n1", "Title", "Content")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{0, 1, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	provider := &fakeProvider{
		ideas:   []string{"the one idea"},
		vectors: [][]float64{{0, 0, 1, 0}},
	}
	pipeline := NewPipeline(store, provider)

	count, err := pipeline.ProcessNote(context.Background(), note)
	if err != nil {
		t.Fatalf("ProcessNote() error = %v", err)
	}
	if count != 1 {
		t.Errorf("ProcessNote() count = %d, want 1", count)
	}

	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 1 {
		t.Errorf("embeddings after re-process = %d, want 1", len(embeddings))
	}
}

func TestSearchSimilarNotesEndToEnd(t *testing.T) {
	store := newPipelineStore(t)

	if _, err := store.CreateNote("match", "Groceries", "buy milk"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if _, err := store.CreateNote("other", "Work", "ship release"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("match", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}
	if err := store.StoreEmbedding("other", []float64{0, 1, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	provider := &fakeProvider{queryVec: []float64{1, 0, 0, 0}}
	pipeline := NewPipeline(store, provider)

	results, err := pipeline.SearchSimilarNotes(context.Background(), "milk", 1)
	if err != nil {
		t.Fatalf("SearchSimilarNotes() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("SearchSimilarNotes() count = %d, want 1", len(results))
	}
	if results[0].Note.ID != "match" {
		t.Errorf("top result = %s, want match", results[0].Note.ID)
	}
}

func TestSearchQueryEmbedFailure(t *testing.T) {
	store := newPipelineStore(t)
	provider := &fakeProvider{queryErr: errors.New("rate limited")}
	pipeline := NewPipeline(store, provider)

	if _, err := pipeline.SearchSimilarNotes(context.Background(), "q", 5); err == nil {
		t.Fatal("SearchSimilarNotes() should propagate query embedding failure")
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	store := newPipelineStore(t)

	// Seed more notes than the default limit
	for i := 0; i < DefaultSearchLimit+3; i++ {
		id := string(rune('a' + i))
		if _, err := store.CreateNote(id, "T", ""); err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		if err := store.StoreEmbedding(id, []float64{1, 0, 0, 0}); err != nil {
			t.Fatalf("StoreEmbedding() error = %v", err)
		}
	}

	provider := &fakeProvider{queryVec: []float64{1, 0, 0, 0}}
	pipeline := NewPipeline(store, provider)

	results, err := pipeline.SearchSimilarNotes(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("SearchSimilarNotes() error = %v", err)
	}
	if len(results) != DefaultSearchLimit {
		t.Errorf("SearchSimilarNotes() count = %d, want default %d", len(results), DefaultSearchLimit)
	}
}
