// ABOUTME: Tests for the charm KV store over an in-memory backend
// ABOUTME: Covers CRUD, cascade, and key isolation for colon-bearing ids
package charmkv

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/harper/ideanotes/internal/storage"
	"github.com/harper/ideanotes/internal/vector"
)

// fakeKV is an in-memory kvBackend with the same get/list semantics as
// the charm client: missing keys read as nil, lists are prefix scans.
type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeKV) SetJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeKV) GetJSON(key string, dest interface{}) error {
	data, ok := f.data[key]
	if !ok {
		return fmt.Errorf("key not found: %s", key)
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeKV) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) ListKeys(prefix string) ([]string, error) {
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeKV) Close() error {
	return nil
}

func newFakeStore(t *testing.T) *Store {
	t.Helper()
	return &Store{client: newFakeKV(), dim: 4, metric: vector.Cosine}
}

func TestCreateAndGetNote(t *testing.T) {
	store := newFakeStore(t)

	created, err := store.CreateNote("n1", "Title", "Content")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Errorf("CreatedAt = %d, UpdatedAt = %d, want equal", created.CreatedAt, created.UpdatedAt)
	}

	got, err := store.GetNote("n1")
	if err != nil {
		t.Fatalf("GetNote() error = %v", err)
	}
	if got.Title != "Title" || got.Content != "Content" {
		t.Errorf("GetNote() = %+v", got)
	}
}

func TestCreateNoteDuplicateID(t *testing.T) {
	store := newFakeStore(t)

	if _, err := store.CreateNote("n1", "T", "C"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	_, err := store.CreateNote("n1", "Other", "Other")
	if !errors.Is(err, storage.ErrDuplicateID) {
		t.Errorf("CreateNote() error = %v, want ErrDuplicateID", err)
	}
}

func TestGetNoteNotFound(t *testing.T) {
	store := newFakeStore(t)

	_, err := store.GetNote("ghost")
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("GetNote() error = %v, want ErrNoteNotFound", err)
	}
}

func TestDeleteNoteCascades(t *testing.T) {
	store := newFakeStore(t)

	if _, err := store.CreateNote("n1", "T", "C"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	if err := store.DeleteNote("n1"); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}

	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 0 {
		t.Errorf("embeddings survived note deletion: %d", len(embeddings))
	}
}

func TestColonIDsKeepEmbeddingsIsolated(t *testing.T) {
	store := newFakeStore(t)

	// "a:b" keys sort under the same "emb:a:" prefix as "a"'s keys
	if _, err := store.CreateNote("a", "plain", ""); err != nil {
		t.Fatalf("CreateNote(a) error = %v", err)
	}
	if _, err := store.CreateNote("a:b", "colon", ""); err != nil {
		t.Fatalf("CreateNote(a:b) error = %v", err)
	}
	if err := store.StoreEmbedding("a", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding(a) error = %v", err)
	}
	if err := store.StoreEmbedding("a:b", []float64{0, 1, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding(a:b) error = %v", err)
	}

	// Listing for "a" must not pick up "a:b"'s embeddings
	embeddings, err := store.EmbeddingsFor("a")
	if err != nil {
		t.Fatalf("EmbeddingsFor(a) error = %v", err)
	}
	if len(embeddings) != 1 || embeddings[0].NoteID != "a" {
		t.Fatalf("EmbeddingsFor(a) = %+v, want only a's embedding", embeddings)
	}

	// Replacing "a"'s embeddings must leave "a:b"'s alone
	if err := store.ReplaceEmbeddings("a", [][]float64{{0, 0, 1, 0}}); err != nil {
		t.Fatalf("ReplaceEmbeddings(a) error = %v", err)
	}
	other, err := store.EmbeddingsFor("a:b")
	if err != nil {
		t.Fatalf("EmbeddingsFor(a:b) error = %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("a:b embeddings after replacing a's = %d, want 1", len(other))
	}

	// Deleting "a" must not cascade into "a:b"
	if err := store.DeleteNote("a"); err != nil {
		t.Fatalf("DeleteNote(a) error = %v", err)
	}
	other, err = store.EmbeddingsFor("a:b")
	if err != nil {
		t.Fatalf("EmbeddingsFor(a:b) error = %v", err)
	}
	if len(other) != 1 {
		t.Errorf("a:b embeddings after deleting a = %d, want 1", len(other))
	}
	if _, err := store.GetNote("a:b"); err != nil {
		t.Errorf("GetNote(a:b) error = %v, note should survive", err)
	}
}

func TestReplaceEmbeddingsPurges(t *testing.T) {
	store := newFakeStore(t)

	if _, err := store.CreateNote("n1", "T", "C"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}
	if err := store.StoreEmbedding("n1", []float64{0, 1, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	if err := store.ReplaceEmbeddings("n1", [][]float64{{0, 0, 1, 0}}); err != nil {
		t.Fatalf("ReplaceEmbeddings() error = %v", err)
	}

	embeddings, err := store.EmbeddingsFor("n1")
	if err != nil {
		t.Fatalf("EmbeddingsFor() error = %v", err)
	}
	if len(embeddings) != 1 {
		t.Errorf("embeddings after replace = %d, want 1", len(embeddings))
	}
}

func TestStoreEmbeddingChecks(t *testing.T) {
	store := newFakeStore(t)

	if _, err := store.CreateNote("n1", "T", "C"); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	err := store.StoreEmbedding("n1", []float64{1, 0})
	if !errors.Is(err, storage.ErrDimensionMismatch) {
		t.Errorf("StoreEmbedding() error = %v, want ErrDimensionMismatch", err)
	}

	err = store.StoreEmbedding("ghost", []float64{1, 0, 0, 0})
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("StoreEmbedding() error = %v, want ErrNoteNotFound", err)
	}
}

func TestSearchSimilarNotes(t *testing.T) {
	store := newFakeStore(t)

	if _, err := store.CreateNote("near", "N", ""); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if _, err := store.CreateNote("far", "F", ""); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if err := store.StoreEmbedding("near", []float64{1, 0, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}
	if err := store.StoreEmbedding("far", []float64{0, 1, 0, 0}); err != nil {
		t.Fatalf("StoreEmbedding() error = %v", err)
	}

	results, err := store.SearchSimilarNotes([]float64{1, 0, 0, 0}, 5)
	if err != nil {
		t.Fatalf("SearchSimilarNotes() error = %v", err)
	}
	if len(results) != 2 || results[0].Note.ID != "near" {
		t.Errorf("results = %+v, want near first", results)
	}
}
