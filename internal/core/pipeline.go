// ABOUTME: Idea pipeline orchestration: split, embed, persist, search
// ABOUTME: Provider failures abort the whole run with no partial writes
package core

import (
	"context"
	"fmt"

	"github.com/harper/ideanotes/internal/models"
	"github.com/harper/ideanotes/internal/storage"
)

// DefaultSearchLimit is how many notes a search returns by default.
const DefaultSearchLimit = 5

// Provider is the external text-generation and embedding boundary.
// *llm.Client satisfies it; tests substitute fakes.
type Provider interface {
	SplitIdeas(ctx context.Context, title, content string) ([]string, error)
	EmbedIdeas(ctx context.Context, ideas []string) ([][]float64, error)
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}

// Pipeline wires the provider to the note store. It never touches
// storage tables directly; all writes go through the store's API.
type Pipeline struct {
	store    storage.NoteStore
	provider Provider
}

// NewPipeline creates a pipeline over an already-open store.
func NewPipeline(store storage.NoteStore, provider Provider) *Pipeline {
	return &Pipeline{store: store, provider: provider}
}

// ProcessNote splits a note into ideas, embeds them in one batched
// call, and replaces the note's stored embeddings. Strictly ordered:
// both provider calls complete before any write, and the write is
// atomic, so a failure anywhere leaves the previous embedding state
// untouched. Returns the number of ideas embedded.
func (p *Pipeline) ProcessNote(ctx context.Context, note *models.Note) (int, error) {
	ideas, err := p.provider.SplitIdeas(ctx, note.Title, note.Content)
	if err != nil {
		return 0, fmt.Errorf("splitting ideas for note %s: %w", note.ID, err)
	}

	vectors, err := p.provider.EmbedIdeas(ctx, ideas)
	if err != nil {
		return 0, fmt.Errorf("embedding ideas for note %s: %w", note.ID, err)
	}

	if err := p.store.ReplaceEmbeddings(note.ID, vectors); err != nil {
		return 0, fmt.Errorf("storing embeddings for note %s: %w", note.ID, err)
	}

	return len(ideas), nil
}

// SearchSimilarNotes embeds the query text and ranks stored notes by
// vector distance. A store with no embeddings yields an empty slice,
// which is a valid result, not an error.
func (p *Pipeline) SearchSimilarNotes(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	vec, err := p.provider.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := p.store.SearchSimilarNotes(vec, limit)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}
	return results, nil
}
