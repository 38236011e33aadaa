// ABOUTME: NoteStore interface and shared storage errors
// ABOUTME: Backends (sqlite, charmkv) are selected once at construction
package storage

import (
	"errors"

	"github.com/harper/ideanotes/internal/models"
)

// Sentinel errors shared by all backends. Callers match with errors.Is.
var (
	// ErrNoteNotFound means a referenced note id does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrDuplicateID means CreateNote collided with an existing id.
	ErrDuplicateID = errors.New("note id already exists")
	// ErrDimensionMismatch means a vector's length disagrees with the
	// store's configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// NoteStore is the single owner of note and embedding persistence.
// Implementations enforce referential integrity (embeddings always
// reference a live note) and cascade-delete embeddings with their note.
type NoteStore interface {
	// CreateNote inserts a new note with created_at == updated_at.
	// Fails with ErrDuplicateID if the id exists.
	CreateNote(id, title, content string) (*models.Note, error)

	// GetNote returns a note by id, or ErrNoteNotFound.
	GetNote(id string) (*models.Note, error)

	// GetNotes returns all notes ordered by updated_at descending.
	GetNotes() ([]models.Note, error)

	// UpdateNote overwrites title/content and refreshes updated_at.
	// created_at is untouched. Fails with ErrNoteNotFound.
	UpdateNote(id, title, content string) (*models.Note, error)

	// DeleteNote removes a note and all of its embeddings.
	// Fails with ErrNoteNotFound.
	DeleteNote(id string) error

	// StoreEmbedding appends one idea vector for the given note.
	// Fails with ErrNoteNotFound if the note is absent and
	// ErrDimensionMismatch if the vector has the wrong length.
	StoreEmbedding(noteID string, vec []float64) error

	// ReplaceEmbeddings atomically purges the note's prior embeddings
	// and writes the given vectors. Same failure modes as
	// StoreEmbedding; on failure the prior embeddings survive intact.
	ReplaceEmbeddings(noteID string, vecs [][]float64) error

	// EmbeddingsFor returns the stored embeddings owned by a note,
	// oldest first. A note with no embeddings yields an empty slice.
	EmbeddingsFor(noteID string) ([]models.IdeaEmbedding, error)

	// SearchSimilarNotes ranks every stored embedding by ascending
	// distance to the query vector, collapses to distinct notes
	// keeping each note's best embedding, breaks distance ties by
	// updated_at descending, and returns up to limit hydrated notes.
	// An empty store yields an empty slice.
	SearchSimilarNotes(query []float64, limit int) ([]models.SearchResult, error)

	Close() error
}
