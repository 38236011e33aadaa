// ABOUTME: Core data models for notes and their idea embeddings
// ABOUTME: Timestamps are epoch milliseconds to match the on-disk schema
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is the authoritative record for a single note.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"` // epoch milliseconds
	UpdatedAt int64  `json:"updated_at"` // epoch milliseconds
}

// CreatedTime returns CreatedAt as a time.Time.
func (n *Note) CreatedTime() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (n *Note) UpdatedTime() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// IdeaEmbedding is one embedded idea vector owned by a note. A note
// owns zero or more of these; they are destroyed with the note.
type IdeaEmbedding struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt int64     `json:"created_at"`
}

// SearchResult pairs a note with its best (smallest) embedding
// distance to a query vector.
type SearchResult struct {
	Note     Note    `json:"note"`
	Distance float64 `json:"distance"`
}

// NowMillis returns the current wall clock in epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewNoteID generates a caller-side note ID: timestamp plus a short
// random token, unique enough for a single-user store.
func NewNoteID() string {
	return fmt.Sprintf("note_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

// NewEmbeddingID generates a synthetic ID for an embedding row.
func NewEmbeddingID() string {
	return fmt.Sprintf("emb_%s", uuid.New().String())
}
