// ABOUTME: Embedding persistence and similarity search for the SQLite backend
// ABOUTME: Vectors are BLOBs; search is a brute-force scan over all rows
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/ideanotes/internal/models"
	"github.com/harper/ideanotes/internal/storage"
	"github.com/harper/ideanotes/internal/vector"
)

// StoreEmbedding appends one idea vector owned by the given note.
func (s *Store) StoreEmbedding(noteID string, vec []float64) error {
	if len(vec) != s.dim {
		return fmt.Errorf("store embedding for %s: got %d components, want %d: %w",
			noteID, len(vec), s.dim, storage.ErrDimensionMismatch)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertEmbedding(tx, noteID, vec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit embedding insert: %w", err)
	}
	return nil
}

// ReplaceEmbeddings purges the note's prior embeddings and writes the
// given vectors in a single transaction, so a failed re-embed never
// leaves a mix of stale and fresh idea vectors.
func (s *Store) ReplaceEmbeddings(noteID string, vecs [][]float64) error {
	for _, vec := range vecs {
		if len(vec) != s.dim {
			return fmt.Errorf("replace embeddings for %s: got %d components, want %d: %w",
				noteID, len(vec), s.dim, storage.ErrDimensionMismatch)
		}
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM note_embeddings WHERE note_id = ?", noteID); err != nil {
		return fmt.Errorf("failed to purge embeddings: %w", err)
	}
	for _, vec := range vecs {
		if err := insertEmbedding(tx, noteID, vec); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit embedding replace: %w", err)
	}
	return nil
}

// insertEmbedding writes one row inside tx, checking the owning note
// exists first so a dangling note id surfaces as ErrNoteNotFound
// instead of a raw foreign key violation.
func insertEmbedding(tx *sql.Tx, noteID string, vec []float64) error {
	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM notes WHERE id = ?", noteID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check note: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("store embedding for %s: %w", noteID, storage.ErrNoteNotFound)
	}

	_, err := tx.Exec(`
		INSERT INTO note_embeddings (id, note_id, vector, created_at)
		VALUES (?, ?, ?, ?)
	`, models.NewEmbeddingID(), noteID, vector.Encode(vec), models.NowMillis())
	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}
	return nil
}

// EmbeddingsFor returns a note's stored embeddings, oldest first.
func (s *Store) EmbeddingsFor(noteID string) ([]models.IdeaEmbedding, error) {
	rows, err := s.conn.Query(`
		SELECT id, note_id, vector, created_at
		FROM note_embeddings
		WHERE note_id = ?
		ORDER BY created_at ASC, id
	`, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	embeddings := []models.IdeaEmbedding{}
	for rows.Next() {
		var (
			emb  models.IdeaEmbedding
			blob []byte
		)
		if err := rows.Scan(&emb.ID, &emb.NoteID, &blob, &emb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		emb.Vector, err = vector.DecodeDim(blob, s.dim)
		if err != nil {
			return nil, fmt.Errorf("embedding %s: %w", emb.ID, err)
		}
		embeddings = append(embeddings, emb)
	}
	return embeddings, rows.Err()
}

// SearchSimilarNotes computes the distance from the query vector to
// every stored embedding and returns the top-limit distinct notes,
// nearest first.
func (s *Store) SearchSimilarNotes(query []float64, limit int) ([]models.SearchResult, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("search: got %d components, want %d: %w",
			len(query), s.dim, storage.ErrDimensionMismatch)
	}

	rows, err := s.conn.Query(`
		SELECT n.id, n.title, n.content, n.created_at, n.updated_at, e.vector
		FROM note_embeddings e
		JOIN notes n ON n.id = e.note_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var candidates []models.SearchResult
	for rows.Next() {
		var (
			n    models.Note
			blob []byte
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		vec, err := vector.DecodeDim(blob, s.dim)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", n.ID, err)
		}
		candidates = append(candidates, models.SearchResult{
			Note:     n,
			Distance: s.metric.Distance(query, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return storage.Rank(candidates, limit), nil
}
