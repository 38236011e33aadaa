// ABOUTME: Note CRUD operations for the SQLite backend
// ABOUTME: Listing order is updated_at descending, most recent first
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/ideanotes/internal/models"
	"github.com/harper/ideanotes/internal/storage"
)

// CreateNote inserts a new note with created_at == updated_at.
func (s *Store) CreateNote(id, title, content string) (*models.Note, error) {
	now := models.NowMillis()

	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM notes WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check note id: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("create note %s: %w", id, storage.ErrDuplicateID)
	}

	_, err = tx.Exec(`
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, content, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit note insert: %w", err)
	}

	return &models.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id string) (*models.Note, error) {
	var n models.Note
	err := s.conn.QueryRow(`
		SELECT id, title, content, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("get note %s: %w", id, storage.ErrNoteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &n, nil
}

// GetNotes retrieves all notes, most recently updated first.
func (s *Store) GetNotes() ([]models.Note, error) {
	rows, err := s.conn.Query(`
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote overwrites title and content and refreshes updated_at.
func (s *Store) UpdateNote(id, title, content string) (*models.Note, error) {
	now := models.NowMillis()

	res, err := s.conn.Exec(`
		UPDATE notes
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`, title, content, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update note %s: %w", id, storage.ErrNoteNotFound)
	}

	return s.GetNote(id)
}

// DeleteNote removes a note; its embeddings go with it via
// ON DELETE CASCADE.
func (s *Store) DeleteNote(id string) error {
	res, err := s.conn.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete note %s: %w", id, storage.ErrNoteNotFound)
	}
	return nil
}
