// ABOUTME: Charm KV implementation of the NoteStore interface
// ABOUTME: Referential checks and cascade delete are done in the store
package charmkv

import (
	"fmt"
	"sort"

	"github.com/harper/ideanotes/internal/models"
	"github.com/harper/ideanotes/internal/storage"
	"github.com/harper/ideanotes/internal/vector"
)

// kvBackend is the subset of the charm client the store uses. Tests
// back it with an in-memory map.
type kvBackend interface {
	Get(key string) ([]byte, error)
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
	Close() error
}

// Store implements storage.NoteStore over Charm KV. Unlike the SQLite
// backend there is no transaction spanning multiple keys, so
// ReplaceEmbeddings is a best-effort purge-then-insert; acceptable for
// a single-writer local tool where a retry re-runs the whole replace.
type Store struct {
	client kvBackend
	dim    int
	metric vector.Metric
}

// Open creates a charm-backed store with the given dimension and metric.
func Open(cfg *Config, dim int, metric vector.Metric) (*Store, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, dim: dim, metric: metric}, nil
}

// Close closes the underlying KV database.
func (s *Store) Close() error {
	return s.client.Close()
}

// CreateNote inserts a new note with created_at == updated_at.
func (s *Store) CreateNote(id, title, content string) (*models.Note, error) {
	if s.noteExists(id) {
		return nil, fmt.Errorf("create note %s: %w", id, storage.ErrDuplicateID)
	}

	now := models.NowMillis()
	note := &models.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.client.SetJSON(NoteKey(id), note); err != nil {
		return nil, fmt.Errorf("failed to store note: %w", err)
	}
	return note, nil
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id string) (*models.Note, error) {
	data, err := s.client.Get(NoteKey(id))
	if err != nil || data == nil {
		return nil, fmt.Errorf("get note %s: %w", id, storage.ErrNoteNotFound)
	}
	var note models.Note
	if err := s.client.GetJSON(NoteKey(id), &note); err != nil {
		return nil, fmt.Errorf("failed to decode note %s: %w", id, err)
	}
	return &note, nil
}

// GetNotes retrieves all notes, most recently updated first.
func (s *Store) GetNotes() ([]models.Note, error) {
	keys, err := s.client.ListKeys(NotePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list note keys: %w", err)
	}

	notes := []models.Note{}
	for _, key := range keys {
		var note models.Note
		if err := s.client.GetJSON(key, &note); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		notes = append(notes, note)
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].UpdatedAt != notes[j].UpdatedAt {
			return notes[i].UpdatedAt > notes[j].UpdatedAt
		}
		return notes[i].ID < notes[j].ID
	})
	return notes, nil
}

// UpdateNote overwrites title and content and refreshes updated_at.
func (s *Store) UpdateNote(id, title, content string) (*models.Note, error) {
	note, err := s.GetNote(id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	note.UpdatedAt = models.NowMillis()
	if err := s.client.SetJSON(NoteKey(id), note); err != nil {
		return nil, fmt.Errorf("failed to store note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note and all of its embeddings.
func (s *Store) DeleteNote(id string) error {
	if !s.noteExists(id) {
		return fmt.Errorf("delete note %s: %w", id, storage.ErrNoteNotFound)
	}

	if err := s.client.Delete(NoteKey(id)); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return s.purgeEmbeddings(id)
}

// StoreEmbedding appends one idea vector owned by the given note.
func (s *Store) StoreEmbedding(noteID string, vec []float64) error {
	if len(vec) != s.dim {
		return fmt.Errorf("store embedding for %s: got %d components, want %d: %w",
			noteID, len(vec), s.dim, storage.ErrDimensionMismatch)
	}
	if !s.noteExists(noteID) {
		return fmt.Errorf("store embedding for %s: %w", noteID, storage.ErrNoteNotFound)
	}

	emb := models.IdeaEmbedding{
		ID:        models.NewEmbeddingID(),
		NoteID:    noteID,
		Vector:    vec,
		CreatedAt: models.NowMillis(),
	}
	if err := s.client.SetJSON(EmbeddingKey(noteID, emb.ID), emb); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}

// ReplaceEmbeddings purges the note's prior embeddings then writes the
// given vectors. Dimension and referential checks run before any key
// is touched.
func (s *Store) ReplaceEmbeddings(noteID string, vecs [][]float64) error {
	for _, vec := range vecs {
		if len(vec) != s.dim {
			return fmt.Errorf("replace embeddings for %s: got %d components, want %d: %w",
				noteID, len(vec), s.dim, storage.ErrDimensionMismatch)
		}
	}
	if !s.noteExists(noteID) {
		return fmt.Errorf("replace embeddings for %s: %w", noteID, storage.ErrNoteNotFound)
	}

	if err := s.purgeEmbeddings(noteID); err != nil {
		return err
	}
	for _, vec := range vecs {
		if err := s.StoreEmbedding(noteID, vec); err != nil {
			return err
		}
	}
	return nil
}

// EmbeddingsFor returns a note's stored embeddings, oldest first.
func (s *Store) EmbeddingsFor(noteID string) ([]models.IdeaEmbedding, error) {
	keys, err := s.client.ListKeys(noteEmbeddingPrefix(noteID))
	if err != nil {
		return nil, fmt.Errorf("failed to list embedding keys: %w", err)
	}

	embeddings := []models.IdeaEmbedding{}
	for _, key := range keys {
		var emb models.IdeaEmbedding
		if err := s.client.GetJSON(key, &emb); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		// A colon in another note's id can land its keys under this
		// prefix; ownership comes from the stored value
		if emb.NoteID != noteID {
			continue
		}
		embeddings = append(embeddings, emb)
	}

	sort.Slice(embeddings, func(i, j int) bool {
		if embeddings[i].CreatedAt != embeddings[j].CreatedAt {
			return embeddings[i].CreatedAt < embeddings[j].CreatedAt
		}
		return embeddings[i].ID < embeddings[j].ID
	})
	return embeddings, nil
}

// SearchSimilarNotes scans every stored embedding and returns the
// top-limit distinct notes, nearest first.
func (s *Store) SearchSimilarNotes(query []float64, limit int) ([]models.SearchResult, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("search: got %d components, want %d: %w",
			len(query), s.dim, storage.ErrDimensionMismatch)
	}

	keys, err := s.client.ListKeys(EmbeddingPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedding keys: %w", err)
	}

	// Notes are hydrated once per owner, not once per embedding.
	noteCache := map[string]*models.Note{}
	var candidates []models.SearchResult

	for _, key := range keys {
		var emb models.IdeaEmbedding
		if err := s.client.GetJSON(key, &emb); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if len(emb.Vector) != s.dim {
			return nil, fmt.Errorf("embedding %s: decoded %d components, store dimension is %d: %w",
				emb.ID, len(emb.Vector), s.dim, vector.ErrCodec)
		}

		note, ok := noteCache[emb.NoteID]
		if !ok {
			note, err = s.GetNote(emb.NoteID)
			if err != nil {
				return nil, err
			}
			noteCache[emb.NoteID] = note
		}

		candidates = append(candidates, models.SearchResult{
			Note:     *note,
			Distance: s.metric.Distance(query, emb.Vector),
		})
	}

	return storage.Rank(candidates, limit), nil
}

// noteExists reports whether a note key holds data.
func (s *Store) noteExists(id string) bool {
	data, err := s.client.Get(NoteKey(id))
	return err == nil && data != nil
}

// purgeEmbeddings deletes every embedding owned by a note. The prefix
// scan can over-match when another note's id contains a colon, so each
// candidate's decoded NoteID decides whether it is deleted.
func (s *Store) purgeEmbeddings(noteID string) error {
	keys, err := s.client.ListKeys(noteEmbeddingPrefix(noteID))
	if err != nil {
		return fmt.Errorf("failed to list embedding keys: %w", err)
	}
	for _, key := range keys {
		var emb models.IdeaEmbedding
		if err := s.client.GetJSON(key, &emb); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if emb.NoteID != noteID {
			continue
		}
		if err := s.client.Delete(key); err != nil {
			return fmt.Errorf("failed to delete embedding: %w", err)
		}
	}
	return nil
}
