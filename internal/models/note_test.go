// ABOUTME: Tests for note models, IDs, and timestamp helpers
// ABOUTME: ID generation must produce unique, well-shaped identifiers
package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewNoteID(t *testing.T) {
	id := NewNoteID()

	if !strings.HasPrefix(id, "note_") {
		t.Errorf("NewNoteID() = %q, want note_ prefix", id)
	}

	// note_YYYYMMDD_HHMMSS_xxxxxxxx
	parts := strings.Split(id, "_")
	if len(parts) != 4 {
		t.Fatalf("NewNoteID() = %q, want 4 underscore-separated parts", id)
	}
	if len(parts[1]) != 8 || len(parts[2]) != 6 {
		t.Errorf("NewNoteID() timestamp parts = %q %q, want 8 and 6 chars", parts[1], parts[2])
	}
	if len(parts[3]) != 8 {
		t.Errorf("NewNoteID() token = %q, want 8 chars", parts[3])
	}
}

func TestNewNoteIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewNoteID()
		if seen[id] {
			t.Fatalf("NewNoteID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestNewEmbeddingID(t *testing.T) {
	id := NewEmbeddingID()
	if !strings.HasPrefix(id, "emb_") {
		t.Errorf("NewEmbeddingID() = %q, want emb_ prefix", id)
	}
	if id == NewEmbeddingID() {
		t.Error("NewEmbeddingID() should not repeat")
	}
}

func TestTimestampHelpers(t *testing.T) {
	before := time.Now().UnixMilli()
	now := NowMillis()
	after := time.Now().UnixMilli()

	if now < before || now > after {
		t.Errorf("NowMillis() = %d, want between %d and %d", now, before, after)
	}

	note := &Note{CreatedAt: 1700000000000, UpdatedAt: 1700000001000}
	if got := note.CreatedTime().UnixMilli(); got != 1700000000000 {
		t.Errorf("CreatedTime() = %d, want 1700000000000", got)
	}
	if got := note.UpdatedTime().UnixMilli(); got != 1700000001000 {
		t.Errorf("UpdatedTime() = %d, want 1700000001000", got)
	}
}
