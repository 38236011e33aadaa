// ABOUTME: Tests for charm key construction and client configuration
// ABOUTME: Network-backed paths need a charm account and are not covered here
package charmkv

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DBName != "ideanotes" {
		t.Errorf("DBName = %q, want ideanotes", cfg.DBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync should default to true")
	}
}

func TestNoteKey(t *testing.T) {
	if got := NoteKey("n1"); got != "note:n1" {
		t.Errorf("NoteKey() = %q, want note:n1", got)
	}
}

func TestEmbeddingKey(t *testing.T) {
	if got := EmbeddingKey("n1", "emb_abc"); got != "emb:n1:emb_abc" {
		t.Errorf("EmbeddingKey() = %q, want emb:n1:emb_abc", got)
	}
}

func TestNoteEmbeddingPrefix(t *testing.T) {
	prefix := noteEmbeddingPrefix("n1")
	if prefix != "emb:n1:" {
		t.Errorf("noteEmbeddingPrefix() = %q, want emb:n1:", prefix)
	}

	// The prefix for one note must never match another note's keys
	other := EmbeddingKey("n12", "emb_x")
	if len(other) >= len(prefix) && other[:len(prefix)] == prefix {
		t.Errorf("prefix %q wrongly matches key %q", prefix, other)
	}
}
