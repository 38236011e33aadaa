// ABOUTME: SQLite schema for the note store
// ABOUTME: Two tables: notes and note_embeddings, with cascade delete
package sqlite

// Schema contains all SQL statements for database initialization.
// Timestamps are epoch milliseconds so ordering is integer comparison.
const Schema = `
-- Notes table (authoritative note records)
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Idea embeddings table (many per note, vector stored as BLOB)
CREATE TABLE IF NOT EXISTS note_embeddings (
    id TEXT PRIMARY KEY,
    note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    vector BLOB NOT NULL,
    created_at INTEGER NOT NULL
);

-- Indexes for the navigator listing order and per-note lookups
CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_embeddings_note ON note_embeddings(note_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
