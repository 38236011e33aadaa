// ABOUTME: MCP tool handler implementations for the notes server
// ABOUTME: Storage errors surface as tool errors, never as protocol failures
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/ideanotes/internal/core"
	"github.com/harper/ideanotes/internal/models"
	"github.com/harper/ideanotes/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store    storage.NoteStore
	pipeline *core.Pipeline // nil when no provider is configured
}

// ListNotes handles the list_notes tool
func (h *Handlers) ListNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := h.store.GetNotes()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing notes failed: %v", err)), nil
	}
	return jsonResult(notes)
}

// GetNote handles the get_note tool
func (h *Handlers) GetNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	note, err := h.store.GetNote(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting note failed: %v", err)), nil
	}
	return jsonResult(note)
}

// CreateNote handles the create_note tool
func (h *Handlers) CreateNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		id = models.NewNoteID()
	}
	title := request.GetString("title", "")
	content := request.GetString("content", "")

	note, err := h.store.CreateNote(id, title, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating note failed: %v", err)), nil
	}

	// Embedding is an enrichment step; the note is authoritative even
	// when it fails.
	if h.pipeline != nil {
		if _, err := h.pipeline.ProcessNote(ctx, note); err != nil {
			log.Printf("Warning: embedding note %s failed: %v", note.ID, err)
		}
	}

	return jsonResult(note)
}

// UpdateNote handles the update_note tool
func (h *Handlers) UpdateNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	// Omitted fields keep their stored values, matching the CLI's edit
	current, err := h.store.GetNote(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting note failed: %v", err)), nil
	}
	title := request.GetString("title", current.Title)
	content := request.GetString("content", current.Content)

	note, err := h.store.UpdateNote(id, title, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("updating note failed: %v", err)), nil
	}

	if h.pipeline != nil {
		if _, err := h.pipeline.ProcessNote(ctx, note); err != nil {
			log.Printf("Warning: re-embedding note %s failed: %v", note.ID, err)
		}
	}

	return jsonResult(note)
}

// DeleteNote handles the delete_note tool
func (h *Handlers) DeleteNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	if err := h.store.DeleteNote(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("deleting note failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted note %s", id)), nil
}

// EmbedNote handles the embed_note tool
func (h *Handlers) EmbedNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.pipeline == nil {
		return mcp.NewToolResultError("no embedding provider configured (set OPENAI_API_KEY)"), nil
	}

	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	note, err := h.store.GetNote(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting note failed: %v", err)), nil
	}

	count, err := h.pipeline.ProcessNote(ctx, note)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding note failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("embedded note %s as %d idea(s)", id, count)), nil
}

// SearchNotes handles the search_notes tool
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.pipeline == nil {
		return mcp.NewToolResultError("no embedding provider configured (set OPENAI_API_KEY)"), nil
	}

	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", core.DefaultSearchLimit)

	results, err := h.pipeline.SearchSimilarNotes(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(results)
}

// jsonResult marshals a value into a text tool result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
