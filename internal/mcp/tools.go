// ABOUTME: MCP tool definitions and registration for the notes server
// ABOUTME: Exposes note CRUD plus the embedding pipeline and semantic search
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/ideanotes/internal/core"
	"github.com/harper/ideanotes/internal/storage"
)

// RegisterTools registers all MCP tools with the server. pipeline may
// be nil when no provider is configured; the embedding tools then
// report an error instead of failing at startup.
func RegisterTools(server *mcpserver.MCPServer, store storage.NoteStore, pipeline *core.Pipeline) *Handlers {
	handlers := &Handlers{
		store:    store,
		pipeline: pipeline,
	}

	// 1. list_notes - All notes, most recently updated first
	server.AddTool(mcp.Tool{
		Name:        "list_notes",
		Description: "List all notes ordered by most recently updated.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListNotes)

	// 2. get_note - Single note by id
	server.AddTool(mcp.Tool{
		Name:        "get_note",
		Description: "Get a single note by its id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Note id",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.GetNote)

	// 3. create_note - New note, id generated when omitted
	server.AddTool(mcp.Tool{
		Name:        "create_note",
		Description: "Create a new note. Generates an id when none is given and embeds the note for semantic search when a provider is configured.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Optional note id; generated when omitted",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Note title",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Note content",
				},
			},
		},
	}, handlers.CreateNote)

	// 4. update_note - Overwrite title/content, refresh updated_at
	server.AddTool(mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title and/or content; omitted fields keep their stored values. Re-embeds the note when a provider is configured.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Note id",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "New title (unchanged when omitted)",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "New content (unchanged when omitted)",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.UpdateNote)

	// 5. delete_note - Remove note and its embeddings
	server.AddTool(mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note and all of its idea embeddings.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Note id",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.DeleteNote)

	// 6. embed_note - Re-run the idea pipeline for a note
	server.AddTool(mcp.Tool{
		Name:        "embed_note",
		Description: "Split a note into ideas and store one embedding per idea, replacing any prior embeddings.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Note id",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.EmbedNote)

	// 7. search_notes - Semantic similarity search
	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Find the notes most semantically similar to a free-text query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of notes to return (default: 5)",
					"default":     core.DefaultSearchLimit,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	return handlers
}
