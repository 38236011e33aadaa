// ABOUTME: CLI command to show a single note
// ABOUTME: Includes the embedding count so users can see index state
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Long: `Show a note's title, content, timestamps, and how many idea
embeddings it has stored.

Examples:
  notes show note_20260901_120000_ab12cd34
  notes show note_20260901_120000_ab12cd34 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	note, err := store.GetNote(args[0])
	if err != nil {
		return fmt.Errorf("getting note: %w", err)
	}

	embeddings, err := store.EmbeddingsFor(note.ID)
	if err != nil {
		return fmt.Errorf("getting embeddings: %w", err)
	}

	if outputFormat == "json" {
		out := struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			Content    string `json:"content"`
			CreatedAt  int64  `json:"created_at"`
			UpdatedAt  int64  `json:"updated_at"`
			Embeddings int    `json:"embeddings"`
		}{note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt, len(embeddings)}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	title := note.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", title)
	fmt.Fprintf(cmd.OutOrStdout(), "ID:       %s\n", note.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Created:  %s\n", note.CreatedTime().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(cmd.OutOrStdout(), "Updated:  %s\n", note.UpdatedTime().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(cmd.OutOrStdout(), "Ideas:    %d embedded\n", len(embeddings))
	if note.Content != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", note.Content)
	}
	return nil
}
