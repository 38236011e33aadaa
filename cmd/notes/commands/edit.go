// ABOUTME: CLI command to update a note's title and content
// ABOUTME: Refreshes updated_at and re-embeds when a key is set
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
	editFile    string
	editNoEmbed bool
)

// NewEditCmd creates the edit command
func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a note",
		Long: `Update a note's title and/or content.

Fields not passed as flags keep their current value. The note's
updated_at timestamp is refreshed and, when OPENAI_API_KEY is set,
its embeddings are rebuilt from the new text.

Examples:
  notes edit note_20260901_120000_ab12cd34 --title "New title"
  notes edit note_20260901_120000_ab12cd34 --content "Rewritten" --no-embed`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringVar(&editTitle, "title", "", "New title")
	cmd.Flags().StringVar(&editContent, "content", "", "New content")
	cmd.Flags().StringVar(&editFile, "file", "", "Read new content from file")
	cmd.Flags().BoolVar(&editNoEmbed, "no-embed", false, "Skip the re-embedding step")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	title := note.Title
	if cmd.Flags().Changed("title") {
		title = editTitle
	}

	content := note.Content
	if editFile != "" {
		data, err := os.ReadFile(editFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		content = string(data)
	} else if cmd.Flags().Changed("content") {
		content = editContent
	}

	updated, err := store.UpdateNote(note.ID, title, content)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}

	if !editNoEmbed {
		pipeline, err := newPipeline(cfg, store)
		if err != nil {
			return err
		}
		if pipeline != nil {
			if _, err := pipeline.ProcessNote(cmd.Context(), updated); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: re-embedding failed, prior embeddings kept: %v\n", err)
			}
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated note %s\n", updated.ID)
	}
	return nil
}
