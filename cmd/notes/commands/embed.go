// ABOUTME: CLI command to (re)embed a note through the idea pipeline
// ABOUTME: Replaces the note's stored embeddings atomically
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var embedAll bool

// NewEmbedCmd creates the embed command
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed [id]",
		Short: "Embed a note for semantic search",
		Long: `Split a note into ideas and store one embedding per idea,
replacing any prior embeddings for that note.

Requires OPENAI_API_KEY. Useful after 'notes new --no-embed', after a
failed embedding run, or with --all to rebuild the whole index.

Examples:
  notes embed note_20260901_120000_ab12cd34
  notes embed --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEmbed,
	}

	cmd.Flags().BoolVar(&embedAll, "all", false, "Re-embed every note")

	return cmd
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if embedAll == (len(args) == 1) {
		return fmt.Errorf("provide exactly one of a note id or --all")
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	pipeline, err := newPipeline(cfg, store)
	if err != nil {
		return err
	}
	if pipeline == nil {
		return fmt.Errorf("OPENAI_API_KEY is required for embedding")
	}

	if embedAll {
		notes, err := store.GetNotes()
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		for i := range notes {
			count, err := pipeline.ProcessNote(cmd.Context(), &notes[i])
			if err != nil {
				return fmt.Errorf("embedding note %s: %w", notes[i].ID, err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Embedded %s as %d idea(s)\n", notes[i].ID, count)
			}
		}
		return nil
	}

	note, err := store.GetNote(args[0])
	if err != nil {
		return fmt.Errorf("getting note: %w", err)
	}

	count, err := pipeline.ProcessNote(cmd.Context(), note)
	if err != nil {
		return fmt.Errorf("embedding note: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Embedded %s as %d idea(s)\n", note.ID, count)
	}
	return nil
}
