// ABOUTME: CLI command for semantic similarity search
// ABOUTME: Embeds the query and ranks notes by vector distance
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/ideanotes/internal/core"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes by meaning",
		Long: `Find the notes most semantically similar to a free-text query.

The query is embedded through the same provider as stored notes and
compared against every stored idea vector. Notes appear once each,
ranked by their closest idea.

Examples:
  notes search "espresso recommendations"
  notes search --limit 10 "travel plans"
  notes search --format json "project deadlines"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", core.DefaultSearchLimit, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
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
		return fmt.Errorf("OPENAI_API_KEY is required for search")
	}

	results, err := pipeline.SearchSimilarNotes(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching notes: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No notes found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DISTANCE\tTITLE\tID\tPREVIEW\n")
	fmt.Fprintf(w, "--------\t-----\t--\t-------\n")

	for _, result := range results {
		title := result.Note.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%.4f\t%s\t%s\t%s\n",
			result.Distance,
			truncate(title, 25),
			truncate(result.Note.ID, 30),
			truncate(firstLine(result.Note.Content), 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d note(s)\n", len(results))
	}
	return nil
}
