// ABOUTME: CLI command to list notes
// ABOUTME: Most recently updated first, the navigator ordering
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Long: `List all notes, most recently updated first.

Examples:
  notes list
  notes list --format json`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	notes, err := store.GetNotes()
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if len(notes) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No notes found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tUPDATED\tPREVIEW\n")
	fmt.Fprintf(w, "--\t-----\t-------\t-------\n")

	for _, note := range notes {
		title := note.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(note.ID, 30),
			truncate(title, 30),
			formatTime(note.UpdatedTime()),
			truncate(firstLine(note.Content), 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d note(s)\n", len(notes))
	}
	return nil
}
