// ABOUTME: CLI command to create a new note
// ABOUTME: Content comes from a flag, a file, or stdin; embeds when a key is set
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/ideanotes/internal/models"
)

var (
	newContent string
	newFile    string
	newID      string
	newNoEmbed bool
)

// NewNewCmd creates the new command
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new note",
		Long: `Create a new note and embed it for semantic search.

Content is read from --content, --file, or stdin. When OPENAI_API_KEY
is set the note is split into ideas and embedded immediately; without
a key the note is stored unembedded and can be embedded later with
'notes embed'.

Examples:
  notes new "Meeting notes" --content "Discussed the Q3 roadmap"
  notes new "Reading list" --file books.txt
  echo "Try the new espresso place" | notes new "Coffee"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNew,
	}

	cmd.Flags().StringVar(&newContent, "content", "", "Note content")
	cmd.Flags().StringVar(&newFile, "file", "", "Read note content from file")
	cmd.Flags().StringVar(&newID, "id", "", "Explicit note id (generated when omitted)")
	cmd.Flags().BoolVar(&newNoEmbed, "no-embed", false, "Skip the embedding step")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var title string
	if len(args) > 0 {
		title = args[0]
	}

	content := newContent
	if content == "" && newFile != "" {
		data, err := os.ReadFile(newFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		content = string(data)
	}
	if content == "" && newFile == "" {
		stat, _ := os.Stdin.Stat()
		if stat != nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}
	}
	content = strings.TrimRight(content, "\n")

	if title == "" && content == "" {
		return fmt.Errorf("nothing to store: provide a title, --content, --file, or stdin")
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	id := newID
	if id == "" {
		id = models.NewNoteID()
	}

	note, err := store.CreateNote(id, title, content)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	if !newNoEmbed {
		pipeline, err := newPipeline(cfg, store)
		if err != nil {
			return err
		}
		if pipeline != nil {
			count, err := pipeline.ProcessNote(cmd.Context(), note)
			if err != nil {
				// The note itself is stored; embedding is enrichment.
				fmt.Fprintf(os.Stderr, "Warning: embedding failed, note stored unembedded: %v\n", err)
			} else if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d idea(s)\n", count)
			}
		} else if verbose {
			fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set, skipping embedding")
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created note %s\n", note.ID)
	}
	return nil
}
