package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes in a book",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [path] [text]",
	Short: "Add a note",
	Long: `Adds a note anchored either at a position (--position) or to an
existing highlight (--highlight). The two anchors are mutually exclusive.`,
	Args: cobra.ExactArgs(2),
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteList,
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update [path] [note-id] [text]",
	Short: "Replace a note's text",
	Args:  cobra.ExactArgs(3),
	RunE:  runNoteUpdate,
}

var noteRemoveCmd = &cobra.Command{
	Use:   "remove [path] [note-id]",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteRemove,
}

var noteSearchCmd = &cobra.Command{
	Use:   "search [path] [query]",
	Short: "Search notes by text",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteSearch,
}

var noteExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export a book's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteExport,
}

// Flags for note commands.
var (
	notePosition    string
	noteHighlightID string
	noteType        string
	noteFormat      string
)

func init() {
	noteAddCmd.Flags().StringVarP(&notePosition, "position", "p", "", "Anchor position, e.g. 12.0")
	noteAddCmd.Flags().StringVar(&noteHighlightID, "highlight", "", "Anchor highlight ID")
	noteAddCmd.Flags().StringVarP(&noteType, "type", "t", string(domain.NoteMargin), "Note type (margin, inline, popup)")
	noteExportCmd.Flags().StringVarP(&noteFormat, "format", "f", "text", "Export format (text, json)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteRemoveCmd)
	noteCmd.AddCommand(noteSearchCmd)
	noteCmd.AddCommand(noteExportCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}
	text := args[1]

	if (notePosition == "") == (noteHighlightID == "") {
		return fmt.Errorf("%w: exactly one of --position and --highlight is required", domain.ErrInvalidInput)
	}

	var id string
	if noteHighlightID != "" {
		var ok bool
		id, ok = session.Annotations.AddNoteToHighlight(noteHighlightID, text)
		if !ok {
			return fmt.Errorf("%w: highlight %s", domain.ErrNotFound, noteHighlightID)
		}
	} else {
		pos := domain.Position(notePosition)
		if !pos.Validate(session.Document.Content) {
			return fmt.Errorf("%w: position %s", domain.ErrInvalidInput, notePosition)
		}
		id = session.Annotations.Notes.Add(pos, text, domain.NoteType(noteType))
	}

	if err := saveSession(session); err != nil {
		return err
	}
	cmd.Printf("Added note %s\n", id)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	notes := session.Annotations.Notes.All()
	if len(notes) == 0 {
		cmd.Println("No notes.")
		return nil
	}

	for i := range notes {
		printNote(cmd, &notes[i])
	}
	cmd.Printf("Total: %d notes\n", len(notes))
	return nil
}

func runNoteUpdate(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !session.Annotations.Notes.Update(args[1], args[2]) {
		return fmt.Errorf("%w: note %s", domain.ErrNotFound, args[1])
	}
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Updated note %s\n", args[1])
	return nil
}

func runNoteRemove(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !session.Annotations.Notes.Remove(args[1]) {
		return fmt.Errorf("%w: note %s", domain.ErrNotFound, args[1])
	}
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Removed note %s\n", args[1])
	return nil
}

func runNoteSearch(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	matches := session.Annotations.Notes.Search(args[1])
	if len(matches) == 0 {
		cmd.Printf("No notes matching %q.\n", args[1])
		return nil
	}

	for i := range matches {
		printNote(cmd, &matches[i])
	}
	return nil
}

func runNoteExport(cmd *cobra.Command, args []string) error {
	if exportService == nil || libraryService == nil {
		return errors.New("export service not configured")
	}

	bookID := libraryService.BookID(args[0])
	switch noteFormat {
	case "text":
		cmd.Print(exportService.NotesText(bookID))
	case "json":
		data, err := exportService.NotesJSON(bookID)
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	default:
		return fmt.Errorf("%w: unsupported export format: %s", domain.ErrInvalidInput, noteFormat)
	}
	return nil
}

func printNote(cmd *cobra.Command, n *domain.Note) {
	cmd.Printf("  %s (%s)\n", n.ID, n.Type)
	if n.Position != "" {
		cmd.Printf("    Position:  %s\n", n.Position)
	}
	if n.HighlightID != "" {
		cmd.Printf("    Highlight: %s\n", n.HighlightID)
	}
	cmd.Printf("    Text:      %s\n", domain.TruncateText(n.Text, 60))
	cmd.Println()
}
