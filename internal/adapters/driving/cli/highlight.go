package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Manage highlights in a book",
}

var highlightAddCmd = &cobra.Command{
	Use:   "add [path] [text]",
	Short: "Highlight the first occurrence of a text",
	Long: `Searches the book content for the given text and highlights its first
occurrence. The text must fall within a single line.`,
	Args: cobra.ExactArgs(2),
	RunE: runHighlightAdd,
}

var highlightListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List highlights",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightList,
}

var highlightSearchCmd = &cobra.Command{
	Use:   "search [path] [query]",
	Short: "Search highlights by text",
	Args:  cobra.ExactArgs(2),
	RunE:  runHighlightSearch,
}

var highlightColorCmd = &cobra.Command{
	Use:   "color [path] [highlight-id] [color]",
	Short: "Change a highlight's color",
	Args:  cobra.ExactArgs(3),
	RunE:  runHighlightColor,
}

var highlightRemoveCmd = &cobra.Command{
	Use:   "remove [path] [highlight-id]",
	Short: "Remove a highlight and its attached notes",
	Args:  cobra.ExactArgs(2),
	RunE:  runHighlightRemove,
}

// Flags for highlight add.
var (
	highlightColor    string
	highlightFromLine int
)

func init() {
	highlightAddCmd.Flags().StringVarP(&highlightColor, "color", "c", "", "Highlight color (default from config)")
	highlightAddCmd.Flags().IntVar(&highlightFromLine, "from-line", 1, "Line to start searching from")

	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightListCmd)
	highlightCmd.AddCommand(highlightSearchCmd)
	highlightCmd.AddCommand(highlightColorCmd)
	highlightCmd.AddCommand(highlightRemoveCmd)
	rootCmd.AddCommand(highlightCmd)
}

// openSession opens a book session for an annotation command.
func openSession(path string) (*services.Session, error) {
	if sessionService == nil {
		return nil, errors.New("session service not configured")
	}
	return sessionService.Open(context.Background(), path)
}

// saveSession persists a session's annotations.
func saveSession(session *services.Session) error {
	if err := sessionService.Save(session); err != nil {
		return fmt.Errorf("failed to save annotations: %w", err)
	}
	return nil
}

func runHighlightAdd(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}
	text := args[1]

	start, found := domain.FindText(session.Document.Content, text, highlightFromLine)
	if !found {
		return fmt.Errorf("%w: text not found: %q", domain.ErrNotFound, text)
	}
	end := domain.NewPosition(start.Line(), start.Char()+len(text))

	color := highlightColor
	if color == "" && configStore != nil {
		color = configStore.GetString(file.KeyHighlightColor)
	}

	id := session.Annotations.Highlights.Add(start, end, text, color)
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Highlighted %q at %s (%s)\n", text, start, id)
	return nil
}

func runHighlightList(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	highlights := session.Annotations.Highlights.All()
	if len(highlights) == 0 {
		cmd.Println("No highlights.")
		return nil
	}

	for i := range highlights {
		printHighlight(cmd, &highlights[i])
	}
	cmd.Printf("Total: %d highlights\n", len(highlights))
	return nil
}

func runHighlightSearch(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	matches := session.Annotations.Highlights.Search(args[1])
	if len(matches) == 0 {
		cmd.Printf("No highlights matching %q.\n", args[1])
		return nil
	}

	for i := range matches {
		printHighlight(cmd, &matches[i])
	}
	return nil
}

func runHighlightColor(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !session.Annotations.Highlights.SetColor(args[1], args[2]) {
		return fmt.Errorf("%w: highlight %s", domain.ErrNotFound, args[1])
	}
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Highlight %s is now %s.\n", args[1], args[2])
	return nil
}

func runHighlightRemove(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !session.Annotations.RemoveHighlight(args[1]) {
		return fmt.Errorf("%w: highlight %s", domain.ErrNotFound, args[1])
	}
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Removed highlight %s and its notes.\n", args[1])
	return nil
}

func printHighlight(cmd *cobra.Command, h *domain.Highlight) {
	cmd.Printf("  %s\n", h.ID)
	cmd.Printf("    Range: %s - %s\n", h.StartIndex, h.EndIndex)
	cmd.Printf("    Color: %s\n", h.Color)
	cmd.Printf("    Text:  %s\n", domain.TruncateText(h.Text, 60))
	if len(h.NoteIDs) > 0 {
		cmd.Printf("    Notes: %d\n", len(h.NoteIDs))
	}
	cmd.Println()
}
