package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarks in a book",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [path] [position]",
	Short: "Add a bookmark at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List bookmarks in position order",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkList,
}

var bookmarkNearestCmd = &cobra.Command{
	Use:   "nearest [path] [position]",
	Short: "Find the bookmark closest to a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkNearest,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove [path] [bookmark-id]",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkRemove,
}

var bookmarkExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export a book's bookmarks as text",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkExport,
}

// Flags for bookmark add.
var (
	bookmarkTitle string
	bookmarkNote  string
)

func init() {
	bookmarkAddCmd.Flags().StringVarP(&bookmarkTitle, "title", "t", "", "Bookmark title (default derived from position)")
	bookmarkAddCmd.Flags().StringVarP(&bookmarkNote, "note", "n", "", "Optional bookmark note")

	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkNearestCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkExportCmd)
	rootCmd.AddCommand(bookmarkCmd)
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	pos := domain.Position(args[1])
	if !pos.Validate(session.Document.Content) {
		return fmt.Errorf("%w: position %s", domain.ErrInvalidInput, args[1])
	}

	id := session.Annotations.Bookmarks.Add(pos, bookmarkTitle, bookmarkNote)
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Added bookmark %s at %s\n", id, pos)
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	bookmarks := session.Annotations.Bookmarks.All()
	if len(bookmarks) == 0 {
		cmd.Println("No bookmarks.")
		return nil
	}

	for i := range bookmarks {
		printBookmark(cmd, &bookmarks[i])
	}
	cmd.Printf("Total: %d bookmarks\n", len(bookmarks))
	return nil
}

func runBookmarkNearest(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	nearest, ok := session.Annotations.Bookmarks.Nearest(domain.Position(args[1]))
	if !ok {
		cmd.Println("No bookmarks.")
		return nil
	}

	printBookmark(cmd, nearest)
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	session, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !session.Annotations.Bookmarks.Remove(args[1]) {
		return fmt.Errorf("%w: bookmark %s", domain.ErrNotFound, args[1])
	}
	if err := saveSession(session); err != nil {
		return err
	}

	cmd.Printf("Removed bookmark %s\n", args[1])
	return nil
}

func runBookmarkExport(cmd *cobra.Command, args []string) error {
	if exportService == nil || libraryService == nil {
		return errors.New("export service not configured")
	}

	bookID := libraryService.BookID(args[0])
	cmd.Print(exportService.BookmarksText(bookID))
	return nil
}

func printBookmark(cmd *cobra.Command, b *domain.Bookmark) {
	cmd.Printf("  %s\n", b.ID)
	cmd.Printf("    Title:    %s\n", b.Title)
	cmd.Printf("    Position: %s\n", b.Position)
	if b.Note != "" {
		cmd.Printf("    Note:     %s\n", b.Note)
	}
	cmd.Println()
}
