package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the book library",
	Long:  `List known books, inspect or remove entries, and maintain the stored data.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books in the library",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryInfoCmd = &cobra.Command{
	Use:   "info [book-id]",
	Short: "Show a library entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryInfo,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [book-id]",
	Short: "Remove a book and its annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

var libraryCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove annotation data for books no longer in the library",
	Args:  cobra.NoArgs,
	RunE:  runLibraryCleanup,
}

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored data statistics",
	Args:  cobra.NoArgs,
	RunE:  runLibraryStats,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryInfoCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryCleanupCmd)
	libraryCmd.AddCommand(libraryStatsCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	books := libraryService.List()
	if len(books) == 0 {
		cmd.Println("Library is empty.")
		return nil
	}

	cmd.Printf("Library:\n\n")
	for i := range books {
		cmd.Printf("  %s\n", books[i].ID)
		if title, ok := books[i].Metadata["title"].(string); ok && title != "" {
			cmd.Printf("    Title: %s\n", title)
		}
		cmd.Printf("    Path: %s\n", books[i].Filepath)
		cmd.Printf("    Progress: %.1f%%\n", books[i].ReadingProgress)
		cmd.Println()
	}
	cmd.Printf("Total: %d books\n", len(books))
	return nil
}

func runLibraryInfo(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	book, err := libraryService.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get book: %w", err)
	}

	cmd.Printf("Book: %s\n\n", book.ID)
	cmd.Printf("  Path:     %s\n", book.Filepath)
	cmd.Printf("  Added:    %s\n", book.AddedAt.Format("2006-01-02 15:04:05"))
	if book.LastOpened != nil {
		cmd.Printf("  Opened:   %s\n", book.LastOpened.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("  Position: %s\n", book.ReadingPosition)
	cmd.Printf("  Progress: %.1f%%\n", book.ReadingProgress)

	if len(book.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		for k, v := range book.Metadata {
			cmd.Printf("    %s: %v\n", k, v)
		}
	}
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}

	cmd.Printf("Removed %s and its annotations.\n", args[0])
	return nil
}

func runLibraryCleanup(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	removed, err := libraryService.Cleanup()
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if removed == 0 {
		cmd.Println("No orphaned data found.")
		return nil
	}
	cmd.Printf("Removed %d orphaned annotation entries.\n", removed)
	return nil
}

func runLibraryStats(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	stats := libraryService.Stats()
	cmd.Printf("Library statistics:\n\n")
	cmd.Printf("  Books:      %d\n", stats.TotalBooks)
	cmd.Printf("  Highlights: %d\n", stats.TotalHighlights)
	cmd.Printf("  Notes:      %d\n", stats.TotalNotes)
	cmd.Printf("  Bookmarks:  %d\n", stats.TotalBookmarks)
	return nil
}
