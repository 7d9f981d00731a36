package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/paginator"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a book and show its details",
	Long:  `Parses the book, adds it to the library and prints its metadata and annotation counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

var readCmd = &cobra.Command{
	Use:   "read [path]",
	Short: "Read a book page by page",
	Long: `Paginates the book content and prints one page. The page read is
recorded as the book's reading progress.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

// Flags for the read command.
var (
	readPage  int
	readLines int
)

func init() {
	readCmd.Flags().IntVarP(&readPage, "page", "p", 0, "Page to read (default 1)")
	readCmd.Flags().IntVarP(&readLines, "lines", "l", 0, "Lines per page (default: from config)")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(readCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Open(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open book: %w", err)
	}

	doc := session.Document
	cmd.Printf("Book: %s\n\n", doc.Title)
	cmd.Printf("  ID:       %s\n", session.BookID)
	cmd.Printf("  Author:   %s\n", doc.Author)
	cmd.Printf("  Format:   %s\n", doc.Format)
	cmd.Printf("  Chapters: %d\n", len(doc.Chapters))
	cmd.Printf("  Words:    %d\n", domain.WordCount(doc.Content))
	cmd.Printf("  Est. reading time: %d min\n", domain.EstimateReadingTime(doc.Content, wordsPerMinute()))
	cmd.Printf("\n  Highlights: %d  Notes: %d  Bookmarks: %d\n",
		session.Annotations.Highlights.Len(),
		session.Annotations.Notes.Len(),
		session.Annotations.Bookmarks.Len())
	cmd.Printf("  Progress: %.1f%%\n", session.Record.ReadingProgress)

	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Open(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open book: %w", err)
	}

	var opts []paginator.Option
	if lines := pageLines(); lines > 0 {
		opts = append(opts, paginator.WithLinesPerPage(lines))
	}
	pages := paginator.New(session.Document, opts...)

	if readPage > 0 && !pages.GoTo(readPage) {
		return fmt.Errorf("%w: page %d of %d", domain.ErrInvalidInput, readPage, pages.PageCount())
	}

	cmd.Println(pages.Page().Text())
	cmd.Printf("\n--- Page %s (%.1f%%) ---\n", pages.Position(), pages.Progress())

	if err := sessionService.Close(session, pages.PagePosition(), pages.Progress()); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// pageLines resolves the lines-per-page setting: flag over config over
// the paginator default.
func pageLines() int {
	if readLines > 0 {
		return readLines
	}
	if configStore != nil {
		return configStore.GetInt(file.KeyLinesPerPage)
	}
	return 0
}

// wordsPerMinute resolves the configured reading speed. A missing or
// non-positive value falls back to domain.DefaultWordsPerMinute inside
// the estimate itself.
func wordsPerMinute() int {
	if configStore != nil {
		return configStore.GetInt(file.KeyWordsPerMinute)
	}
	return 0
}
