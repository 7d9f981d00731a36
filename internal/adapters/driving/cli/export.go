package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export all data for a book as JSON",
	Long: `Bundles a book's library entry, highlights, notes and bookmarks into a
single JSON document on stdout. The blob can be restored with import.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [path] [export-file]",
	Short: "Restore a book's data from an export file",
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil || libraryService == nil {
		return errors.New("export service not configured")
	}

	bookID := libraryService.BookID(args[0])
	data, err := exportService.ExportBookData(bookID)
	if err != nil {
		return fmt.Errorf("failed to export book data: %w", err)
	}

	cmd.Println(string(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if exportService == nil || libraryService == nil {
		return errors.New("export service not configured")
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read export file: %w", err)
	}

	bookID := libraryService.BookID(args[0])
	if err := exportService.ImportBookData(bookID, data); err != nil {
		return fmt.Errorf("failed to import book data: %w", err)
	}

	cmd.Printf("Imported data for %s\n", bookID)
	return nil
}
