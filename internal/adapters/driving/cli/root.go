package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/services"
	"github.com/custodia-labs/folio-cli/internal/logger"
	"github.com/custodia-labs/folio-cli/internal/readers"
	"github.com/custodia-labs/folio-cli/internal/readers/epub"
	"github.com/custodia-labs/folio-cli/internal/readers/pdf"
	"github.com/custodia-labs/folio-cli/internal/readers/text"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Services wired at startup. Tests inject their own instances before
// calling Execute.
var (
	sessionService *services.SessionService
	libraryService *services.LibraryService
	exportService  *services.ExportService
	settingsStore  driven.SettingsStore
	configStore    driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Read and annotate books from the command line",
	Long: `Folio is a command-line book reader with highlights, notes and bookmarks.

It reads EPUB, PDF and plain text files, keeps a library of opened books
with per-book reading progress, and stores all annotation data as JSON
under the folio data directory (~/.folio by default).`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		if sessionService != nil {
			return nil
		}
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory (default ~/.folio)")
}

// initServices wires the default adapters and services. The data
// directory resolves flag over config over the built-in default.
func initServices() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString(file.KeyDataDir)
	}

	store, err := jsonfile.New(dir)
	if err != nil {
		return err
	}

	registry := readers.NewRegistry()
	registry.Register(text.New())
	registry.Register(epub.New())
	registry.Register(pdf.New())

	configStore = cfg
	settingsStore = store
	libraryService = services.NewLibraryService(store, store)
	sessionService = services.NewSessionService(registry, libraryService, store)
	exportService = services.NewExportService(store, store)

	logger.Debug("data directory: %s", store.Dir())
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
