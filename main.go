// Command inventario browses and edits a spreadsheet inventory in the
// terminal. Without a subcommand it starts the interactive viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bekirdag/inventario/internal/config"
)

var (
	configPath string
	dbPath     string
	language   string
	compress   string
	keepEmpty  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "inventario",
		Short:         "Browse and edit a spreadsheet inventory",
		Long:          "inventario imports an .xlsx workbook, lists its rows per sheet (location), searches and edits them, and keeps the data in a local database.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <user config dir>/inventario/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "Label language: pt or en")
	rootCmd.PersistentFlags().StringVar(&compress, "compress", "", "Compress stored data: true or false")
	rootCmd.PersistentFlags().BoolVar(&keepEmpty, "keep-empty-sheets", false, "Keep sheets without rows on import")

	rootCmd.AddCommand(
		newImportCmd(),
		newListCmd(),
		newShowCmd(),
		newSetCmd(),
		newExportCmd(),
		newClearCmd(),
		newThemeCmd(),
	)
	return rootCmd
}

// loadConfig merges the config file, environment and command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if language != "" {
		cfg.Language = language
	}
	if compress != "" {
		on := strings.EqualFold(compress, "true") || compress == "1"
		cfg.Compress = &on
	}
	if cmd.Flags().Changed("keep-empty-sheets") {
		cfg.KeepEmptySheets = keepEmpty
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return err
	}
	logFile, err := tea.LogToFile(cfg.LogPath, "inventario")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := tea.NewProgram(
		newModel(a),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
