package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/internal/config"
)

var (
	verbose    bool
	adapter    string
	dataPath   string
	slot       string
	versioning bool
	readOnly   bool
	locale     string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "Quick categorized notes with AI summaries",
	Long: `jotter keeps short notes in a single slot (a JSON file, a bbolt
database or a SQLite table), lets you search and filter them by category,
and can ask an AI completion service for a short summary of any note.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		cfg = loaded
		return nil
	},
}

// applyFlags lets explicitly set flags win over files and environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("adapter") {
		c.Store.Adapter = adapter
	}
	if flags.Changed("path") {
		c.Store.Path = dataPath
	}
	if flags.Changed("slot") {
		c.Store.Slot = slot
	}
	if flags.Changed("versioning") {
		c.Store.Versioning = versioning
	}
	if flags.Changed("read-only") {
		c.Store.ReadOnly = readOnly
	}
	if flags.Changed("locale") {
		c.Display.Locale = locale
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs, bolt, sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "path", "", "Data directory (default: project .jotter/data or ~/.jotter/data)")
	rootCmd.PersistentFlags().StringVar(&slot, "slot", "notes", "Slot name")
	rootCmd.PersistentFlags().BoolVar(&versioning, "versioning", false, "Commit every change to git (fs adapter)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Reject all writes")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "id", "Display language (id, en)")
}
