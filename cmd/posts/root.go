package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"postshelf/internal/config"
	"postshelf/internal/content"
	"postshelf/internal/logging"
)

var (
	sourceFlag     string
	contentDirFlag string
	dataDirFlag    string
	verbose        bool
	cfg            *config.Config
	logger         zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "posts",
	Short: "Inspect, import and export the posts collection",
	Long: `posts works on the same content sources as the server.

Example usage:
  posts list                       # Posts from the configured source, newest first
  posts list --source sqlite --json
  posts import                     # Copy Markdown posts into the SQLite store
  posts export --out dist          # Write a JSON snapshot of the sorted posts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "content source: markdown, sqlite or json (default from CONTENT_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&contentDirFlag, "content-dir", "", "markdown content root (default from CONTENT_DIR)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory for sqlite and json sources (default from DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if sourceFlag != "" {
		if _, err := content.ParseKind(sourceFlag); err != nil {
			return err
		}
		loaded.ContentSource = sourceFlag
	}
	if contentDirFlag != "" {
		loaded.ContentDir = contentDirFlag
	}
	if dataDirFlag != "" {
		loaded.DataDir = dataDirFlag
	}
	if verbose {
		loaded.LogLevel = "debug"
	}
	cfg = loaded
	logger = logging.New(cfg.LogLevel, cfg.LogFormat)
	return nil
}

func openSource(kind content.Kind) (content.Loader, io.Closer, error) {
	src := cfg.Source()
	src.Kind = kind
	return content.Open(src, logger)
}

func loadEnvFiles() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
		}
	}
}
