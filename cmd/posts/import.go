package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"postshelf/internal/content"
	"postshelf/internal/posts"
)

var importFrom string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the posts collection into the SQLite store",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", string(content.KindMarkdown), "source to import from: markdown or json")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	kind, err := content.ParseKind(importFrom)
	if err != nil {
		return err
	}
	if kind == content.KindSQLite {
		return fmt.Errorf("cannot import from the sqlite store into itself")
	}

	from, fromCloser, err := openSource(kind)
	if err != nil {
		return err
	}
	defer fromCloser.Close()

	dbPath := content.DatabasePath(cfg.DataDir)
	store, err := content.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := content.Copy(cmd.Context(), from, store, posts.Collection)
	if err != nil {
		return err
	}
	logger.Info().
		Int("posts", res.Copied).
		Int("removed", res.Removed).
		Str("from", string(kind)).
		Str("db", dbPath).
		Msg("import completed")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s (%d removed)\n", res.Copied, dbPath, res.Removed)
	return nil
}
