package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"postshelf/internal/content"
	"postshelf/internal/posts"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the sorted posts to a JSON snapshot",
	Long: `export loads the posts from the configured source, orders them newest
first and writes them to <out>/posts.json. The default output directory is the
one the json source reads from.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default <data-dir>/snapshots)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	loader, closer, err := openSource(cfg.Source().Kind)
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := posts.Sorted(cmd.Context(), loader)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = content.SnapshotDir(cfg.DataDir)
	}
	if err := content.NewJSONStore(out).Save(posts.Collection, entries); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d posts to %s\n", len(entries), out)
	return nil
}
