package main

import (
	"encoding/json"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"postshelf/internal/posts"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print posts as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	loader, closer, err := openSource(cfg.Source().Kind)
	if err != nil {
		return err
	}
	defer closer.Close()

	entries, err := posts.Sorted(cmd.Context(), loader)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Date", "Title", "Tags"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{
			e.ID,
			e.Data.PostDate.Format("2006-01-02"),
			e.Data.Title,
			strings.Join(e.Data.Tags, ", "),
		})
	}
	table.Render()
	return nil
}
