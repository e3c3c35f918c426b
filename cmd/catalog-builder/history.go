// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-builder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously written catalogs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.NewStore(cfg.Paths.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	catalogName, _ := cmd.Flags().GetString("catalog")
	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), history.ListOptions{Catalog: catalogName, Limit: limit})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No catalogs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-24s  %-8s  %5s  %s\n", "Date", "Catalog", "Mode", "Pages", "Output")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range records {
		name := r.Catalog
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-24s  %-8s  %5d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), name, r.Mode, r.Pages, r.OutputPath)
	}
	return nil
}

func init() {
	historyCmd.Flags().String("catalog", "", "only show builds of this catalog name")
	historyCmd.Flags().Int("limit", 20, "maximum number of builds")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(historyCmd)
}
