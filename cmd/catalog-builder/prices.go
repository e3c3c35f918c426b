// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-builder/internal/pricetable"
	"github.com/pdiddy/catalog-builder/pkg/types"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Inspect the price spreadsheet",
}

var pricesLookupCmd = &cobra.Command{
	Use:   "lookup <code-or-filename>...",
	Short: "Show the prices a photo or product code resolves to",
	Long: `Lookup resolves each argument the way a build does: a filename is cut at
the first space and stripped of its extension, the code is trimmed and
uppercased, and cover names (containing "capa") never have prices.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPricesLookup,
}

// lookupResult is one resolved argument.
type lookupResult struct {
	Input  string            `json:"input"`
	Code   string            `json:"code"`
	Cover  bool              `json:"cover"`
	Prices map[string]string `json:"prices"`
	Found  bool              `json:"found"`
}

func runPricesLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sheetPath, _ := cmd.Flags().GetString("sheet")
	if sheetPath == "" {
		sheetPath = cfg.Paths.PriceSheet
	}
	sheet, err := pricetable.Load(sheetPath, cfg.Paths.FallbackSheet())
	if err != nil {
		return err
	}

	results := make([]lookupResult, 0, len(args))
	for _, arg := range args {
		code := types.CodeFromFilename(arg)
		row := sheet.PricesFor(code)
		results = append(results, lookupResult{
			Input:  arg,
			Code:   code.Normalized(),
			Cover:  code.IsCover(),
			Prices: row.Map(),
			Found:  !row.AllMissing(),
		})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	currency := cfg.Layout.Currency
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		switch {
		case r.Cover:
			fmt.Fprintf(os.Stdout, "%s: cover, no prices\n", r.Code)
			continue
		case !r.Found:
			fmt.Fprintf(os.Stdout, "%s: no prices in %s\n", r.Code, sheet.Source())
			continue
		}
		fmt.Fprintf(os.Stdout, "%s\n", r.Code)
		for _, label := range sheet.Columns() {
			v := r.Prices[label]
			if v != types.NotAvailable {
				v = currency + " " + v
			}
			fmt.Fprintf(os.Stdout, "  %-12s %s\n", label, v)
		}
	}
	return nil
}

func init() {
	pricesLookupCmd.Flags().String("sheet", "", "price spreadsheet (default: paths.price_sheet)")
	pricesLookupCmd.Flags().Bool("json", false, "output results as JSON")

	pricesCmd.AddCommand(pricesLookupCmd)
	rootCmd.AddCommand(pricesCmd)
}
