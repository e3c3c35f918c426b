// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pricetable loads the pricing spreadsheet and resolves product
// codes to formatted per-unit prices.
//
// The sheet layout is positional: rows 0-2 are titles and spacers, row 3
// holds the column headers, data starts at row 4. Column 4 is the product
// code and columns 12-18 are the price tiers.
package pricetable

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

const (
	headerRow     = 3
	firstDataRow  = 4
	codeColumn    = 4
	firstPriceCol = 12
	lastPriceCol  = 18

	// priceDecimals is the number of decimals every price is formatted to.
	priceDecimals = 2
)

// price is one parsed price cell. ok is false for empty or non-numeric cells.
type price struct {
	value decimal.Decimal
	ok    bool
}

// Sheet is a loaded price table. It is read-only after construction and
// safe for concurrent readers. A nil *Sheet behaves as an empty table.
type Sheet struct {
	source     string
	codeColumn string
	columns    []string
	index      map[string][]price
}

// FromRows builds a Sheet from a raw cell grid (rows of cell text). Short
// rows are treated as padded with empty cells. When a code appears more
// than once the first row wins.
func FromRows(rows [][]string) (*Sheet, error) {
	if len(rows) <= headerRow {
		return nil, fmt.Errorf("sheet has %d rows, header expected at row %d", len(rows), headerRow+1)
	}
	header := rows[headerRow]
	if len(header) <= codeColumn {
		return nil, fmt.Errorf("header row has %d columns, code column expected at column %d", len(header), codeColumn+1)
	}

	s := &Sheet{
		codeColumn: headerLabel(header, codeColumn),
		index:      make(map[string][]price),
	}
	last := min(lastPriceCol, len(header)-1)
	for c := firstPriceCol; c <= last; c++ {
		s.columns = append(s.columns, headerLabel(header, c))
	}

	for _, row := range rows[firstDataRow:] {
		code := types.NormalizeCode(cellAt(row, codeColumn))
		if code == "" {
			continue
		}
		if _, dup := s.index[code]; dup {
			continue
		}
		prices := make([]price, len(s.columns))
		for i := range s.columns {
			prices[i] = parsePrice(cellAt(row, firstPriceCol+i))
		}
		s.index[code] = prices
	}
	return s, nil
}

// Lookup returns the prices stored for code. The code is trimmed and
// uppercased and must equal a sheet code exactly. Unknown codes yield a
// row where every column is N/A.
func (s *Sheet) Lookup(code string) types.PriceRow {
	if s == nil {
		return nil
	}
	prices, ok := s.index[types.NormalizeCode(code)]
	if !ok {
		return types.MissingRow(s.columns)
	}
	row := make(types.PriceRow, len(s.columns))
	for i, label := range s.columns {
		row[i] = types.PriceCell{Label: label, Value: types.NotAvailable}
		if prices[i].ok {
			row[i].Value = prices[i].value.StringFixed(priceDecimals)
		}
	}
	return row
}

// PricesFor is Lookup for a code derived from an image filename. Cover
// codes are always priceless.
func (s *Sheet) PricesFor(code types.ProductCode) types.PriceRow {
	if code.IsCover() {
		return types.MissingRow(s.Columns())
	}
	return s.Lookup(string(code))
}

// Columns returns the price column labels in sheet order.
func (s *Sheet) Columns() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.columns...)
}

// CodeColumn returns the header label of the code column.
func (s *Sheet) CodeColumn() string {
	if s == nil {
		return ""
	}
	return s.codeColumn
}

// Len returns the number of distinct codes in the sheet.
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.index)
}

// Source returns the file the sheet was loaded from, if any.
func (s *Sheet) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func headerLabel(header []string, col int) string {
	label := strings.TrimSpace(cellAt(header, col))
	if label == "" {
		return fmt.Sprintf("Coluna %d", col+1)
	}
	return label
}

// parsePrice accepts plain decimals and comma decimal separators ("12,50").
func parsePrice(s string) price {
	s = strings.TrimSpace(s)
	if s == "" {
		return price{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		d, err = decimal.NewFromString(strings.Replace(s, ",", ".", 1))
		if err != nil {
			return price{}
		}
	}
	return price{value: d, ok: true}
}
