// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricetable

import (
	"fmt"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// readXLSX reads the first worksheet of an Office Open XML workbook.
// Numeric cells are returned as their raw value so prices keep full
// precision; other cells use their formatted text.
func readXLSX(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	wb, err := spreadsheet.Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var rows [][]string
	for _, row := range sheets[0].Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		for len(rows) <= rowIdx {
			rows = append(rows, nil)
		}
		var cells []string
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			for len(cells) <= colIdx {
				cells = append(cells, "")
			}
			cells[colIdx] = cellText(cell)
		}
		rows[rowIdx] = cells
	}
	return rows, nil
}

func cellText(cell spreadsheet.Cell) string {
	if cell.IsNumber() {
		if raw, err := cell.GetRawValue(); err == nil {
			return raw
		}
	}
	return cell.GetFormattedValue()
}
