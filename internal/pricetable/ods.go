// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricetable

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/knieriem/odf/ods"
)

const (
	odsContent = "content.xml"

	// maxColumns bounds column expansion; sheets pad rows with thousands
	// of repeated empty cells and only the first 19 columns are read.
	maxColumns = 64
)

type odsDocument struct {
	Tables []odsTable `xml:"body>spreadsheet>table"`
}

type odsTable struct {
	Name string      `xml:"name,attr"`
	Rows []odsRowSet `xml:",any"`
}

// odsRowSet captures table-row elements directly under the table as well
// as rows nested in table-header-rows and table-row-group wrappers.
type odsRowSet struct {
	XMLName xml.Name
	Repeat  int         `xml:"number-rows-repeated,attr"`
	Cells   []ods.Cell  `xml:",any"`
	Nested  []odsRowSet `xml:"table-row"`
}

// readODS reads the first table of an OpenDocument spreadsheet.
func readODS(path string) ([][]string, error) {
	f, err := ods.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := f.Open(odsContent)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", odsContent, err)
	}
	defer content.Close()

	var doc odsDocument
	if err := xml.NewDecoder(content).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", odsContent, err)
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("spreadsheet has no tables")
	}
	return tableRows(doc.Tables[0]), nil
}

func tableRows(t odsTable) [][]string {
	var (
		rows         [][]string
		pendingEmpty int
		buf          bytes.Buffer
	)

	var walk func(sets []odsRowSet)
	walk = func(sets []odsRowSet) {
		for _, rs := range sets {
			switch rs.XMLName.Local {
			case "table-row":
				cells := rowCells(rs.Cells, &buf)
				n := repeatCount(rs.Repeat)
				if len(cells) == 0 {
					// Trailing empty rows are dropped; interior ones keep
					// their positions.
					pendingEmpty += n
					continue
				}
				for ; pendingEmpty > 0; pendingEmpty-- {
					rows = append(rows, nil)
				}
				for range n {
					rows = append(rows, cells)
				}
			case "table-header-rows", "table-row-group", "table-rows":
				walk(rs.Nested)
			}
		}
	}
	walk(t.Rows)
	return rows
}

func rowCells(cells []ods.Cell, buf *bytes.Buffer) []string {
	var out []string
	for i := range cells {
		c := &cells[i]
		var text string
		switch c.XMLName.Local {
		case "table-cell":
			text = cellValue(c, buf)
		case "covered-table-cell":
		default:
			continue
		}
		for range repeatCount(c.RepeatedCols) {
			if len(out) >= maxColumns {
				break
			}
			out = append(out, text)
		}
	}
	// Trim trailing empties so blank rows come back as zero-length.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// cellValue prefers the stored number over the displayed text so currency
// formatting ("R$ 10,50") does not reach the price parser. Other cells
// yield their paragraph text with spans and spacing preserved.
func cellValue(c *ods.Cell, buf *bytes.Buffer) string {
	switch c.ValueType {
	case "float", "currency", "percentage":
		if c.Value != "" {
			return c.Value
		}
	}
	if c.IsEmpty() {
		return ""
	}
	return c.PlainText(buf)
}

// repeatCount maps an absent or invalid repeat attribute to 1.
func repeatCount(n int) int {
	return max(n, 1)
}
