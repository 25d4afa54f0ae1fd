// Package htmldoc reads the tables of an HTML document into rectangular
// text grids and compares two documents for structural equivalence. It is
// the independent comparison path for tables rasterized to HTML by an
// external office-suite converter.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoTables is returned when a document contains no parseable tables.
var ErrNoTables = errors.New("no parseable tables in document")

// Table is one HTML table expanded to a rectangular text grid. The first
// document row provides the column names; horizontal and vertical spans are
// expanded by repeating the spanning cell's text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTables parses every table in an HTML file, in document order.
func ReadTables(filename string) ([]*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	tables, err := ParseTables(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return tables, nil
}

// ParseTables parses every table from HTML content, in document order.
func ParseTables(r io.Reader) ([]*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []*Table
	collectTables(doc, &tables)
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}

// collectTables walks the DOM appending every parsed table element.
func collectTables(n *html.Node, tables *[]*Table) {
	if n.Type == html.ElementNode && n.Data == "table" {
		if t := parseTable(n); t != nil {
			*tables = append(*tables, t)
		}
		return // nested tables count as their parent's text
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, tables)
	}
}

// spanCell is one cell before grid expansion.
type spanCell struct {
	text    string
	rowSpan int
	colSpan int
}

// parseTable expands a table element into a grid. The first grid row is
// taken as the header; remaining rows are padded or truncated to its width.
func parseTable(tableNode *html.Node) *Table {
	var rows [][]spanCell
	collectRows(tableNode, &rows)
	if len(rows) == 0 {
		return nil
	}

	grid := expandGrid(rows)
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil
	}

	t := &Table{Columns: grid[0]}
	width := len(t.Columns)
	for _, row := range grid[1:] {
		fitted := make([]string, width)
		copy(fitted, row)
		t.Rows = append(t.Rows, fitted)
	}
	return t
}

// collectRows gathers tr elements from the table and its thead/tbody/tfoot
// sections in document order.
func collectRows(n *html.Node, rows *[][]spanCell) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			collectRows(c, rows)
		case "tr":
			row := parseRowCells(c)
			if len(row) > 0 {
				*rows = append(*rows, row)
			}
		}
	}
}

// parseRowCells parses the td/th children of one tr element.
func parseRowCells(tr *html.Node) []spanCell {
	var row []spanCell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := spanCell{text: textContent(c), rowSpan: 1, colSpan: 1}
		for _, attr := range c.Attr {
			switch attr.Key {
			case "rowspan":
				fmt.Sscanf(attr.Val, "%d", &cell.rowSpan)
			case "colspan":
				fmt.Sscanf(attr.Val, "%d", &cell.colSpan)
			}
		}
		if cell.rowSpan < 1 {
			cell.rowSpan = 1
		}
		if cell.colSpan < 1 {
			cell.colSpan = 1
		}
		row = append(row, cell)
	}
	return row
}

// rowCarry tracks a vertical span claiming positions in following rows.
type rowCarry struct {
	text      string
	remaining int
}

// expandGrid spreads row and column spans so every grid row has the same
// width, repeating the spanning cell's text across the covered positions.
func expandGrid(rows [][]spanCell) [][]string {
	var pending []rowCarry

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		var out []string
		fillCarried := func() {
			for len(out) < len(pending) && pending[len(out)].remaining > 0 {
				p := &pending[len(out)]
				p.remaining--
				out = append(out, p.text)
			}
		}

		for _, cell := range row {
			for s := 0; s < cell.colSpan; s++ {
				fillCarried()
				pos := len(out)
				out = append(out, cell.text)
				if cell.rowSpan > 1 {
					for len(pending) <= pos {
						pending = append(pending, rowCarry{})
					}
					pending[pos] = rowCarry{text: cell.text, remaining: cell.rowSpan - 1}
				}
			}
		}
		fillCarried()
		grid = append(grid, out)
	}
	return grid
}

// textContent extracts the trimmed text of a node and its descendants,
// treating <br> as a space.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
