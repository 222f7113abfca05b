package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Table reads an HTML table with a thead and a tbody
type Table struct {
	loc playwright.Locator
}

// NewTable creates a Table over the element matched by loc
func NewTable(loc playwright.Locator) *Table {
	return &Table{loc: loc}
}

// Read snapshots the table's header and body text
func (t *Table) Read() (Grid, error) {
	headers, err := t.loc.Locator("thead th").AllTextContents()
	if err != nil {
		return Grid{}, fmt.Errorf("read table headers: %w", err)
	}

	rows := t.loc.Locator("tbody tr")
	count, err := rows.Count()
	if err != nil {
		return Grid{}, fmt.Errorf("count table rows: %w", err)
	}

	grid := Grid{Headers: trimAll(headers)}
	for i := 0; i < count; i++ {
		cells, err := rows.Nth(i).Locator("td").AllTextContents()
		if err != nil {
			return Grid{}, fmt.Errorf("read table row %d: %w", i, err)
		}
		grid.Rows = append(grid.Rows, trimAll(cells))
	}
	return grid, nil
}

// RowCount counts the body rows without reading them
func (t *Table) RowCount() (int, error) {
	return t.loc.Locator("tbody tr").Count()
}

// Grid is the text of a table, cells trimmed
type Grid struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of header, or -1
func (g Grid) Column(header string) int {
	for i, h := range g.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// ColumnValues returns every value under header
func (g Grid) ColumnValues(header string) ([]string, error) {
	col := g.Column(header)
	if col == -1 {
		return nil, fmt.Errorf("column %q not found", header)
	}
	values := make([]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values, nil
}

// RowIndex returns the index of the first row holding a cell equal to text, or -1
func (g Grid) RowIndex(text string) int {
	for i, row := range g.Rows {
		for _, cell := range row {
			if cell == text {
				return i
			}
		}
	}
	return -1
}

// RowContaining returns the first row with a cell containing text
func (g Grid) RowContaining(text string) ([]string, error) {
	for _, row := range g.Rows {
		for _, cell := range row {
			if strings.Contains(cell, text) {
				return row, nil
			}
		}
	}
	return nil, fmt.Errorf("no row contains %q", text)
}

// RowMap returns the first row holding text keyed by header.
// With partial set a cell only has to contain text.
func (g Grid) RowMap(text string, partial bool) (map[string]string, error) {
	for _, row := range g.Rows {
		for _, cell := range row {
			if cell == text || (partial && strings.Contains(cell, text)) {
				return g.keyed(row), nil
			}
		}
	}
	return nil, fmt.Errorf("no row matches %q", text)
}

// Cell returns the value in column columnHeader of the row whose rowHeader column equals rowValue
func (g Grid) Cell(rowHeader, rowValue, columnHeader string) (string, error) {
	key := g.Column(rowHeader)
	if key == -1 {
		return "", fmt.Errorf("column %q not found", rowHeader)
	}
	col := g.Column(columnHeader)
	if col == -1 {
		return "", fmt.Errorf("column %q not found", columnHeader)
	}
	for _, row := range g.Rows {
		if key < len(row) && row[key] == rowValue {
			if col >= len(row) {
				return "", nil
			}
			return row[col], nil
		}
	}
	return "", fmt.Errorf("row with %s %q not found", rowHeader, rowValue)
}

func (g Grid) keyed(row []string) map[string]string {
	m := make(map[string]string, len(g.Headers))
	for i, h := range g.Headers {
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
