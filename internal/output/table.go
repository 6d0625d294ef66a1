package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders aligned columns for the funnel and run-history views.
// Columns holding only numeric-looking cells (counts, spend, rates) are
// right-aligned so magnitudes line up under each other; text columns are
// left-aligned. Widths are measured in display cells, not bytes, so
// transition labels like "page → content" align correctly.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	numeric []bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	t := &Table{
		headers: headers,
		widths:  make([]int, len(headers)),
		numeric: make([]bool, len(headers)),
	}
	for i, h := range headers {
		t.widths[i] = lipgloss.Width(h)
		// Numeric until a textual cell proves otherwise.
		t.numeric[i] = true
	}
	return t
}

// AddRow adds one row. Missing cells render empty; extra cells are
// dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if w := lipgloss.Width(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
		if row[i] != "" && !numericCell(row[i]) {
			t.numeric[i] = false
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder

	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(t.alignCell(h, i)))
	}
	sb.WriteString("\n")

	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(t.alignCell(cell, i))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// alignCell pads a cell to its column width, right-aligned for numeric
// columns.
func (t *Table) alignCell(s string, col int) string {
	gap := t.widths[col] - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	pad := strings.Repeat(" ", gap)
	if t.numeric[col] {
		return pad + s
	}
	return s + pad
}

// numericCell reports whether a cell reads as a number the way this CLI
// formats them: digits plus currency, percent, multiplier, sign, and the
// em-dash placeholder for an absent value.
func numericCell(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune("$%x.,+-—", r):
		default:
			return false
		}
	}
	return true
}
