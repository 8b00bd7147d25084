package output

import (
	"strings"
	"unicode/utf8"
)

// Table renders tabular output in a tabulate-compatible ASCII format.
// Numeric columns can be right-aligned, which matters for price and score
// columns where the decimal points should line up.
type Table struct {
	headers    []string
	rows       [][]string
	widths     []int
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	t := &Table{
		headers:    headers,
		widths:     make([]int, len(headers)),
		rightAlign: make(map[int]bool),
	}
	for i, h := range headers {
		t.widths[i] = displayWidth(h)
	}
	return t
}

// AlignRight marks the given column indexes as right-aligned.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.headers) {
			t.rightAlign[c] = true
		}
	}
	return t
}

// AddRow adds a row to the table. Missing cells render empty; surplus cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
	for i, cell := range row {
		if w := displayWidth(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// Render returns the table with a separator after every row.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(t.separator("-"))
	sb.WriteString("\n")
	sb.WriteString(t.renderRow(t.headers))
	sb.WriteString("\n")
	sb.WriteString(t.separator("="))
	sb.WriteString("\n")
	for _, row := range t.rows {
		sb.WriteString(t.renderRow(row))
		sb.WriteString("\n")
		sb.WriteString(t.separator("-"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderCompact returns the table with borders only around the header and
// the bottom edge.
func (t *Table) RenderCompact() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(t.separator("-"))
	sb.WriteString("\n")
	sb.WriteString(t.renderRow(t.headers))
	sb.WriteString("\n")
	sb.WriteString(t.separator("="))
	sb.WriteString("\n")
	for _, row := range t.rows {
		sb.WriteString(t.renderRow(row))
		sb.WriteString("\n")
	}
	sb.WriteString(t.separator("-"))
	sb.WriteString("\n")
	return sb.String()
}

// separator creates a line like +-----+-----+
func (t *Table) separator(fill string) string {
	parts := make([]string, 0, len(t.widths))
	for _, w := range t.widths {
		parts = append(parts, strings.Repeat(fill, w+2))
	}
	return "+" + strings.Join(parts, "+") + "+"
}

// renderRow creates a line like | val | val |
func (t *Table) renderRow(cells []string) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		var padded string
		if t.rightAlign[i] {
			padded = padLeftWidth(cell, t.widths[i])
		} else {
			padded = padRightWidth(cell, t.widths[i])
		}
		parts = append(parts, " "+padded+" ")
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// displayWidth returns the display width of a string, ignoring ANSI escape
// codes.
func displayWidth(s string) int {
	return utf8.RuneCountInString(stripANSI(s))
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// padRightWidth pads to display width, ANSI-aware.
func padRightWidth(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeftWidth pads to display width, ANSI-aware.
func padLeftWidth(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// TruncateCell truncates text for a table cell.
func TruncateCell(text string, maxWidth int) string {
	stripped := stripANSI(text)
	if utf8.RuneCountInString(stripped) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return stripped[:maxWidth]
	}
	runes := []rune(stripped)
	return string(runes[:maxWidth-3]) + "..."
}
