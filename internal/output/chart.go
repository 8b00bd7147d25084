package output

import (
	"fmt"
	"strings"

	"github.com/winbio/vendorscore/internal/score"
)

// BarChart renders a horizontal bar chart of one numeric metric per vendor,
// the terminal stand-in for the dashboard's price and score comparison
// charts. Bars are scaled to the largest value; absent values render as an
// empty bar with a dash.
type BarChart struct {
	labels []string
	values []score.Amount
	colors []string
}

// NewBarChart creates an empty chart.
func NewBarChart() *BarChart {
	return &BarChart{}
}

// Add appends one labeled bar. The color applies to the bar only.
func (c *BarChart) Add(label string, value score.Amount, color string) {
	c.labels = append(c.labels, label)
	c.values = append(c.values, value)
	c.colors = append(c.colors, color)
}

// Render draws the chart. barWidth is the width of the longest bar in cells.
func (c *BarChart) Render(barWidth int) string {
	if len(c.labels) == 0 {
		return ""
	}
	if barWidth < 1 {
		barWidth = 1
	}

	labelWidth := 0
	max := 0.0
	for i, l := range c.labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
		if c.values[i].Valid && c.values[i].Value > max {
			max = c.values[i].Value
		}
	}

	var sb strings.Builder
	for i, l := range c.labels {
		sb.WriteString(PadRight(l, labelWidth))
		sb.WriteString("  ")

		v := c.values[i]
		if !v.Valid {
			sb.WriteString(Color("—", Dim))
			sb.WriteString("\n")
			continue
		}

		filled := barWidth
		if max > 0 {
			filled = int(v.Value / max * float64(barWidth))
		}
		if filled < 1 {
			// A present value always gets a visible bar.
			filled = 1
		}

		bar := strings.Repeat("█", filled)
		sb.WriteString(Color(bar, c.colors[i]))
		sb.WriteString(fmt.Sprintf(" %g", v.Value))
		sb.WriteString("\n")
	}

	return sb.String()
}
