// Package output provides formatting and display utilities for the vendor
// pricing dashboard.
package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/winbio/vendorscore/internal/score"
)

// ANSI color codes
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Blue      = "\033[34m"
	Magenta   = "\033[35m"
	Cyan      = "\033[36m"
	White     = "\033[37m"
	BoldRed   = "\033[1;31m"
	BoldGreen = "\033[1;32m"
)

var useColor = true

// DisableColor disables colored output.
func DisableColor() {
	useColor = false
}

// EnableColor enables colored output.
func EnableColor() {
	useColor = true
}

// IsColorEnabled returns whether color output is enabled.
func IsColorEnabled() bool {
	return useColor && isTerminal()
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Color applies a color to text if color is enabled.
func Color(text, color string) string {
	if !IsColorEnabled() {
		return text
	}
	return color + text + Reset
}

// RankColor returns the color for a rank; the top three stand out, unranked
// rows are dimmed.
func RankColor(rank int) string {
	switch rank {
	case 1:
		return BoldGreen
	case 2, 3:
		return Green
	case 0:
		return Dim
	default:
		return White
	}
}

// FormatAmount renders an optional amount with the given number of decimal
// places; absent values render as a dash.
func FormatAmount(a score.Amount, decimals int) string {
	if !a.Valid {
		return "—"
	}
	return strconv.FormatFloat(a.Value, 'f', decimals, 64)
}

// FormatMoney renders an optional amount as a dollar figure.
func FormatMoney(a score.Amount) string {
	if !a.Valid {
		return "—"
	}
	return fmt.Sprintf("$%.2f", a.Value)
}

// FormatTermDays renders an optional day count; absent means no payment term
// applies.
func FormatTermDays(td score.TermDays) string {
	if !td.Valid {
		return "—"
	}
	return strconv.Itoa(td.Days)
}

// FormatRank renders a rank with its badge, or a dash for unranked rows.
func FormatRank(rank int, badge string) string {
	if rank == 0 {
		return "—"
	}
	if badge == "" {
		return strconv.Itoa(rank)
	}
	return fmt.Sprintf("%d %s", rank, badge)
}

// Header creates a formatted header line.
func Header(text string, width int) string {
	padding := (width - displayWidth(text) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	line := strings.Repeat("=", padding) + " " + text + " " + strings.Repeat("=", padding)
	for displayWidth(line) < width {
		line += "="
	}
	return Color(line, Bold)
}

// SubHeader creates a formatted subheader line.
func SubHeader(text string, width int) string {
	padding := (width - displayWidth(text) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	line := strings.Repeat("-", padding) + " " + text + " " + strings.Repeat("-", padding)
	for displayWidth(line) < width {
		line += "-"
	}
	return Color(line, Dim)
}

// Truncate truncates text to a maximum width with ellipsis.
func Truncate(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return text[:maxWidth]
	}
	return text[:maxWidth-3] + "..."
}

// PadRight pads text to a minimum width.
func PadRight(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}

// PadLeft pads text to a minimum width.
func PadLeft(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", width-len(text)) + text
}
