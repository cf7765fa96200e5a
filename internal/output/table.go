package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders a simple table with column alignment.
// Headers are rendered in Bold style. Column widths are auto-calculated from
// display width, so wide runes in filenames stay aligned.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := calcColumnWidths(headers, rows)
	p.printTableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.printTableRow(row, widths, lipgloss.NewStyle())
	}
}

// calcColumnWidths computes the max width for each column.
func calcColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// printTableRow renders one row, padding every cell but the last.
func (p *Printer) printTableRow(row []string, widths []int, style lipgloss.Style) {
	var b strings.Builder
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(row)-1 || i == len(widths)-1 {
			b.WriteString(style.Render(cell))
			continue
		}
		b.WriteString(style.Render(padRight(cell, widths[i])))
	}
	mustWrite(fmt.Fprintln(p.w, b.String()))
}

// padRight pads a string with spaces to reach the target display width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
