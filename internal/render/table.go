package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out the header line followed by rows, one space between
// columns. Columns in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}
	widths := columnWidths(all)
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, len(all))
	cells := make([]string, len(widths))
	for r, row := range all {
		for c, w := range widths {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			if rightAlign[c] {
				cells[c] = runewidth.FillLeft(cell, w)
			} else {
				cells[c] = runewidth.FillRight(cell, w)
			}
		}
		lines[r] = strings.Join(cells, " ")
	}
	return lines
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c == len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], displayWidth(cell))
		}
	}
	return widths
}

// displayWidth measures terminal cells, so wide and combining runes in site
// names keep columns aligned.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
