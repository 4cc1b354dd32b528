// Package render draws chart specifications as terminal text and PNG images.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/launchdash/internal/model"
)

// Options controls text rendering.
type Options struct {
	Width  int
	Height int
	// Color forces ANSI colour even when w is not a terminal. NO_COLOR wins.
	Color bool
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 4
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	hiddenNote          = "hidden by payload range"
)

// fillRunes tell pie slices apart when colour is off.
var fillRunes = []rune{'█', '▓', '▒', '░', '#', '=', '+', '*', ':', '.'}

// Chart writes spec to w as text.
func Chart(w io.Writer, spec model.ChartSpec, opts Options) error {
	useColor := shouldUseColor(w, opts.Color)
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	var lines []string
	switch spec.Kind {
	case model.ChartPie:
		lines = pieLines(spec, width, useColor)
	case model.ChartScatter:
		height := opts.Height
		if height <= 0 {
			height = defaultPlotHeight
		}
		lines = scatterLines(spec, PlotWidthFor(width), height, useColor)
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Text renders spec into a string.
func Text(spec model.ChartSpec, opts Options) string {
	var buf bytes.Buffer
	if err := Chart(&buf, spec, opts); err != nil {
		return err.Error()
	}
	return strings.TrimRight(buf.String(), "\n")
}

func pieLines(spec model.ChartSpec, width int, useColor bool) []string {
	if spec.IsPlaceholder() {
		return []string{spec.Message}
	}
	lines := []string{spec.Title}
	total := spec.SliceTotal()
	if total <= 0 {
		return append(lines, "no successful launches")
	}

	rows := make([][]string, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		rows = append(rows, []string{
			s.Label,
			fmt.Sprintf("%.0f", s.Value),
			fmt.Sprintf("%.2f%%", s.Value/total*100),
		})
	}
	table := formatTable([]string{"Label", "Count", "Share"}, rows, map[int]bool{1: true, 2: true})
	lines = append(lines, table[0])

	barWidth := width - displayWidth(table[0]) - 1
	if barWidth < minPlotWidth {
		barWidth = minPlotWidth
	}
	for i, s := range spec.Slices {
		n := int(math.Round(s.Value / total * float64(barWidth)))
		bar := paint(strings.Repeat(string(fillRune(i, useColor)), n), s.Color, useColor)
		lines = append(lines, table[i+1]+" "+bar)
	}
	lines = append(lines, "", stackedBar(spec.Slices, total, width, useColor))
	return lines
}

// stackedBar draws every slice as a segment of one full-width bar. The last
// segment takes the rounding remainder.
func stackedBar(slices []model.Slice, total float64, width int, useColor bool) string {
	if width < minPlotWidth {
		width = minPlotWidth
	}
	var b strings.Builder
	used := 0
	for i, s := range slices {
		n := int(math.Round(s.Value / total * float64(width)))
		if i == len(slices)-1 {
			n = width - used
		}
		if used+n > width {
			n = width - used
		}
		if n <= 0 {
			continue
		}
		used += n
		b.WriteString(paint(strings.Repeat(string(fillRune(i, useColor)), n), s.Color, useColor))
	}
	return b.String()
}

func fillRune(i int, useColor bool) rune {
	if useColor {
		return fillRunes[0]
	}
	return fillRunes[i%len(fillRunes)]
}

func scatterLines(spec model.ChartSpec, width, height int, useColor bool) []string {
	if spec.IsPlaceholder() {
		return []string{spec.Message}
	}

	xMin, xMax := spec.XAxis.Min, spec.XAxis.Max
	if math.Abs(xMax-xMin) < 1e-9 {
		xMin--
		xMax++
	}
	yMin, yMax := spec.YAxis.Min, spec.YAxis.Max
	if math.Abs(yMax-yMin) < 1e-9 {
		yMin--
		yMax++
	}

	seriesCells := make([][][]uint8, 0, len(spec.Series))
	hidden := 0
	for _, s := range spec.Series {
		cells := makeCells(height, width)
		for _, p := range s.Points {
			if spec.XAxis.Clamped && (p.X < spec.XAxis.Min || p.X > spec.XAxis.Max) {
				hidden++
				continue
			}
			px := valueToCol(p.X, xMin, xMax, width*2)
			py := valueToRow(p.Y, yMin, yMax, height*4)
			setBrailleDot(cells, px, py)
		}
		seriesCells = append(seriesCells, cells)
	}

	lines := []string{spec.Title, spec.YAxis.Title}
	axisLabels := makeAxisLabels(height, spec.YAxis)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, axisLabels[y], axisSeparator))
		for x := 0; x < width; x++ {
			mask, seriesIdx := composeCell(seriesCells, x, y)
			ch := string(brailleFromMask(mask))
			if seriesIdx >= 0 {
				ch = paint(ch, spec.Series[seriesIdx].Color, useColor)
			}
			row.WriteString(ch)
		}
		lines = append(lines, row.String())
	}

	indent := strings.Repeat(" ", axisLabelWidth+displayWidth(axisSeparator))
	lines = append(lines, indent+xTickLine(spec.XAxis.Min, spec.XAxis.Max, width))
	lines = append(lines, indent+spec.XAxis.Title)
	lines = append(lines, renderLegend(spec.Series, useColor))
	if hidden > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d", hiddenNote, hidden))
	}
	return lines
}

func xTickLine(minVal, maxVal float64, width int) string {
	left := fmt.Sprintf("%.0f", minVal)
	right := fmt.Sprintf("%.0f", maxVal)
	gap := width - displayWidth(left) - displayWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func makeAxisLabels(height int, axis model.Axis) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = fmt.Sprintf("%g", axis.Max)
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%g", axis.Min)
	}
	return labels
}

func renderLegend(series []model.Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for _, s := range series {
		label := fmt.Sprintf("%c %s (%d)", marker, s.Name, len(s.Points))
		parts = append(parts, paint(label, s.Color, useColor))
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := axisLabelWidth + runewidth.StringWidth(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// paint wraps text in a truecolor escape for the hex colour. Unparsable
// colours leave the text plain.
func paint(text, hex string, useColor bool) string {
	if !useColor || text == "" || hex == "" {
		return text
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return text
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", r, g, b, text, colorReset)
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range seriesCells {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func valueToCol(v, minVal, maxVal float64, width int) int {
	if width <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	col := int(math.Round(pos * float64(width-1)))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
