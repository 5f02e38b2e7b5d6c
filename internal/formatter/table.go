// Package formatter renders normalized tables as aligned markdown for previews.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"spcuadros/internal/models"
)

// minWidth keeps separator cells at least "---".
const minWidth = 3

// RenderTable renders t as a markdown table padded by display width. Numeric
// columns are right-aligned. maxRows <= 0 renders every row; otherwise a
// trailing line reports how many rows were left out.
func RenderTable(t *models.Table, maxRows int) string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}

	rows := t.Rows
	hidden := 0

	if maxRows > 0 && len(rows) > maxRows {
		hidden = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	colCount := len(t.Columns)
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, escapeAll(t.Columns))

	for _, row := range rows {
		rec := make([]string, colCount)
		for i := 0; i < colCount && i < len(row); i++ {
			rec[i] = escape(row[i].String())
		}

		cells = append(cells, rec)
	}

	widths := make([]int, colCount)
	for _, rec := range cells {
		for i, c := range rec {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i := range widths {
		if widths[i] < minWidth {
			widths[i] = minWidth
		}
	}

	numeric := numericColumns(t)

	var sb strings.Builder

	for r, rec := range cells {
		writeRow(&sb, rec, widths, numeric, r > 0)

		if r == 0 {
			writeSeparator(&sb, widths, numeric)
		}
	}

	if hidden > 0 {
		fmt.Fprintf(&sb, "... %d more rows\n", hidden)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, rec []string, widths []int, numeric []bool, body bool) {
	sb.WriteString("|")

	for j, content := range rec {
		sb.WriteString(" ")

		padding := strings.Repeat(" ", widths[j]-runewidth.StringWidth(content))
		if body && numeric[j] {
			sb.WriteString(padding)
			sb.WriteString(content)
		} else {
			sb.WriteString(content)
			sb.WriteString(padding)
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, widths []int, numeric []bool) {
	sb.WriteString("|")

	for j, w := range widths {
		sb.WriteString(" ")

		if numeric[j] {
			sb.WriteString(strings.Repeat("-", w-1))
			sb.WriteString(":")
		} else {
			sb.WriteString(strings.Repeat("-", w))
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

// numericColumns marks columns where every present value is a number.
func numericColumns(t *models.Table) []bool {
	out := make([]bool, len(t.Columns))

	for j := 1; j < len(t.Columns); j++ {
		seen := false
		ok := true

		for _, row := range t.Rows {
			if j >= len(row) || row[j].IsMissing() {
				continue
			}
			if row[j].Kind != models.CellNumber {
				ok = false
				break
			}
			seen = true
		}

		out[j] = ok && seen
	}

	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = escape(s)
	}

	return out
}
