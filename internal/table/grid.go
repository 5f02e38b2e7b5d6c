package table

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSpan bounds colspan/rowspan values taken from the page.
const maxSpan = 1000

type slot struct {
	text   string
	header bool
	filled bool
}

// grid is a table with every colspan/rowspan expanded, so each row has width slots.
type grid struct {
	rows  [][]slot
	width int
}

// buildGrid expands the rows that belong directly to table (not to nested tables).
func buildGrid(table *goquery.Selection) *grid {
	trs := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})

	g := &grid{rows: make([][]slot, trs.Length())}

	trs.Each(func(r int, tr *goquery.Selection) {
		inHead := tr.ParentFiltered("thead").Length() > 0
		col := 0

		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			for col < len(g.rows[r]) && g.rows[r][col].filled {
				col++
			}

			s := slot{
				text:   cellText(cell),
				header: inHead || goquery.NodeName(cell) == "th",
				filled: true,
			}

			rowspan := span(cell, "rowspan")
			colspan := span(cell, "colspan")

			for dr := 0; dr < rowspan && r+dr < len(g.rows); dr++ {
				for dc := 0; dc < colspan; dc++ {
					g.set(r+dr, col+dc, s)
				}
			}

			col += colspan
		})
	})

	for r := range g.rows {
		for len(g.rows[r]) < g.width {
			g.rows[r] = append(g.rows[r], slot{})
		}
	}

	return g
}

func (g *grid) set(r, c int, s slot) {
	for len(g.rows[r]) <= c {
		g.rows[r] = append(g.rows[r], slot{})
	}

	g.rows[r][c] = s

	if c+1 > g.width {
		g.width = c + 1
	}
}

// headerRows counts the leading rows made only of header cells. With none,
// the first row is the header.
func (g *grid) headerRows() int {
	n := 0

	for _, row := range g.rows {
		if !isHeaderRow(row) {
			break
		}
		n++
	}

	if n == 0 {
		return 1
	}

	// keep at least one data row when every row is marked as header
	if n == len(g.rows) && n > 1 {
		return n - 1
	}

	return n
}

func isHeaderRow(row []slot) bool {
	seen := false

	for _, s := range row {
		if !s.filled {
			continue
		}
		if !s.header {
			return false
		}
		seen = true
	}

	return seen
}

// texts returns the cell texts from row start on.
func (g *grid) texts(start int) [][]string {
	if start >= len(g.rows) {
		return nil
	}

	out := make([][]string, 0, len(g.rows)-start)

	for _, row := range g.rows[start:] {
		rec := make([]string, g.width)
		for i, s := range row {
			rec[i] = s.text
		}

		out = append(out, rec)
	}

	return out
}

func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}

func span(cell *goquery.Selection, attr string) int {
	v, ok := cell.Attr(attr)
	if !ok {
		return 1
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}

	if n > maxSpan {
		return maxSpan
	}

	return n
}
