package table

import (
	"math"
	"strconv"
	"strings"

	"spcuadros/internal/config"
	"spcuadros/internal/models"
)

// Boilerplate drops presentation rows (totals, notes, sources) by their label.
type Boilerplate struct {
	keywords []string
	exact    bool
}

// NewBoilerplate creates a filter. match is config.MatchSubstring (the default)
// or config.MatchExact. Keywords are compared case-insensitively.
func NewBoilerplate(keywords []string, match string) *Boilerplate {
	b := &Boilerplate{exact: match == config.MatchExact}

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if b.exact {
			k = strings.TrimSuffix(k, ":")
		}
		if k != "" {
			b.keywords = append(b.keywords, k)
		}
	}

	return b
}

// Matches reports whether a first-column label is boilerplate.
//
// With substring matching "Total Return Swap" matches "total"; exact matching
// compares the whole trimmed label, ignoring a trailing colon.
func (b *Boilerplate) Matches(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}

	if b.exact {
		label = strings.TrimSpace(strings.TrimSuffix(label, ":"))
	}

	for _, k := range b.keywords {
		if b.exact && label == k {
			return true
		}
		if !b.exact && strings.Contains(label, k) {
			return true
		}
	}

	return false
}

// Filter returns the rows whose first cell is not boilerplate.
func (b *Boilerplate) Filter(rows [][]string) [][]string {
	out := rows[:0:0]

	for _, row := range rows {
		if len(row) > 0 && b.Matches(row[0]) {
			continue
		}
		out = append(out, row)
	}

	return out
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]

	for _, row := range rows {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				out = append(out, row)
				break
			}
		}
	}

	return out
}

// dropEmptyColumns removes columns whose data cells are all empty.
func dropEmptyColumns(columns []string, rows [][]string) ([]string, [][]string) {
	keep := make([]int, 0, len(columns))

	for c := range columns {
		for _, row := range rows {
			if c < len(row) && strings.TrimSpace(row[c]) != "" {
				keep = append(keep, c)
				break
			}
		}
	}

	if len(keep) == len(columns) {
		return columns, rows
	}

	cols := make([]string, len(keep))
	for i, c := range keep {
		cols[i] = columns[c]
	}

	out := make([][]string, len(rows))
	for r, row := range rows {
		rec := make([]string, len(keep))
		for i, c := range keep {
			rec[i] = row[c]
		}
		out[r] = rec
	}

	return cols, out
}

// typeRows keeps column 0 as text and converts the rest, coercing anything
// unparseable to a missing value.
func typeRows(rows [][]string) [][]models.Cell {
	out := make([][]models.Cell, len(rows))

	for r, row := range rows {
		cells := make([]models.Cell, len(row))

		for c, v := range row {
			if c == 0 {
				cells[c] = models.TextCell(v)
				continue
			}
			cells[c] = ParseNumber(v)
		}

		out[r] = cells
	}

	return out
}

// ParseNumber converts an already normalized value ("1234.56") into a cell.
func ParseNumber(v string) models.Cell {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.MissingCell()
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return models.MissingCell()
	}

	return models.NumberCell(f)
}
