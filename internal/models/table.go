package models

import (
	"math"
	"strconv"
)

// CellKind distinguishes typed cells.
type CellKind int

// Cell kinds.
const (
	CellText CellKind = iota
	CellNumber
	CellMissing
)

// Cell is one value of a Table.
type Cell struct {
	Text string
	Num  float64
	Kind CellKind
}

// TextCell builds an untyped cell.
func TextCell(s string) Cell {
	return Cell{Text: s, Kind: CellText}
}

// NumberCell builds a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Num: v, Kind: CellNumber}
}

// MissingCell builds a missing-value marker.
func MissingCell() Cell {
	return Cell{Num: math.NaN(), Kind: CellMissing}
}

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// String renders the cell the way it is written to CSV. Missing values render empty.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellMissing:
		return ""
	default:
		return c.Text
	}
}

// Table is a Normalized Table. Column 0 is the row-label column and is always text.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0 || len(t.Columns) == 0
}

// Records returns the header plus all rows as strings.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))

	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.String()
		}

		out = append(out, rec)
	}

	return out
}
