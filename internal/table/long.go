package table

import (
	"strings"

	"spcuadros/internal/models"
)

// LongColumns is the header of a table produced by ToLong.
var LongColumns = []string{"periodo", "variable", "serie", "medida", "valor"}

// measures maps a trailing header fragment to its unit name.
var measures = map[string]string{
	"mmus$":  "mmusd",
	"mmusd":  "mmusd",
	"%fondo": "pct",
	"pct":    "pct",
}

// SplitMeasure separates a unit suffix from a flattened column name, so
// "Fondo A_MMUS$" becomes ("Fondo A", "mmusd"). Names without a known unit
// come back whole with an empty measure.
func SplitMeasure(column, sep string) (string, string) {
	if sep == "" {
		sep = "_"
	}

	i := strings.LastIndex(column, sep)
	if i < 0 {
		return column, ""
	}

	unit, ok := measures[strings.ToLower(strings.TrimSpace(column[i+len(sep):]))]
	if !ok {
		return column, ""
	}

	return column[:i], unit
}

// ToLong melts t into one row per non-missing value: the first column becomes
// "variable" and every other column name becomes "serie" (plus "medida" when
// it carries a unit suffix).
func ToLong(t *models.Table, period, sep string) *models.Table {
	out := &models.Table{Columns: append([]string(nil), LongColumns...)}
	if t.IsEmpty() {
		return out
	}

	for _, row := range t.Rows {
		variable := row[0].String()

		for c := 1; c < len(row) && c < len(t.Columns); c++ {
			if row[c].IsMissing() {
				continue
			}

			serie, medida := SplitMeasure(t.Columns[c], sep)
			out.Rows = append(out.Rows, []models.Cell{
				models.TextCell(period),
				models.TextCell(variable),
				models.TextCell(serie),
				models.TextCell(medida),
				row[c],
			})
		}
	}

	return out
}
