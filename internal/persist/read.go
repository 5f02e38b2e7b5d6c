package persist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"spcuadros/internal/models"
	"spcuadros/internal/table"
)

// ErrNoHeader is returned for a CSV without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// ReadTable loads a normalized table written by WriteTable. A leading BOM is
// optional. Column 0 is read as text and the rest as numbers.
func ReadTable(path string) (*models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return DecodeCSV(bytes.NewReader(bytes.TrimPrefix(data, bom)))
}

// DecodeCSV parses CSV from r into a table.
func DecodeCSV(r io.Reader) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	t := &models.Table{Columns: records[0]}

	for _, rec := range records[1:] {
		row := make([]models.Cell, len(t.Columns))

		for c := range row {
			v := ""
			if c < len(rec) {
				v = rec[c]
			}

			if c == 0 {
				row[c] = models.TextCell(v)
			} else {
				row[c] = table.ParseNumber(v)
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
