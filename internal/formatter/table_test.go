package formatter

import (
	"strings"
	"testing"

	"spcuadros/internal/models"
)

func TestRenderTable(t *testing.T) {
	tbl := &models.Table{
		Columns: []string{"Tipo", "Fondo A"},
		Rows: [][]models.Cell{
			{models.TextCell("Bonos"), models.NumberCell(10.5)},
			{models.TextCell("Acciones"), models.MissingCell()},
		},
	}

	expected := strings.Join([]string{
		"| Tipo     | Fondo A |",
		"| -------- | ------: |",
		"| Bonos    |    10.5 |",
		"| Acciones |         |",
		"",
	}, "\n")

	if got := RenderTable(tbl, 0); got != expected {
		t.Errorf("RenderTable mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestRenderTable_WideRunes(t *testing.T) {
	tbl := &models.Table{
		Columns: []string{"名前", "x"},
		Rows:    [][]models.Cell{{models.TextCell("a|b"), models.TextCell("y")}},
	}

	expected := strings.Join([]string{
		"| 名前 | x   |",
		"| ---- | --- |",
		"| a\\|b | y   |",
		"",
	}, "\n")

	if got := RenderTable(tbl, 0); got != expected {
		t.Errorf("RenderTable mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestRenderTable_Truncated(t *testing.T) {
	tbl := &models.Table{Columns: []string{"a"}}
	for i := 0; i < 5; i++ {
		tbl.Rows = append(tbl.Rows, []models.Cell{models.TextCell("r")})
	}

	got := RenderTable(tbl, 2)

	if !strings.HasSuffix(got, "... 3 more rows\n") {
		t.Errorf("Expected truncation note, got:\n%s", got)
	}

	if strings.Count(got, "| r ") != 2 {
		t.Errorf("Expected 2 rendered rows, got:\n%s", got)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(&models.Table{}, 10); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}
