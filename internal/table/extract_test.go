package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"spcuadros/internal/config"
	"spcuadros/internal/models"
	"spcuadros/internal/normalizer"
)

func defaultOptions() Options {
	return OptionsFromConfig(config.Default().Extraction)
}

func extractString(e *Extractor, text string) (*models.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	return e.Extract(doc)
}

const cuadroHTML = `<html><body>
<h3>Cuadro N° 1: Cartera agregada</h3>
<table>
<tr><th rowspan="2">Tipo de instrumento</th><th colspan="2">Fondo A</th><th colspan="2">Fondo B</th></tr>
<tr><th>MMUS$</th><th>%Fondo</th><th>MMUS$</th><th>%Fondo</th></tr>
<tr><td>Renta Variable</td><td>1.234,56</td><td>45,2</td><td>800</td><td>30,1</td></tr>
<tr><td>Renta Fija</td><td>1.000</td><td>-</td><td>700</td><td>69,9</td></tr>
<tr><td></td><td></td><td></td><td></td><td></td></tr>
<tr><td>Total</td><td>2.234,56</td><td>100</td><td>1.500</td><td>100</td></tr>
</table>
<table><tr><td>second</td></tr></table>
</body></html>`

func TestExtract_TwoLevelHeader(t *testing.T) {
	n, err := normalizer.New(config.StrategyNode)
	if err != nil {
		t.Fatalf("normalizer.New failed: %v", err)
	}

	root, err := n.Parse(cuadroHTML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got, err := NewExtractor(defaultOptions()).ExtractNode(root)
	if err != nil {
		t.Fatalf("ExtractNode failed: %v", err)
	}

	want := [][]string{
		{"Tipo de instrumento", "Fondo A_MMUS$", "Fondo A_%Fondo", "Fondo B_MMUS$", "Fondo B_%Fondo"},
		{"Renta Variable", "1234.56", "45.2", "800", "30.1"},
		{"Renta Fija", "1000", "", "700", "69.9"},
	}

	if diff := cmp.Diff(want, got.Records()); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	if !got.Rows[1][2].IsMissing() {
		t.Errorf("Expected '-' to be coerced to missing, got %+v", got.Rows[1][2])
	}

	if got.NumRows() != 2 || got.NumCols() != 5 {
		t.Errorf("Expected 2x5 table, got %dx%d", got.NumRows(), got.NumCols())
	}
}

func TestExtract_SingleHeaderFallback(t *testing.T) {
	doc := `<table>
<tr><td>Instrumento</td><td>Monto</td><td>Unnamed: 2</td></tr>
<tr><td>Bonos</td><td>10.5</td><td></td></tr>
<tr><td>Acciones</td><td>abc</td><td></td></tr>
</table>`

	got, err := extractString(NewExtractor(defaultOptions()), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := [][]string{
		{"Instrumento", "Monto"},
		{"Bonos", "10.5"},
		{"Acciones", ""},
	}

	if diff := cmp.Diff(want, got.Records()); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_FirstColumnStaysText(t *testing.T) {
	doc := `<table><tr><th>Año</th><th>Valor</th></tr><tr><td>2024</td><td>7</td></tr></table>`

	got, err := extractString(NewExtractor(defaultOptions()), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got.Rows[0][0].Text != "2024" || got.Rows[0][1].Num != 7 {
		t.Errorf("Unexpected row %+v", got.Rows[0])
	}
}

func TestExtract_NestedTableIgnored(t *testing.T) {
	doc := `<table>
<tr><th>Nombre</th><th>Valor</th></tr>
<tr><td>Fondo C<table><tr><td>inner</td><td>99</td></tr></table></td><td>3</td></tr>
</table>`

	got, err := extractString(NewExtractor(defaultOptions()), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got.NumRows() != 1 || got.NumCols() != 2 {
		t.Fatalf("Expected 1x2 table, got %dx%d: %v", got.NumRows(), got.NumCols(), got.Records())
	}
}

func TestExtract_DuplicateAndMissingNames(t *testing.T) {
	doc := `<table>
<tr><th>Fondo</th><th>Monto</th><th>Monto</th><th></th></tr>
<tr><td>A</td><td>1</td><td>2</td><td>3</td></tr>
</table>`

	got, err := extractString(NewExtractor(defaultOptions()), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{"Fondo", "Monto", "Monto.1", "column_3"}
	if diff := cmp.Diff(want, got.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Errors(t *testing.T) {
	e := NewExtractor(defaultOptions())

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no table", "<p>nothing here</p>", ErrNoTable},
		{"header only", "<table><tr><th>A</th><th>B</th></tr></table>", ErrEmptyTable},
		{"only boilerplate", "<table><tr><th>A</th><th>B</th></tr><tr><td>Total</td><td>1</td></tr></table>", ErrEmptyTable},
		{"blank rows", "<table><tr><th>A</th></tr><tr><td> </td></tr></table>", ErrEmptyTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractString(e, tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
