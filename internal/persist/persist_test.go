package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"spcuadros/internal/models"
)

func sampleTable() *models.Table {
	return &models.Table{
		Columns: []string{"Tipo de instrumento", "Fondo A_MMUS$"},
		Rows: [][]models.Cell{
			{models.TextCell("Renta Variable, nacional"), models.NumberCell(1234.56)},
			{models.TextCell("Inversión"), models.MissingCell()},
		},
	}
}

func TestWriteTable_Format(t *testing.T) {
	dir := t.TempDir()
	p := New(filepath.Join(dir, "html"), filepath.Join(dir, "csv"), Options{})

	path, err := p.WriteTable("cuadro_01", sampleTable())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "csv", "cuadro_01.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, bom))
	require.Equal(t,
		"Tipo de instrumento,Fondo A_MMUS$\n\"Renta Variable, nacional\",1234.56\nInversión,\n",
		string(data[len(bom):]),
	)
}

func TestWriteRaw_Verbatim(t *testing.T) {
	dir := t.TempDir()
	p := New(filepath.Join(dir, "html"), filepath.Join(dir, "csv"), Options{RawExt: "htm"})

	text := "<h3>Año</h3><table><tr><td>1.234,5</td></tr></table>"
	path, err := p.WriteRaw("cuadro_01", text)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "html", "cuadro_01.htm"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, text, string(data))
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()
	p := New(filepath.Join(dir, "html"), filepath.Join(dir, "csv"), Options{})

	read := func() (string, string) {
		raw, err := os.ReadFile(p.RawPath("x"))
		require.NoError(t, err)
		csv, err := os.ReadFile(p.CSVPath("x"))
		require.NoError(t, err)
		return string(raw), string(csv)
	}

	for i := 0; i < 2; i++ {
		_, err := p.WriteRaw("x", "<table><tr><td>a</td></tr></table>")
		require.NoError(t, err)
		_, err = p.WriteTable("x", sampleTable())
		require.NoError(t, err)
	}

	raw1, csv1 := read()

	_, err := p.WriteRaw("x", "<table><tr><td>a</td></tr></table>")
	require.NoError(t, err)
	_, err = p.WriteTable("x", sampleTable())
	require.NoError(t, err)

	raw2, csv2 := read()
	require.Equal(t, raw1, raw2)
	require.Equal(t, csv1, csv2)
}

func TestWriteRaw_FilesystemError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	p := New(filepath.Join(blocker, "html"), filepath.Join(dir, "csv"), Options{})

	_, err := p.WriteRaw("x", "data")
	require.Error(t, err)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	p := New(dir, dir, Options{})

	for range 3 {
		_, err := p.WriteTable("cuadro_01", sampleTable())
		require.NoError(t, err)
		_, err = p.WriteRaw("cuadro_01", "<html></html>")
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{"cuadro_01.csv", "cuadro_01.html"}, names)

	info, err := os.Stat(filepath.Join(dir, "cuadro_01.csv"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestRemoveTable(t *testing.T) {
	dir := t.TempDir()
	p := New(dir, dir, Options{})

	path, err := p.WriteTable("cuadro_01", sampleTable())
	require.NoError(t, err)

	require.NoError(t, p.RemoveTable("cuadro_01"))
	require.NoFileExists(t, path)

	require.NoError(t, p.RemoveTable("cuadro_01"), "removing a missing table is not an error")
}

func TestReadTable_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := New(dir, dir, Options{})

	path, err := p.WriteTable("t", sampleTable())
	require.NoError(t, err)

	got, err := ReadTable(path)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(sampleTable().Records(), got.Records()), "ReadTable mismatch (-want +got)")

	require.True(t, got.Rows[1][1].IsMissing())
}

func TestReadTable_WithoutBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nx,2\n"), 0644))

	got, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got.Columns)
	require.Equal(t, 2.0, got.Rows[0][1].Num)
}
