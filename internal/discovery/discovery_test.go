package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"spcuadros/internal/models"
)

func TestListSource(t *testing.T) {
	list := `
# periodo 202501
https://www.spensiones.cl/cuadro?id=1

  https://www.spensiones.cl/cuadro?id=2
# fin
http://example.com/3
`

	got, err := NewListSource(strings.NewReader(list)).Refs(context.Background())
	require.NoError(t, err)

	want := []models.ResourceRef{
		{URL: "https://www.spensiones.cl/cuadro?id=1", Index: 1},
		{URL: "https://www.spensiones.cl/cuadro?id=2", Index: 2},
		{URL: "http://example.com/3", Index: 3},
	}

	require.Empty(t, cmp.Diff(want, got), "Refs mismatch (-want +got)")
}

func TestListSource_InvalidURL(t *testing.T) {
	_, err := NewListSource(strings.NewReader("https://ok.cl/a\nnot a url\n")).Refs(context.Background())
	require.ErrorIs(t, err, ErrInvalidURL)
	require.Contains(t, err.Error(), "line 2")
}

func TestListSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewListSource(strings.NewReader("https://ok.cl/a\n")).Refs(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://a.cl/1\nhttps://a.cl/2\n"), 0644))

	refs, err := FromFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	require.Equal(t, 2, refs[1].Index)

	_, err = FromFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestStaticSource(t *testing.T) {
	var src Source = StaticSource{"https://a.cl/1", "", "https://a.cl/2"}

	refs, err := src.Refs(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
}
