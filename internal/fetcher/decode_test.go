package fetcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecode_UTF8(t *testing.T) {
	text, enc := Decode([]byte("Pensión"), "text/html")

	require.Equal(t, "Pensión", text)
	require.Equal(t, EncodingUTF8, enc)
}

func TestDecode_DeclaredCharset(t *testing.T) {
	body, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Inversión €"))
	require.NoError(t, err)

	text, enc := Decode(body, "text/html; charset=windows-1252")

	require.Equal(t, "Inversión €", text)
	require.Equal(t, "windows-1252", enc)
}

func TestDecode_MetaCharset(t *testing.T) {
	body, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(`<meta charset="iso-8859-1"><p>Año</p>`))
	require.NoError(t, err)

	text, _ := Decode(body, "")

	require.Contains(t, text, "Año")
}

func TestDecode_FallbackNeverFails(t *testing.T) {
	body := []byte{0x41, 0xff, 0xfe, 0x42}

	text, enc := Decode(body, "text/html; charset=utf-8")

	require.Equal(t, EncodingFallback, enc)
	require.Equal(t, 4, len([]rune(text)))
}

func TestClean(t *testing.T) {
	require.Equal(t, "1 234 MMUS$", Clean("1\u00a0234Â MMUS$"))
}
