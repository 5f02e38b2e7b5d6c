package normalizer

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"spcuadros/internal/config"
)

const sampleDoc = `<html><body>
<a href="/files/cuadro.1.234,5.xls">Descargar 1.234,5</a>
<table><tr><td>Fondo A</td><td>1.234,56</td></tr></table>
<script>var x = "1.000";</script>
</body></html>`

func TestNormalizer_NodeStrategy(t *testing.T) {
	n, err := New(config.StrategyNode)
	require.NoError(t, err)

	root, err := n.Parse(sampleDoc)
	require.NoError(t, err)

	doc := goquery.NewDocumentFromNode(root)
	href, _ := doc.Find("a").Attr("href")

	require.Equal(t, "/files/cuadro.1.234,5.xls", href)
	require.Equal(t, "Descargar 1234.5", doc.Find("a").Text())
	require.Equal(t, "1234.56", doc.Find("td").Eq(1).Text())
	require.Contains(t, doc.Find("script").Text(), `"1.000"`)
}

func TestNormalizer_GlobalStrategy(t *testing.T) {
	n, err := New(config.StrategyGlobal)
	require.NoError(t, err)

	root, err := n.Parse(sampleDoc)
	require.NoError(t, err)

	doc := goquery.NewDocumentFromNode(root)
	href, _ := doc.Find("a").Attr("href")

	// the blunt rewrite also touches markup
	require.Equal(t, "/files/cuadro1234.5xls", href)
	require.Equal(t, "1234.56", doc.Find("td").Eq(1).Text())
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New("regex")
	require.ErrorIs(t, err, config.ErrInvalidStrategy)
}
