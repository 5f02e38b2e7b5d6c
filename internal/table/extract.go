// Package table extracts the first HTML table of a cuadro into a Normalized Table.
package table

import (
	"errors"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"spcuadros/internal/config"
	"spcuadros/internal/models"
)

// Extraction errors. Neither is retried: the raw artifact is still kept.
var (
	ErrNoTable    = errors.New("no table found")
	ErrEmptyTable = errors.New("table is empty after cleaning")
)

// Options controls header flattening and row cleaning.
type Options struct {
	HeaderSeparator     string
	BoilerplateKeywords []string
	BoilerplateMatch    string
}

// OptionsFromConfig converts the extraction section of the configuration.
func OptionsFromConfig(cfg config.ExtractionConfig) Options {
	return Options{
		HeaderSeparator:     cfg.HeaderSeparator,
		BoilerplateKeywords: cfg.BoilerplateKeywords,
		BoilerplateMatch:    cfg.BoilerplateMatch,
	}
}

// Extractor turns a parsed, numerically normalized document into a table.
type Extractor struct {
	opts        Options
	boilerplate *Boilerplate
}

// NewExtractor creates an extractor.
func NewExtractor(opts Options) *Extractor {
	if opts.HeaderSeparator == "" {
		opts.HeaderSeparator = "_"
	}

	return &Extractor{
		opts:        opts,
		boilerplate: NewBoilerplate(opts.BoilerplateKeywords, opts.BoilerplateMatch),
	}
}

// ExtractNode extracts from an already parsed document tree.
func (e *Extractor) ExtractNode(root *html.Node) (*models.Table, error) {
	return e.Extract(goquery.NewDocumentFromNode(root))
}

// Extract selects the first table of doc, flattens its header, drops empty
// and boilerplate rows, drops empty columns, and types every column but the first.
func (e *Extractor) Extract(doc *goquery.Document) (*models.Table, error) {
	sel := doc.Find("table").First()
	if sel.Length() == 0 {
		return nil, ErrNoTable
	}

	g := buildGrid(sel)
	if len(g.rows) == 0 || g.width == 0 {
		return nil, ErrEmptyTable
	}

	headerRows := g.headerRows()
	columns := flattenHeader(g.rows[:headerRows], g.width, e.opts.HeaderSeparator)
	data := g.texts(headerRows)

	data = dropEmptyRows(data)
	columns, data = dropEmptyColumns(columns, data)
	data = e.boilerplate.Filter(data)

	if len(data) == 0 || len(columns) == 0 {
		return nil, ErrEmptyTable
	}

	return &models.Table{
		Columns: dedupe(fillNames(columns)),
		Rows:    typeRows(data),
	}, nil
}
