package normalizer

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"spcuadros/internal/config"
)

// Normalizer applies one strategy to every document it sees.
type Normalizer struct {
	strategy string
}

// New returns a normalizer for the given strategy (config.StrategyNode or
// config.StrategyGlobal).
func New(strategy string) (*Normalizer, error) {
	switch strategy {
	case config.StrategyNode, config.StrategyGlobal:
		return &Normalizer{strategy: strategy}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStrategy, strategy)
	}
}

// Parse normalizes text and returns the parsed document tree ready for extraction.
func (n *Normalizer) Parse(text string) (*html.Node, error) {
	if n.strategy == config.StrategyGlobal {
		text = Global(text)
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if n.strategy == config.StrategyNode {
		Node(doc)
	}

	return doc, nil
}

// Node rewrites numeric tokens in the text nodes under root. Tag names,
// attribute values, comments and script/style bodies are not modified.
func Node(root *html.Node) {
	if root == nil {
		return
	}

	if root.Type == html.TextNode {
		root.Data = RewriteText(root.Data)
		return
	}

	if root.Type == html.ElementNode && (root.Data == "script" || root.Data == "style") {
		return
	}

	for child := root.FirstChild; child != nil; child = child.NextSibling {
		Node(child)
	}
}

// Global drops every "." and turns every "," into "." across the whole
// document, markup included. Only safe for documents whose attributes and
// labels carry no dots or commas.
func Global(text string) string {
	text = strings.ReplaceAll(text, ".", "")
	return strings.ReplaceAll(text, ",", ".")
}
