package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMarkdownConversion indicates a description could not be converted from Markdown.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// DefaultHighlightStyle is the chroma style used for fenced code in descriptions.
const DefaultHighlightStyle = "github"

// DescriptionRenderer turns a description cell into the block shown inside <details>.
type DescriptionRenderer interface {
	RenderDescription(text string) (*html.Node, error)
}

// PlainDescription renders the description as a single escaped paragraph.
type PlainDescription struct{}

// RenderDescription implements DescriptionRenderer.
func (PlainDescription) RenderDescription(text string) (*html.Node, error) {
	return element(atom.Div, nil, element(atom.P, nil, textNode(text))), nil
}

// MarkdownDescription renders descriptions as GitHub Flavored Markdown.
// Raw HTML in descriptions is omitted by goldmark, never passed through.
type MarkdownDescription struct {
	md goldmark.Markdown
}

// NewMarkdownDescription creates a MarkdownDescription whose fenced code
// blocks are highlighted with CSS classes from the given chroma style.
func NewMarkdownDescription(highlightStyle string) *MarkdownDescription {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
			// WithUnsafe is not set: raw HTML becomes a comment.
		),
	)
	return &MarkdownDescription{md: md}
}

// RenderDescription implements DescriptionRenderer.
func (m *MarkdownDescription) RenderDescription(text string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}

	container := element(atom.Div, nil)
	nodes, err := html.ParseFragment(&buf, container)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}
