package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTitle is used when no document title is given.
const DefaultTitle = "A Page of Links"

// ErrRender indicates the document could not be serialized.
var ErrRender = errors.New("document rendering failed")

// DocumentRenderer defines the contract for turning links into an HTML document.
type DocumentRenderer interface {
	Render(title string, links []Link) (string, error)
}

// Renderer builds a complete HTML document with one <article> per link.
// All user text enters the document tree as text or attribute values, so the
// serializer escapes it; nothing is concatenated as markup.
type Renderer struct {
	CSS         string              // inlined into <style>, omitted when empty
	Description DescriptionRenderer // nil means PlainDescription
	Pretty      bool                // indent block elements
}

// Render builds the document and serializes it.
// Rendering the same title and links twice yields the same string.
func (r *Renderer) Render(title string, links []Link) (string, error) {
	doc, err := r.BuildDocument(title, links)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if r.Pretty {
		err = PrettyPrint(&buf, doc)
	} else {
		err = html.Render(&buf, doc)
		buf.WriteByte('\n')
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// BuildDocument returns the document tree without serializing it.
func (r *Renderer) BuildDocument(title string, links []Link) (*html.Node, error) {
	if title == "" {
		title = DefaultTitle
	}

	head := element(atom.Head, nil,
		element(atom.Meta, attrs("charset", "UTF-8")),
		element(atom.Meta, attrs("http-equiv", "X-UA-Compatible", "content", "IE=edge")),
		element(atom.Meta, attrs("name", "viewport", "content", "width=device-width, initial-scale=1.0")),
		element(atom.Title, nil, textNode(title)),
	)
	if r.CSS != "" {
		head.AppendChild(element(atom.Style, nil, textNode(sanitizeCSS(r.CSS))))
	}

	container := element(atom.Main, nil)
	for i, link := range links {
		article, err := r.renderLink(link)
		if err != nil {
			return nil, fmt.Errorf("rendering link %d: %w", i+1, err)
		}
		container.AppendChild(article)
	}

	body := element(atom.Body, nil,
		element(atom.Header, nil, element(atom.H1, nil, textNode(title))),
		container,
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, attrs("lang", "en"), head, body))
	return doc, nil
}

// renderLink maps one link to its fragment:
// a heading with the anchor, then a collapsible region with the url and description.
func (r *Renderer) renderLink(link Link) (*html.Node, error) {
	description, err := r.descriptionRenderer().RenderDescription(link.Description)
	if err != nil {
		return nil, err
	}

	return element(atom.Article, nil,
		element(atom.H2, nil,
			element(atom.A, attrs("href", link.URL), textNode(link.Label)),
		),
		element(atom.Details, nil,
			element(atom.Summary, nil,
				element(atom.Span, nil, textNode("@ ")),
				element(atom.Span, nil, textNode(link.URL)),
			),
			description,
		),
	), nil
}

func (r *Renderer) descriptionRenderer() DescriptionRenderer {
	if r.Description == nil {
		return PlainDescription{}
	}
	return r.Description
}

// element creates an HTML element node with the given attributes and children.
func element(a atom.Atom, attr []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attr}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// attrs builds an attribute list from key/value pairs.
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
