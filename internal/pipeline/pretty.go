package pipeline

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// indentUnit is the indentation added per nesting level.
const indentUnit = "  "

// blockElements are laid out one per line when their parent is expanded.
var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true,
	atom.Meta: true, atom.Title: true, atom.Style: true, atom.Link: true, atom.Base: true, atom.Script: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true, atom.Section: true, atom.Article: true, atom.Aside: true,
	atom.Details: true, atom.Summary: true, atom.Div: true, atom.P: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Figcaption: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true, atom.Th: true, atom.Td: true,
}

// verbatimElements keep their content exactly as serialized.
var verbatimElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Textarea: true, atom.Script: true, atom.Style: true,
}

// PrettyPrint writes n with one block element per line, indented by depth.
// An element is expanded only when every child is a block element, a comment
// or whitespace; anything else is written on one line by html.Render, so text,
// attributes and inline spacing are never changed.
func PrettyPrint(w io.Writer, n *html.Node) error {
	p := &prettyPrinter{}
	if err := p.node(n, 0); err != nil {
		return err
	}
	_, err := p.buf.WriteTo(w)
	return err
}

type prettyPrinter struct {
	buf bytes.Buffer
}

func (p *prettyPrinter) node(n *html.Node, depth int) error {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := p.node(c, depth); err != nil {
				return err
			}
		}
		return nil
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
	case html.ElementNode:
		if isExpandable(n) {
			return p.expand(n, depth)
		}
	}
	return p.compact(n, depth)
}

// expand writes the start tag, each child one level deeper, then the end tag.
func (p *prettyPrinter) expand(n *html.Node, depth int) error {
	open, err := startTag(n)
	if err != nil {
		return err
	}
	p.line(depth, open)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.node(c, depth+1); err != nil {
			return err
		}
	}
	p.line(depth, "</"+n.Data+">")
	return nil
}

// compact writes the whole subtree on one line.
func (p *prettyPrinter) compact(n *html.Node, depth int) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return err
	}
	p.line(depth, buf.String())
	return nil
}

func (p *prettyPrinter) line(depth int, s string) {
	p.buf.WriteString(strings.Repeat(indentUnit, depth))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// isExpandable reports whether n has at least one block child and all of its
// children can move to their own lines. Whitespace-only text is dropped on
// expansion, so an element holding nothing else is kept inline.
func isExpandable(n *html.Node) bool {
	if verbatimElements[n.DataAtom] {
		return false
	}
	hasElement := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if !blockElements[c.DataAtom] {
				return false
			}
			hasElement = true
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.CommentNode:
		default:
			return false
		}
	}
	return hasElement
}

// startTag serializes n's start tag with escaped attributes.
func startTag(n *html.Node) (string, error) {
	shallow := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      n.Attr,
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, shallow); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "</"+n.Data+">"), nil
}
