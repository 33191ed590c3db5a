package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlightStyleNotFound indicates an unknown chroma style name.
var ErrHighlightStyleNotFound = errors.New("highlight style not found")

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// HighlightCSS returns the class-based stylesheet for a chroma style.
// Pairs with MarkdownDescription, which emits classes instead of inline styles.
func HighlightCSS(styleName string) (string, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrHighlightStyleNotFound, styleName)
	}

	var buf bytes.Buffer
	if err := html.New(html.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// HighlightStyles lists the available chroma style names.
func HighlightStyles() []string {
	return styles.Names()
}
