package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to a single blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// TextPreprocessor defines the contract for input preprocessing.
type TextPreprocessor interface {
	PreprocessText(ctx context.Context, content string) string
}

// LineNormalizer makes hand-edited link lists parse the same way regardless
// of editor line endings.
//
// By default only line endings change, so block boundaries stay exactly where
// the input puts them. SqueezeBlank also compresses runs of blank lines and
// strips leading and trailing line breaks; this can turn blocks that would be
// skipped into links.
type LineNormalizer struct {
	SqueezeBlank bool
}

// PreprocessText applies all transformations before record parsing.
// Order matters: line endings first, so that blank-line compression sees \n only.
func (p *LineNormalizer) PreprocessText(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	if p.SqueezeBlank {
		content = compressBlankLines(content)
		content = strings.Trim(content, "\n")
	}
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
