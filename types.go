package linkpage

import (
	"io"

	"github.com/alnah/go-linkpage/internal/pipeline"
)

// DefaultTitle is the document title used when Input.Title is empty.
const DefaultTitle = pipeline.DefaultTitle

// MaxInputSize limits the input text read by Convert (10MB). Any input within
// the limit fits in a single parser block.
const MaxInputSize = pipeline.MaxBlockSize

// Link is one entry of the page.
type Link struct {
	URL         string
	Label       string
	Description string
}

// SkippedBlock describes an input block that did not become a Link.
type SkippedBlock struct {
	Index  int    // 1-based position among non-empty blocks
	Line   int    // 1-based line where the block starts
	Cells  int    // number of lines found in the block
	Reason string // "wrong cell count" or "empty cell"
}

// Input contains conversion parameters.
// Reader takes precedence over Text. Both empty yields a page with no links.
type Input struct {
	Reader io.Reader
	Text   string
	Title  string // empty = DefaultTitle
}

// Result holds the rendered page and what the parser kept and dropped.
type Result struct {
	HTML    string
	Links   []Link
	Skipped []SkippedBlock
}

// ParseResult holds parsed links in input order and the dropped blocks.
type ParseResult struct {
	Links   []Link
	Skipped []SkippedBlock
}

func fromPipelineLinks(links []pipeline.Link) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		out[i] = Link(l)
	}
	return out
}

func toPipelineLinks(links []Link) []pipeline.Link {
	out := make([]pipeline.Link, len(links))
	for i, l := range links {
		out[i] = pipeline.Link(l)
	}
	return out
}

func fromPipelineSkipped(skipped []pipeline.SkippedBlock) []SkippedBlock {
	if len(skipped) == 0 {
		return nil
	}
	out := make([]SkippedBlock, len(skipped))
	for i, s := range skipped {
		out[i] = SkippedBlock(s)
	}
	return out
}
