package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Default separators: one record per blank-line separated block, one cell per line.
const (
	DefaultCellSeparator   = "\n"
	DefaultRecordSeparator = "\n\n"
)

// MaxBlockSize is the largest block ParseLinks buffers (10MB). It matches the
// converter's input cap, so any accepted input splits without a read error.
const MaxBlockSize = 10 << 20

// linkCells is the number of cells that make up a valid block.
const linkCells = 3

// Reasons reported for skipped blocks.
const (
	ReasonCellCount = "wrong cell count"
	ReasonEmptyCell = "empty cell"
)

// Sentinel errors for parsing.
var (
	ErrReadInput        = errors.New("failed to read input")
	ErrInvalidSeparator = errors.New("invalid separator")
	ErrMalformedBlock   = errors.New("malformed link block")
)

// Link is one parsed entry: target address, short label and free-form description.
type Link struct {
	URL         string
	Label       string
	Description string
}

// SkippedBlock describes a non-empty block that did not yield a Link.
type SkippedBlock struct {
	Index  int    // 1-based position among non-empty blocks
	Line   int    // 1-based line where the block starts
	Cells  int    // number of cells found
	Reason string // ReasonCellCount or ReasonEmptyCell
}

// BlockError reports a malformed block in strict mode.
type BlockError struct {
	Block SkippedBlock
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s: block %d at line %d: %s (%d cells, want %d)",
		ErrMalformedBlock, e.Block.Index, e.Block.Line, e.Block.Reason, e.Block.Cells, linkCells)
}

// Unwrap returns ErrMalformedBlock for errors.Is matching.
func (e *BlockError) Unwrap() error {
	return ErrMalformedBlock
}

// ParseOptions controls how the input stream is cut into links.
// Zero-value separators fall back to the defaults.
type ParseOptions struct {
	CellSeparator   string
	RecordSeparator string
	Strict          bool // fail on the first malformed block instead of skipping it
	TrimSpace       bool // trim surrounding whitespace from each cell
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.CellSeparator == "" {
		o.CellSeparator = DefaultCellSeparator
	}
	if o.RecordSeparator == "" {
		o.RecordSeparator = DefaultRecordSeparator
	}
	return o
}

// Validate checks that the separators can split the input unambiguously.
func (o ParseOptions) Validate() error {
	o = o.withDefaults()
	if o.CellSeparator == o.RecordSeparator {
		return fmt.Errorf("%w: cell and record separators are both %q", ErrInvalidSeparator, o.CellSeparator)
	}
	return nil
}

// ParseResult holds the links in input order and the blocks that were dropped.
type ParseResult struct {
	Links   []Link
	Skipped []SkippedBlock
}

// LinkParser defines the contract for turning a text stream into links.
type LinkParser interface {
	ParseLinks(r io.Reader, opts ParseOptions) (*ParseResult, error)
}

// BlockParser parses blank-line separated blocks of url/label/description lines.
type BlockParser struct{}

// ParseLinks implements LinkParser.
func (BlockParser) ParseLinks(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	return ParseLinks(r, opts)
}

// ParseLinks reads r block by block and returns every block made of exactly
// three non-empty cells as a Link. Other non-empty blocks are skipped and
// listed in the result, or returned as a *BlockError when opts.Strict is set.
// Empty blocks are ignored. Empty input yields an empty result.
func ParseLinks(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	scanner := bufio.NewScanner(r)
	// The buffer must also hold the separator that ends the block, and one
	// spare byte so a full buffer can still observe EOF.
	scanner.Buffer(make([]byte, 0, 64*1024), MaxBlockSize+len(opts.RecordSeparator)+1)
	scanner.Split(ScanBlocks(opts.RecordSeparator))

	result := &ParseResult{Links: []Link{}}
	separatorLines := strings.Count(opts.RecordSeparator, "\n")
	line := 1
	index := 0

	for scanner.Scan() {
		block := scanner.Text()
		start := line
		line += strings.Count(block, "\n") + separatorLines

		if isEmptyBlock(block, opts) {
			continue
		}
		index++

		link, skipped := parseBlock(block, opts)
		if skipped != nil {
			skipped.Index = index
			skipped.Line = start
			if opts.Strict {
				return nil, &BlockError{Block: *skipped}
			}
			result.Skipped = append(result.Skipped, *skipped)
			continue
		}
		result.Links = append(result.Links, link)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return result, nil
}

// parseBlock splits one block into cells. Cells map to url, label and
// description in that order.
func parseBlock(block string, opts ParseOptions) (Link, *SkippedBlock) {
	cells := strings.Split(block, opts.CellSeparator)
	if opts.TrimSpace {
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
	}

	if len(cells) != linkCells {
		return Link{}, &SkippedBlock{Cells: len(cells), Reason: ReasonCellCount}
	}
	for _, cell := range cells {
		if cell == "" {
			return Link{}, &SkippedBlock{Cells: len(cells), Reason: ReasonEmptyCell}
		}
	}

	return Link{URL: cells[0], Label: cells[1], Description: cells[2]}, nil
}

// isEmptyBlock reports blocks produced by consecutive, leading or trailing separators.
func isEmptyBlock(block string, opts ParseOptions) bool {
	if opts.TrimSpace {
		return strings.TrimSpace(block) == ""
	}
	return block == ""
}

// ScanBlocks returns a bufio.SplitFunc that yields the text between
// occurrences of separator, like strings.Split but streaming.
// A trailing separator does not produce a final empty token.
func ScanBlocks(separator string) bufio.SplitFunc {
	sep := []byte(separator)
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.Index(data, sep); i >= 0 {
			return i + len(sep), data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		// Request more data.
		return 0, nil, nil
	}
}
