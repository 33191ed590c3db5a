package linkpage

import (
	"errors"

	"github.com/alnah/go-linkpage/internal/fileutil"
	"github.com/alnah/go-linkpage/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrReadInput     = pipeline.ErrReadInput
	ErrInputTooLarge = fileutil.ErrInputTooLarge

	// Parsing errors. A *BlockError unwraps to ErrMalformedBlock.
	ErrMalformedBlock   = pipeline.ErrMalformedBlock
	ErrInvalidSeparator = pipeline.ErrInvalidSeparator

	// Rendering errors.
	ErrRender             = pipeline.ErrRender
	ErrMarkdownConversion = pipeline.ErrMarkdownConversion

	// Style and asset errors.
	ErrStyleNotFound          = errors.New("style not found")
	ErrReadStyle              = errors.New("failed to read style file")
	ErrInvalidAssetPath       = errors.New("invalid asset path")
	ErrHighlightStyleNotFound = pipeline.ErrHighlightStyleNotFound
)

// BlockError reports the malformed block that stopped a strict parse.
type BlockError = pipeline.BlockError
