package main

import (
	"errors"
	"os"

	linkpage "github.com/alnah/go-linkpage"
	"github.com/alnah/go-linkpage/internal/config"
)

// Exit codes for the linkpage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or style
	ExitIO      = 3 // Input unreadable, output not writable
	ExitData    = 4 // Malformed entry in strict mode
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, linkpage.ErrMalformedBlock) {
		return ExitData
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, linkpage.ErrStyleNotFound) ||
		errors.Is(err, linkpage.ErrInvalidAssetPath) ||
		errors.Is(err, linkpage.ErrHighlightStyleNotFound) ||
		errors.Is(err, linkpage.ErrInvalidSeparator) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, linkpage.ErrReadInput) ||
		errors.Is(err, linkpage.ErrInputTooLarge) ||
		errors.Is(err, linkpage.ErrReadStyle) ||
		errors.Is(err, ErrOpenInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
