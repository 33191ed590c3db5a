// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or the user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), "/linkpage/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStyleNotFound returns hints listing the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle returns a hint listing some chroma style names.
func ForHighlightStyle(available []string) string {
	const shown = 8
	if len(available) == 0 {
		return ""
	}
	if len(available) > shown {
		return format("available: " + strings.Join(available[:shown], ", ") + ", ...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMalformedBlock returns a hint explaining the expected block layout.
func ForMalformedBlock() string {
	return format("each entry is three lines (url, label, description) followed by a blank line; drop --strict to skip bad entries")
}

// ForOutputFile returns hints for output file creation errors.
func ForOutputFile() string {
	return format("check the output path is a writable location, not a directory")
}

// slashPath normalizes Windows separators so path checks work on any OS.
func slashPath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
