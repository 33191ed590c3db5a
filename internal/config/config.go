// Package config loads YAML configuration for link page generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-linkpage/internal/fileutil"
	"github.com/alnah/go-linkpage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// configDirName is the directory searched under the user config directory.
const configDirName = "linkpage"

// Field length limits.
const (
	MaxTitleLength          = 200  // Document title
	MaxPathLength           = 4096 // Style file, asset directory, output file
	MaxSeparatorLength      = 16   // "\n", "\n\n", "\n---\n"
	MaxHighlightStyleLength = 50   // chroma style name
)

// Config holds all configuration for link page generation.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
	Parse    ParseConfig    `yaml:"parse"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
}

// DocumentConfig defines document metadata.
type DocumentConfig struct {
	Title string `yaml:"title"` // Empty = "A Page of Links"
}

// CSSConfig defines styling options.
type CSSConfig struct {
	Style    string `yaml:"style"`    // Style name, CSS file path, or inline CSS (empty = default)
	Disabled bool   `yaml:"disabled"` // Omit the <style> block
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ParseConfig defines how input text is cut into links.
type ParseConfig struct {
	Strict          bool   `yaml:"strict"`          // Fail on malformed blocks
	TrimSpace       bool   `yaml:"trimSpace"`       // Trim whitespace around cells
	Raw             bool   `yaml:"raw"`             // Skip line ending normalization
	SqueezeBlank    bool   `yaml:"squeezeBlank"`    // Compress blank lines and trim outer line breaks
	CellSeparator   string `yaml:"cellSeparator"`   // Default "\n"
	RecordSeparator string `yaml:"recordSeparator"` // Default "\n\n"
}

// RenderConfig defines document rendering options.
type RenderConfig struct {
	Markdown       bool   `yaml:"markdown"`       // Render descriptions as Markdown
	HighlightStyle string `yaml:"highlightStyle"` // chroma style for fenced code
	Compact        bool   `yaml:"compact"`        // Skip pretty printing
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = stdout
}

// Validate checks field lengths and separator consistency.
// Called by LoadConfig; available for callers that build a Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"document.title", c.Document.Title, MaxTitleLength},
		{"css.style", c.CSS.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"parse.cellSeparator", c.Parse.CellSeparator, MaxSeparatorLength},
		{"parse.recordSeparator", c.Parse.RecordSeparator, MaxSeparatorLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxHighlightStyleLength},
		{"output.path", c.Output.Path, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Parse.CellSeparator != "" && c.Parse.CellSeparator == c.Parse.RecordSeparator {
		return fmt.Errorf("parse.recordSeparator: must differ from parse.cellSeparator (%q)", c.Parse.CellSeparator)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every option at its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as {name}.yaml or {name}.yml in the current
// directory, then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
