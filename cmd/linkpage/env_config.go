package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-linkpage/internal/config"
)

// envPrefix marks environment variables read by linkpage.
const envPrefix = "LINKPAGE_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // LINKPAGE_CONFIG: config file name or path
	Title      string // LINKPAGE_TITLE: document title
	Style      string // LINKPAGE_STYLE: style name, path, or CSS
	AssetPath  string // LINKPAGE_ASSET_PATH: custom asset directory
	Strict     bool   // LINKPAGE_STRICT: fail on malformed entries
}

// knownEnvVars lists valid LINKPAGE_* environment variables.
var knownEnvVars = map[string]bool{
	"LINKPAGE_CONFIG":     true,
	"LINKPAGE_TITLE":      true,
	"LINKPAGE_STYLE":      true,
	"LINKPAGE_ASSET_PATH": true,
	"LINKPAGE_STRICT":     true,
}

// loadEnvConfig reads LINKPAGE_* values through getenv.
// An unparsable LINKPAGE_STRICT is treated as unset.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("LINKPAGE_CONFIG"),
		Title:      getenv("LINKPAGE_TITLE"),
		Style:      getenv("LINKPAGE_STYLE"),
		AssetPath:  getenv("LINKPAGE_ASSET_PATH"),
	}

	if strict := getenv("LINKPAGE_STRICT"); strict != "" {
		if b, err := strconv.ParseBool(strict); err == nil {
			cfg.Strict = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized LINKPAGE_* variable.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// CLI flags are merged afterwards, so the order is:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Title != "" {
		cfg.Document.Title = env.Title
	}
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Strict {
		cfg.Parse.Strict = true
	}
}

// mergeFlags applies explicitly set CLI flags over cfg.
// Boolean flags can only switch features on.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Document.Title = f.title
	}
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.style.style != "" {
		cfg.CSS.Style = f.style.style
	}
	if f.style.assetPath != "" {
		cfg.Assets.BasePath = f.style.assetPath
	}
	if f.style.noStyle {
		cfg.CSS.Disabled = true
	}
	if f.parse.strict {
		cfg.Parse.Strict = true
	}
	if f.parse.trim {
		cfg.Parse.TrimSpace = true
	}
	if f.parse.raw {
		cfg.Parse.Raw = true
	}
	if f.parse.squeeze {
		cfg.Parse.SqueezeBlank = true
	}
	if f.render.markdown {
		cfg.Render.Markdown = true
	}
	if f.render.highlightStyle != "" {
		cfg.Render.HighlightStyle = f.render.highlightStyle
	}
	if f.render.compact {
		cfg.Render.Compact = true
	}
}
