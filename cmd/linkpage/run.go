package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	linkpage "github.com/alnah/go-linkpage"
	"github.com/alnah/go-linkpage/internal/config"
	"github.com/alnah/go-linkpage/internal/fileutil"
	"github.com/alnah/go-linkpage/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrOpenInput   = errors.New("failed to open input file")
	ErrWriteOutput = errors.New("failed to write output")
)

// stdinArg selects standard input explicitly.
const stdinArg = "-"

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runMain runs the CLI and returns the process exit code.
// args includes the program name, as os.Args does.
func runMain(args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	flags, positional, err := parseArgs(rest)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	// Help suppresses all processing.
	if flags.common.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.common.version {
		fmt.Fprintf(env.Stdout, "linkpage %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger, env.Environ())

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags, env))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads configuration, converts the input and writes the page.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment, logger *slog.Logger) error {
	start := env.Now()

	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags, env, logger)
	if err != nil {
		return err
	}

	conv, err := linkpage.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(positional, env)
	if err != nil {
		return err
	}
	defer closeInput()

	result, err := conv.Convert(ctx, linkpage.Input{
		Reader: input,
		Title:  cfg.Document.Title,
	})
	if err != nil {
		return err
	}

	for _, s := range result.Skipped {
		logger.Info("skipped entry",
			"block", s.Index, "line", s.Line, "cells", s.Cells, "reason", s.Reason)
	}

	if err := writeOutput(cfg.Output.Path, result.HTML, env.Stdout); err != nil {
		return err
	}

	logger.Debug("page written",
		"links", len(result.Links),
		"skipped", len(result.Skipped),
		"bytes", len(result.HTML),
		"duration", env.Now().Sub(start))
	return nil
}

// resolveConfig builds the effective config: defaults, then config file,
// then environment, then CLI flags.
func resolveConfig(flags *cliFlags, env *Environment, logger *slog.Logger) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "config", configName)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return cfg, nil
}

// converterOptions maps config to converter options.
func converterOptions(cfg *config.Config) []linkpage.Option {
	opts := []linkpage.Option{
		linkpage.WithStyle(cfg.CSS.Style),
		linkpage.WithAssetPath(cfg.Assets.BasePath),
		linkpage.WithSeparators(cfg.Parse.CellSeparator, cfg.Parse.RecordSeparator),
		linkpage.WithStrict(cfg.Parse.Strict),
		linkpage.WithTrimSpace(cfg.Parse.TrimSpace),
		linkpage.WithRawInput(cfg.Parse.Raw),
		linkpage.WithLenientBlocks(cfg.Parse.SqueezeBlank),
		linkpage.WithMarkdown(cfg.Render.Markdown),
		linkpage.WithHighlightStyle(cfg.Render.HighlightStyle),
		linkpage.WithCompact(cfg.Render.Compact),
	}
	if cfg.CSS.Disabled {
		opts = append(opts, linkpage.WithoutStyle())
	}
	return opts
}

// openInput returns the input file named by positional, or stdin.
func openInput(positional []string, env *Environment) (io.Reader, func(), error) {
	if len(positional) == 0 || positional[0] == stdinArg {
		return env.Stdin, func() {}, nil
	}

	f, err := os.Open(positional[0]) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// writeOutput writes the page to path, or to stdout when path is empty.
func writeOutput(path, page string, stdout io.Writer) error {
	if path == "" {
		if _, err := io.WriteString(stdout, page); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFile(path, []byte(page), dirPermissions, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *cliFlags, env *Environment) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		name := flags.common.config
		if name == "" {
			name = env.Getenv("LINKPAGE_CONFIG")
		}
		if fileutil.IsFilePath(name) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, linkpage.ErrStyleNotFound):
		loader, loadErr := linkpage.NewAssetLoader(flags.style.assetPath)
		if loadErr != nil {
			return ""
		}
		names, _ := loader.ListStyles()
		return hints.ForStyleNotFound(names)
	case errors.Is(err, linkpage.ErrHighlightStyleNotFound):
		return hints.ForHighlightStyle(linkpage.HighlightStyles())
	case errors.Is(err, linkpage.ErrMalformedBlock):
		return hints.ForMalformedBlock()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputFile()
	}
	return ""
}
