package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling program output rather than the page.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	help    bool
	version bool
}

// styleFlags holds styling flags.
type styleFlags struct {
	style     string
	assetPath string
	noStyle   bool
}

// parseFlags holds input parsing flags.
type parseFlags struct {
	strict  bool
	trim    bool
	raw     bool
	squeeze bool
}

// renderFlags holds document rendering flags.
type renderFlags struct {
	markdown       bool
	highlightStyle string
	compact        bool
}

// cliFlags holds all flags.
type cliFlags struct {
	common commonFlags
	title  string
	output string
	style  styleFlags
	parse  parseFlags
	render renderFlags
}

// addCommonFlags adds program-level flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show skipped blocks and timing")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style name, CSS file path, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "omit the stylesheet")
}

// addParseFlags adds input parsing flags to a FlagSet.
func addParseFlags(fs *flag.FlagSet, f *parseFlags) {
	fs.BoolVar(&f.strict, "strict", false, "fail on malformed entries instead of skipping them")
	fs.BoolVar(&f.trim, "trim", false, "trim whitespace around each line of an entry")
	fs.BoolVar(&f.raw, "raw", false, "do not normalize line endings")
	fs.BoolVar(&f.squeeze, "squeeze-blank", false, "collapse repeated blank lines before parsing")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.markdown, "markdown", false, "render descriptions as Markdown")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlight style for Markdown descriptions")
	fs.BoolVar(&f.compact, "compact", false, "write HTML without indentation")
}

// parseArgs parses flags and returns positional args.
// args excludes the program name.
func parseArgs(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("linkpage", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	f := &cliFlags{}

	fs.StringVarP(&f.title, "title", "t", "", "a header for the output document")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addParseFlags(fs, &f.parse)
	addRenderFlags(fs, &f.render)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
