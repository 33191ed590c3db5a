package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkpage [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This program interprets a formatted text file as blocks of URLs with info.")
	fmt.Fprintln(w, "It outputs these blocks in an HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input (stdin when omitted or \"-\"):")
	fmt.Fprintln(w, "  https://someurl.com")
	fmt.Fprintln(w, "  Short description")
	fmt.Fprintln(w, "  A long description")
	fmt.Fprintln(w, "  <empty line>")
	fmt.Fprintln(w, "  <more entries>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -t, --title <s>            A header for the output document")
	fmt.Fprintln(w, "                             (default \"A Page of Links\")")
	fmt.Fprintln(w, "  -o, --output <path>        Output file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <s>            Style name, CSS file path, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>     Custom asset directory (styles/{name}.css)")
	fmt.Fprintln(w, "      --no-style             Omit the stylesheet")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parsing:")
	fmt.Fprintln(w, "      --strict               Fail on malformed entries instead of skipping them")
	fmt.Fprintln(w, "      --trim                 Trim whitespace around each line of an entry")
	fmt.Fprintln(w, "      --raw                  Do not normalize line endings")
	fmt.Fprintln(w, "      --squeeze-blank        Collapse repeated blank lines before parsing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --markdown             Render descriptions as Markdown")
	fmt.Fprintln(w, "      --highlight-style <s>  Code highlight style (default \"github\")")
	fmt.Fprintln(w, "      --compact              Write HTML without indentation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show skipped entries and timing")
	fmt.Fprintln(w, "  -h, --help                 Show this help")
	fmt.Fprintln(w, "      --version              Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LINKPAGE_TITLE, LINKPAGE_STYLE, LINKPAGE_CONFIG, LINKPAGE_ASSET_PATH, LINKPAGE_STRICT")
}
