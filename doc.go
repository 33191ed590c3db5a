// Package linkpage turns a plain-text list of links into a self-contained
// HTML page.
//
// # Input Format
//
// Entries are three lines (url, label, description) separated by a blank line:
//
//	https://go.dev
//	Go
//	The Go programming language
//
//	https://pkg.go.dev
//	Packages
//	Documentation for Go modules
//
// Blocks that do not hold exactly three non-empty lines are skipped and
// reported in Result.Skipped. Use WithStrict to fail on them instead.
//
// # Quick Start
//
//	conv, err := linkpage.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, linkpage.Input{
//	    Reader: os.Stdin,
//	    Title:  "Reading List",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.WriteString(result.HTML)
//
// # Conversion Pipeline
//
//  1. Text preprocessing (line endings; stray blank lines with WithLenientBlocks), skipped with WithRawInput
//  2. Record parsing into Links
//  3. Document rendering: one <article> per link, embedded stylesheet
//  4. Pretty printing, skipped with WithCompact
//
// Every title, url, label and description is escaped for HTML. Descriptions
// can be rendered as Markdown with WithMarkdown; raw HTML inside them is
// dropped rather than passed through.
//
// # Styles
//
// Built-in styles are "default", "dark" and "minimal". WithStyle also accepts
// a CSS file path or inline CSS. WithAssetPath adds a directory whose
// styles/{name}.css files take precedence over the built-in ones.
package linkpage
