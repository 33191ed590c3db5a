package linkpage

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	styleInput      string // style name, CSS file path, or inline CSS
	noStyle         bool
	assetPath       string
	cellSeparator   string
	recordSeparator string
	strict          bool
	trimSpace       bool
	raw             bool
	lenientBlocks   bool
	markdown        bool
	highlightStyle  string
	compact         bool
	resolvedCSS     string
}

// WithStyle sets the page style: a built-in or custom style name, a path to
// a CSS file (contains / or \), or inline CSS (contains {).
// An empty value keeps the default style.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPathOrCSS
	}
}

// WithoutStyle omits the <style> block entirely.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithAssetPath adds a directory of custom styles ({path}/styles/{name}.css)
// that take precedence over built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom AssetLoader. It overrides WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithSeparators overrides the cell and record separators.
// Empty values keep the defaults ("\n" and "\n\n").
func WithSeparators(cell, record string) Option {
	return func(c *Converter) {
		c.cfg.cellSeparator = cell
		c.cfg.recordSeparator = record
	}
}

// WithStrict makes Convert fail on the first malformed block.
func WithStrict(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strict = strict
	}
}

// WithTrimSpace trims surrounding whitespace from every cell before validation.
func WithTrimSpace(trim bool) Option {
	return func(c *Converter) {
		c.cfg.trimSpace = trim
	}
}

// WithRawInput disables all preprocessing, including line ending normalization.
// It takes precedence over WithLenientBlocks.
func WithRawInput(raw bool) Option {
	return func(c *Converter) {
		c.cfg.raw = raw
	}
}

// WithLenientBlocks compresses runs of blank lines and strips leading and
// trailing line breaks before parsing. A stray extra blank line then no longer
// produces a skipped block, at the cost of block boundaries differing from
// the input text.
func WithLenientBlocks(lenient bool) Option {
	return func(c *Converter) {
		c.cfg.lenientBlocks = lenient
	}
}

// WithMarkdown renders descriptions as GitHub Flavored Markdown.
func WithMarkdown(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.markdown = enabled
	}
}

// WithHighlightStyle sets the chroma style for fenced code in Markdown descriptions.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithCompact skips pretty printing; the document is written without indentation.
func WithCompact(compact bool) Option {
	return func(c *Converter) {
		c.cfg.compact = compact
	}
}
