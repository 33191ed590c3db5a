package linkpage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-linkpage/internal/assets"
	"github.com/alnah/go-linkpage/internal/fileutil"
	"github.com/alnah/go-linkpage/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TextPreprocessor    = (*pipeline.LineNormalizer)(nil)
	_ pipeline.LinkParser          = pipeline.BlockParser{}
	_ pipeline.DocumentRenderer    = (*pipeline.Renderer)(nil)
	_ pipeline.DescriptionRenderer = pipeline.PlainDescription{}
	_ pipeline.DescriptionRenderer = (*pipeline.MarkdownDescription)(nil)
)

// Converter orchestrates the text-to-HTML pipeline.
// Create with NewConverter and reuse it; it holds no per-conversion state.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.TextPreprocessor
	parser            pipeline.LinkParser
	renderer          pipeline.DocumentRenderer
}

// publicToInternalAdapter wraps a public AssetLoader to the internal interface.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) ListStyles() ([]string, error) {
	return a.pub.ListStyles()
}

// NewConverter creates a Converter. Styles are resolved once here, so an
// unknown style or unreadable CSS file fails construction rather than Convert.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		assetLoader: assets.NewEmbeddedLoader(),
		parser:      pipeline.BlockParser{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.preprocessor = &pipeline.LineNormalizer{SqueezeBlank: c.cfg.lenientBlocks}

	if err := c.parseOptions().Validate(); err != nil {
		return nil, err
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	var description pipeline.DescriptionRenderer = pipeline.PlainDescription{}
	if c.cfg.markdown {
		description = pipeline.NewMarkdownDescription(c.cfg.highlightStyle)
	}

	if c.renderer == nil {
		c.renderer = &pipeline.Renderer{
			CSS:         c.cfg.resolvedCSS,
			Description: description,
			Pretty:      !c.cfg.compact,
		}
	}

	return c, nil
}

// Convert reads the whole input, parses it and renders the page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	parsed, err := c.parse(ctx, input)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.renderer.Render(input.Title, parsed.Links)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	return &Result{
		HTML:    htmlContent,
		Links:   fromPipelineLinks(parsed.Links),
		Skipped: fromPipelineSkipped(parsed.Skipped),
	}, nil
}

// Parse runs preprocessing and record parsing only.
func (c *Converter) Parse(ctx context.Context, input Input) (*ParseResult, error) {
	parsed, err := c.parse(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		Links:   fromPipelineLinks(parsed.Links),
		Skipped: fromPipelineSkipped(parsed.Skipped),
	}, nil
}

// Render renders already parsed links. An empty title uses DefaultTitle.
func (c *Converter) Render(title string, links []Link) (string, error) {
	out, err := c.renderer.Render(title, toPipelineLinks(links))
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return out, nil
}

// CSS returns the stylesheet inlined into every page.
func (c *Converter) CSS() string {
	return c.cfg.resolvedCSS
}

func (c *Converter) parse(ctx context.Context, input Input) (*pipeline.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := readInput(input)
	if err != nil {
		return nil, err
	}

	if !c.cfg.raw {
		text = c.preprocessor.PreprocessText(ctx, text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := c.parser.ParseLinks(strings.NewReader(text), c.parseOptions())
	if err != nil {
		return nil, fmt.Errorf("parsing links: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parsed, nil
}

// readInput returns the input text, preferring Reader over Text.
func readInput(input Input) (string, error) {
	if input.Reader == nil {
		if len(input.Text) > MaxInputSize {
			return "", fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
		}
		return input.Text, nil
	}

	data, err := fileutil.ReadAllLimited(input.Reader, MaxInputSize)
	if err != nil {
		if errors.Is(err, ErrInputTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

func (c *Converter) parseOptions() pipeline.ParseOptions {
	return pipeline.ParseOptions{
		CellSeparator:   c.cfg.cellSeparator,
		RecordSeparator: c.cfg.recordSeparator,
		Strict:          c.cfg.strict,
		TrimSpace:       c.cfg.trimSpace,
	}
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content, then appends the highlight stylesheet when Markdown is enabled.
func (c *Converter) resolveStyle() error {
	var highlightCSS string
	if c.cfg.markdown {
		highlightStyle := c.cfg.highlightStyle
		if highlightStyle == "" {
			highlightStyle = pipeline.DefaultHighlightStyle
		}
		var err error
		if highlightCSS, err = pipeline.HighlightCSS(highlightStyle); err != nil {
			return err
		}
	}

	if c.cfg.noStyle {
		c.cfg.resolvedCSS = ""
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	var css string
	switch {
	case fileutil.IsCSS(input):
		css = input
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrReadStyle, input, err)
		}
		css = string(content)
	default:
		content, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
		}
		css = content
	}

	if highlightCSS != "" {
		css = strings.TrimRight(css, "\n") + "\n" + highlightCSS
	}

	c.cfg.resolvedCSS = css
	return nil
}

// ListStyles returns the style names available to this converter.
func (c *Converter) ListStyles() []string {
	names, err := c.assetLoader.ListStyles()
	if err != nil {
		return nil
	}
	return names
}

// HighlightStyles lists the chroma style names accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
