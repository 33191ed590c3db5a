package linkpage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/PuerkitoBio/goquery"
)

func mustConvert(t *testing.T, conv *Converter, input Input) *Result {
	t.Helper()
	result, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	return result
}

func mustQuery(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

func mustNewConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// End-to-end scenarios
// ---------------------------------------------------------------------------

func TestConvert_Scenarios(t *testing.T) {
	t.Parallel()

	for _, raw := range []bool{false, true} {
		conv := mustNewConverter(t, WithRawInput(raw))

		t.Run("single record", func(t *testing.T) {
			t.Parallel()

			result := mustConvert(t, conv, Input{Text: "https://a.com\nA\ndesc\n\n"})
			want := []Link{{URL: "https://a.com", Label: "A", Description: "desc"}}
			if !reflect.DeepEqual(result.Links, want) {
				t.Errorf("raw=%v: Links = %+v, want %+v", raw, result.Links, want)
			}
			if !strings.Contains(result.HTML, `<a href="https://a.com">A</a>`) {
				t.Errorf("raw=%v: missing anchor in\n%s", raw, result.HTML)
			}
			if !strings.Contains(result.HTML, "desc") {
				t.Errorf("raw=%v: missing description", raw)
			}
		})

		t.Run("two-cell block yields empty container", func(t *testing.T) {
			t.Parallel()

			result := mustConvert(t, conv, Input{Text: "https://a.com\nA\n\n"})
			if len(result.Links) != 0 {
				t.Errorf("raw=%v: Links = %+v, want none", raw, result.Links)
			}
			if len(result.Skipped) != 1 || result.Skipped[0].Cells != 2 {
				t.Errorf("raw=%v: Skipped = %+v, want one 2-cell block", raw, result.Skipped)
			}
			doc := mustQuery(t, result.HTML)
			if doc.Find("main").Length() != 1 || doc.Find("main > article").Length() != 0 {
				t.Errorf("raw=%v: want an empty main container", raw)
			}
		})

		t.Run("default title", func(t *testing.T) {
			t.Parallel()

			doc := mustQuery(t, mustConvert(t, conv, Input{Text: "u\nl\nd"}).HTML)
			if got := doc.Find("title").Text(); got != DefaultTitle {
				t.Errorf("raw=%v: title = %q, want %q", raw, got, DefaultTitle)
			}
			if got := doc.Find("header h1").Text(); got != DefaultTitle {
				t.Errorf("raw=%v: h1 = %q, want %q", raw, got, DefaultTitle)
			}
		})

		t.Run("script in description is escaped", func(t *testing.T) {
			t.Parallel()

			result := mustConvert(t, conv, Input{Text: "u\nl\n<script>alert(1)</script>"})
			if !strings.Contains(result.HTML, "&lt;script&gt;") {
				t.Errorf("raw=%v: escaped script missing", raw)
			}
			if mustQuery(t, result.HTML).Find("script").Length() != 0 {
				t.Errorf("raw=%v: live script element in output", raw)
			}
		})
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	t.Parallel()

	result := mustConvert(t, mustNewConverter(t), Input{})
	if len(result.Links) != 0 || len(result.Skipped) != 0 {
		t.Errorf("Links = %v, Skipped = %v, want none", result.Links, result.Skipped)
	}
	if mustQuery(t, result.HTML).Find("main").Length() != 1 {
		t.Error("page should still have a main container")
	}
}

func TestConvert_OrderPreserved(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	var want []string
	for _, label := range []string{"zeta", "alpha", "mid", "beta"} {
		b.WriteString("https://" + label + ".test\n" + label + "\nabout " + label + "\n\n")
		want = append(want, label)
	}

	doc := mustQuery(t, mustConvert(t, mustNewConverter(t), Input{Text: b.String()}).HTML)
	var got []string
	doc.Find("article h2 a").Each(func(_ int, s *goquery.Selection) {
		got = append(got, s.Text())
	})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestConvert_Preprocessing(t *testing.T) {
	t.Parallel()

	lf := "u1\nl1\nd1\n\nu2\nl2\nd2"
	tests := []struct {
		name    string
		input   string
		lenient bool
	}{
		{name: "CRLF", input: "u1\r\nl1\r\nd1\r\n\r\nu2\r\nl2\r\nd2"},
		{name: "trailing separator", input: "u1\nl1\nd1\n\nu2\nl2\nd2\n\n"},
		{name: "lenient extra blank lines", input: "u1\nl1\nd1\n\n\n\nu2\nl2\nd2", lenient: true},
		{name: "lenient trailing newline", input: "u1\nl1\nd1\n\nu2\nl2\nd2\n", lenient: true},
		{name: "lenient leading blank line", input: "\nu1\nl1\nd1\n\nu2\nl2\nd2", lenient: true},
		{name: "lenient CRLF", input: "u1\r\nl1\r\nd1\r\n\r\n\r\nu2\r\nl2\r\nd2\r\n", lenient: true},
	}

	want := mustConvert(t, mustNewConverter(t), Input{Text: lf})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustConvert(t, mustNewConverter(t, WithLenientBlocks(tt.lenient)), Input{Text: tt.input})
			if got.HTML != want.HTML {
				t.Errorf("HTML differs from LF input")
			}
			if len(got.Links) != 2 {
				t.Errorf("len(Links) = %d, want 2", len(got.Links))
			}
			if len(got.Skipped) != 0 {
				t.Errorf("Skipped = %+v, want none", got.Skipped)
			}
		})
	}
}

func TestConvert_DefaultKeepsBlockBoundaries(t *testing.T) {
	t.Parallel()

	input := "https://a.com\nA\ndesc a\n\n\nhttps://b.com\nB\ndesc b\n\n"

	tests := []struct {
		name        string
		opts        []Option
		wantLinks   int
		wantSkipped int
	}{
		{name: "default", wantLinks: 1, wantSkipped: 1},
		{name: "raw", opts: []Option{WithRawInput(true)}, wantLinks: 1, wantSkipped: 1},
		{name: "lenient", opts: []Option{WithLenientBlocks(true)}, wantLinks: 2, wantSkipped: 0},
		{name: "raw wins over lenient", opts: []Option{WithLenientBlocks(true), WithRawInput(true)}, wantLinks: 1, wantSkipped: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := mustConvert(t, mustNewConverter(t, tt.opts...), Input{Text: input})
			if len(result.Links) != tt.wantLinks {
				t.Errorf("len(Links) = %d, want %d", len(result.Links), tt.wantLinks)
			}
			if len(result.Skipped) != tt.wantSkipped {
				t.Errorf("len(Skipped) = %d, want %d", len(result.Skipped), tt.wantSkipped)
			}
		})
	}
}

func TestConvert_LargeBlocks(t *testing.T) {
	t.Parallel()

	longDescription := strings.Repeat("d", 2<<20)
	input := "u1\nl1\nd1\n\n" +
		strings.Repeat("x", 1536<<10) + "\n\n" +
		"u2\nl2\n" + longDescription

	result := mustConvert(t, mustNewConverter(t, WithCompact(true)), Input{Text: input})
	if len(result.Links) != 2 {
		t.Fatalf("len(Links) = %d, want 2", len(result.Links))
	}
	if len(result.Links[1].Description) != len(longDescription) {
		t.Errorf("description length = %d, want %d", len(result.Links[1].Description), len(longDescription))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Index != 2 {
		t.Errorf("Skipped = %+v, want block 2", result.Skipped)
	}
	if !strings.Contains(result.HTML, longDescription) {
		t.Error("HTML missing long description")
	}
}

func TestConvert_RawInputKeepsCR(t *testing.T) {
	t.Parallel()

	result := mustConvert(t, mustNewConverter(t, WithRawInput(true)), Input{Text: "u\r\nl\r\nd"})
	if len(result.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(result.Links))
	}
	if result.Links[0].URL != "u\r" {
		t.Errorf("URL = %q, want %q", result.Links[0].URL, "u\r")
	}
}

func TestConvert_ReaderTakesPrecedence(t *testing.T) {
	t.Parallel()

	result := mustConvert(t, mustNewConverter(t), Input{
		Reader: strings.NewReader("from\nreader\nyes"),
		Text:   "from\ntext\nno",
	})
	if len(result.Links) != 1 || result.Links[0].Label != "reader" {
		t.Errorf("Links = %+v, want the reader's link", result.Links)
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	t.Run("strict mode", func(t *testing.T) {
		t.Parallel()

		conv := mustNewConverter(t, WithStrict(true))
		_, err := conv.Convert(context.Background(), Input{Text: "u\nl\nd\n\nbroken"})
		if !errors.Is(err, ErrMalformedBlock) {
			t.Fatalf("error = %v, want ErrMalformedBlock", err)
		}
		var blockErr *BlockError
		if !errors.As(err, &blockErr) {
			t.Fatalf("error type = %T, want *BlockError in chain", err)
		}
		if blockErr.Block.Index != 2 || blockErr.Block.Cells != 1 {
			t.Errorf("Block = %+v, want index 2 with 1 cell", blockErr.Block)
		}
	})

	t.Run("reader failure", func(t *testing.T) {
		t.Parallel()

		_, err := mustNewConverter(t).Convert(context.Background(), Input{
			Reader: iotest.ErrReader(errors.New("gone")),
		})
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
	})

	t.Run("input too large", func(t *testing.T) {
		t.Parallel()

		_, err := mustNewConverter(t).Convert(context.Background(), Input{
			Text: strings.Repeat("a", MaxInputSize+1),
		})
		if !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := mustNewConverter(t).Convert(ctx, Input{Text: "u\nl\nd"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestConvert_TrimSpace(t *testing.T) {
	t.Parallel()

	result := mustConvert(t, mustNewConverter(t, WithTrimSpace(true)), Input{Text: "  u  \n\tl\nd  "})
	want := []Link{{URL: "u", Label: "l", Description: "d"}}
	if !reflect.DeepEqual(result.Links, want) {
		t.Errorf("Links = %+v, want %+v", result.Links, want)
	}
}

func TestConvert_CustomSeparators(t *testing.T) {
	t.Parallel()

	conv := mustNewConverter(t, WithSeparators("\t", "\n"))
	result := mustConvert(t, conv, Input{Text: "u1\tl1\td1\nu2\tl2\td2"})
	if len(result.Links) != 2 {
		t.Errorf("len(Links) = %d, want 2", len(result.Links))
	}
}

func TestConvert_Title(t *testing.T) {
	t.Parallel()

	doc := mustQuery(t, mustConvert(t, mustNewConverter(t), Input{Text: "u\nl\nd", Title: "Tom & Jerry"}).HTML)
	if got := doc.Find("title").Text(); got != "Tom & Jerry" {
		t.Errorf("title = %q", got)
	}
}

func TestConvert_Compact(t *testing.T) {
	t.Parallel()

	result := mustConvert(t, mustNewConverter(t, WithCompact(true), WithoutStyle()), Input{Text: "u\nl\nd"})
	if strings.Count(result.HTML, "\n") != 1 {
		t.Errorf("compact output should be one line:\n%s", result.HTML)
	}
}

func TestConvert_Markdown(t *testing.T) {
	t.Parallel()

	conv := mustNewConverter(t, WithMarkdown(true))
	result := mustConvert(t, conv, Input{Text: "u\nl\nUse **bold** <script>x</script>"})

	doc := mustQuery(t, result.HTML)
	if got := doc.Find("details strong").Text(); got != "bold" {
		t.Errorf("strong = %q, want bold", got)
	}
	if doc.Find("body script").Length() != 0 {
		t.Error("raw script passed through Markdown")
	}
	if !strings.Contains(conv.CSS(), ".chroma") {
		t.Error("Markdown mode should append highlight CSS")
	}
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

func TestNewConverter_Styles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssFile := filepath.Join(dir, "site.css")
	if err := os.WriteFile(cssFile, []byte("body { color: olive; }"), 0o600); err != nil {
		t.Fatal(err)
	}
	assetDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assetDir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetDir, "styles", "brand.css"), []byte("body { color: navy; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		opts     []Option
		contains string
		empty    bool
		wantErr  error
	}{
		{name: "default style", contains: "{"},
		{name: "named style", opts: []Option{WithStyle("dark")}, contains: "{"},
		{name: "inline CSS", opts: []Option{WithStyle("p { margin: 0 }")}, contains: "p { margin: 0 }"},
		{name: "CSS file", opts: []Option{WithStyle(cssFile)}, contains: "olive"},
		{name: "custom asset path", opts: []Option{WithAssetPath(assetDir), WithStyle("brand")}, contains: "navy"},
		{name: "no style", opts: []Option{WithoutStyle()}, empty: true},
		{name: "unknown style", opts: []Option{WithStyle("nope")}, wantErr: ErrStyleNotFound},
		{name: "missing CSS file", opts: []Option{WithStyle(filepath.Join(dir, "missing.css"))}, wantErr: ErrReadStyle},
		{name: "invalid asset path", opts: []Option{WithAssetPath(filepath.Join(dir, "nope"))}, wantErr: ErrInvalidAssetPath},
		{name: "unknown highlight style", opts: []Option{WithMarkdown(true), WithHighlightStyle("nope")}, wantErr: ErrHighlightStyleNotFound},
		{name: "equal separators", opts: []Option{WithSeparators("|", "|")}, wantErr: ErrInvalidSeparator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			if tt.empty {
				if conv.CSS() != "" {
					t.Errorf("CSS() = %q, want empty", conv.CSS())
				}
				return
			}
			if !strings.Contains(conv.CSS(), tt.contains) {
				t.Errorf("CSS() = %q, want it to contain %q", conv.CSS(), tt.contains)
			}
		})
	}
}

type mapLoader map[string]string

func (m mapLoader) LoadStyle(name string) (string, error) {
	if css, ok := m[name]; ok {
		return css, nil
	}
	return "", ErrStyleNotFound
}

func (m mapLoader) ListStyles() ([]string, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names, nil
}

func TestWithAssetLoader(t *testing.T) {
	t.Parallel()

	conv := mustNewConverter(t, WithAssetLoader(mapLoader{"default": "main { gap: 1rem; }"}))
	if conv.CSS() != "main { gap: 1rem; }" {
		t.Errorf("CSS() = %q", conv.CSS())
	}
	if got := conv.ListStyles(); !reflect.DeepEqual(got, []string{"default"}) {
		t.Errorf("ListStyles() = %v", got)
	}
}

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() unexpected error: %v", err)
	}
	if _, err := loader.LoadStyle("minimal"); err != nil {
		t.Errorf("LoadStyle(minimal) unexpected error: %v", err)
	}
	if _, err := loader.LoadStyle("../etc/passwd"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrStyleNotFound", err)
	}
	names, err := loader.ListStyles()
	if err != nil || !reflect.DeepEqual(names, []string{"dark", "default", "minimal"}) {
		t.Errorf("ListStyles() = %v, %v", names, err)
	}

	if _, err := NewAssetLoader("/nonexistent/xyz"); !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader(missing) error = %v, want ErrInvalidAssetPath", err)
	}
}

// ---------------------------------------------------------------------------
// Parse and Render
// ---------------------------------------------------------------------------

func TestParseThenRender(t *testing.T) {
	t.Parallel()

	conv := mustNewConverter(t)
	parsed, err := conv.Parse(context.Background(), Input{Text: "u1\nl1\nd1\n\nbad\n\nu2\nl2\nd2"})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(parsed.Links) != 2 || len(parsed.Skipped) != 1 {
		t.Fatalf("Parse() = %+v", parsed)
	}

	first, err := conv.Render("T", parsed.Links)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	second, err := conv.Render("T", parsed.Links)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if first != second {
		t.Error("Render() is not deterministic")
	}

	converted := mustConvert(t, conv, Input{Text: "u1\nl1\nd1\n\nbad\n\nu2\nl2\nd2", Title: "T"})
	if converted.HTML != first {
		t.Error("Convert() and Parse()+Render() disagree")
	}
}
