package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func mustQuery(t *testing.T, doc string) *goquery.Document {
	t.Helper()
	q, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parsing rendered document: %v", err)
	}
	return q
}

func TestRenderer_Render_Structure(t *testing.T) {
	t.Parallel()

	links := []Link{
		{URL: "https://example.com", Label: "Example", Description: "An example site."},
		{URL: "https://go.dev", Label: "Go", Description: "The Go language."},
	}

	for _, pretty := range []bool{false, true} {
		r := &Renderer{CSS: "body { color: black; }", Pretty: pretty}
		out, err := r.Render("My Links", links)
		if err != nil {
			t.Fatalf("Render(pretty=%v) unexpected error: %v", pretty, err)
		}

		if !strings.HasPrefix(out, "<!DOCTYPE html>") {
			t.Errorf("pretty=%v: output should start with doctype, got %q", pretty, out[:min(len(out), 40)])
		}

		doc := mustQuery(t, out)
		if lang, _ := doc.Find("html").Attr("lang"); lang != "en" {
			t.Errorf("pretty=%v: html lang = %q, want en", pretty, lang)
		}
		if got := doc.Find("head title").Text(); got != "My Links" {
			t.Errorf("pretty=%v: title = %q, want %q", pretty, got, "My Links")
		}
		if got := doc.Find("body > header > h1").Text(); got != "My Links" {
			t.Errorf("pretty=%v: h1 = %q, want %q", pretty, got, "My Links")
		}
		if charset, _ := doc.Find(`head meta[charset]`).Attr("charset"); charset != "UTF-8" {
			t.Errorf("pretty=%v: charset = %q, want UTF-8", pretty, charset)
		}
		if doc.Find(`head meta[name="viewport"]`).Length() != 1 {
			t.Errorf("pretty=%v: missing viewport meta", pretty)
		}
		if got := doc.Find("head style").Text(); got != "body { color: black; }" {
			t.Errorf("pretty=%v: style = %q", pretty, got)
		}

		articles := doc.Find("body > main > article")
		if articles.Length() != len(links) {
			t.Fatalf("pretty=%v: %d articles, want %d", pretty, articles.Length(), len(links))
		}
		articles.Each(func(i int, s *goquery.Selection) {
			a := s.Find("h2 > a")
			if href, _ := a.Attr("href"); href != links[i].URL {
				t.Errorf("pretty=%v article %d: href = %q, want %q", pretty, i, href, links[i].URL)
			}
			if a.Text() != links[i].Label {
				t.Errorf("pretty=%v article %d: label = %q, want %q", pretty, i, a.Text(), links[i].Label)
			}
			spans := s.Find("details > summary > span")
			if spans.Length() != 2 || spans.Eq(0).Text() != "@ " || spans.Eq(1).Text() != links[i].URL {
				t.Errorf("pretty=%v article %d: summary spans = %q", pretty, i, spans.Text())
			}
			if got := s.Find("details > div > p").Text(); got != links[i].Description {
				t.Errorf("pretty=%v article %d: description = %q, want %q", pretty, i, got, links[i].Description)
			}
		})
	}
}

func TestRenderer_Render_DefaultTitle(t *testing.T) {
	t.Parallel()

	out, err := (&Renderer{}).Render("", nil)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	doc := mustQuery(t, out)
	if got := doc.Find("title").Text(); got != DefaultTitle {
		t.Errorf("title = %q, want %q", got, DefaultTitle)
	}
	if got := doc.Find("h1").Text(); got != DefaultTitle {
		t.Errorf("h1 = %q, want %q", got, DefaultTitle)
	}
	if doc.Find("main").Length() != 1 {
		t.Error("main container should exist with no links")
	}
	if doc.Find("article").Length() != 0 {
		t.Error("no articles expected for no links")
	}
}

func TestRenderer_Render_NoStyleWhenCSSEmpty(t *testing.T) {
	t.Parallel()

	out, err := (&Renderer{}).Render("T", nil)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if strings.Contains(out, "<style") {
		t.Errorf("output should not contain <style> when CSS is empty:\n%s", out)
	}
}

func TestRenderer_Render_Escaping(t *testing.T) {
	t.Parallel()

	link := Link{
		URL:         `https://a.test/?q="x"&y=<z>`,
		Label:       `<script>alert("label")</script>`,
		Description: `Tom & Jerry's <b>"show"</b>`,
	}
	title := `<Title> & "quotes"`

	for _, pretty := range []bool{false, true} {
		out, err := (&Renderer{Pretty: pretty}).Render(title, []Link{link})
		if err != nil {
			t.Fatalf("Render() unexpected error: %v", err)
		}

		for _, raw := range []string{"<script>", "<b>", "<Title>", `"x"`} {
			if strings.Contains(out, raw) {
				t.Errorf("pretty=%v: output contains unescaped %q", pretty, raw)
			}
		}
		for _, escaped := range []string{"&lt;script&gt;", "&amp;", "&#34;", "&#39;"} {
			if !strings.Contains(out, escaped) {
				t.Errorf("pretty=%v: output missing %q", pretty, escaped)
			}
		}

		// The parsed document gets the original text back.
		doc := mustQuery(t, out)
		if got, _ := doc.Find("h2 > a").Attr("href"); got != link.URL {
			t.Errorf("pretty=%v: href = %q, want %q", pretty, got, link.URL)
		}
		if got := doc.Find("h2 > a").Text(); got != link.Label {
			t.Errorf("pretty=%v: label = %q, want %q", pretty, got, link.Label)
		}
		if got := doc.Find("details p").Text(); got != link.Description {
			t.Errorf("pretty=%v: description = %q, want %q", pretty, got, link.Description)
		}
		if got := doc.Find("title").Text(); got != title {
			t.Errorf("pretty=%v: title = %q, want %q", pretty, got, title)
		}
	}
}

func TestRenderer_Render_CSSCannotCloseStyle(t *testing.T) {
	t.Parallel()

	css := "body{}</style><script>alert(1)</script>"
	out, err := (&Renderer{CSS: css}).Render("T", nil)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if strings.Contains(out, "</style><script>") {
		t.Errorf("CSS escaped the style element:\n%s", out)
	}
	if doc := mustQuery(t, out); doc.Find("script").Length() != 0 {
		t.Error("document should contain no script element")
	}
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	t.Parallel()

	links := []Link{
		{URL: "u1", Label: "l1", Description: "d1"},
		{URL: "u2", Label: "l2", Description: "d2"},
	}
	r := &Renderer{CSS: "p{}", Pretty: true}

	first, err := r.Render("T", links)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	second, err := r.Render("T", links)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Render() not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestRenderer_Render_PrettyLayout(t *testing.T) {
	t.Parallel()

	out, err := (&Renderer{Pretty: true}).Render("T", []Link{
		{URL: "https://example.com", Label: "Example", Description: "Desc"},
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8"/>
    <meta http-equiv="X-UA-Compatible" content="IE=edge"/>
    <meta name="viewport" content="width=device-width, initial-scale=1.0"/>
    <title>T</title>
  </head>
  <body>
    <header>
      <h1>T</h1>
    </header>
    <main>
      <article>
        <h2><a href="https://example.com">Example</a></h2>
        <details>
          <summary><span>@ </span><span>https://example.com</span></summary>
          <div>
            <p>Desc</p>
          </div>
        </details>
      </article>
    </main>
  </body>
</html>
`
	if out != want {
		t.Errorf("Render() =\n%s\nwant\n%s", out, want)
	}
}

func TestRenderer_Render_WhitespaceDescription(t *testing.T) {
	t.Parallel()

	for _, pretty := range []bool{false, true} {
		out, err := (&Renderer{Pretty: pretty}).Render("T", []Link{{URL: "u", Label: "l", Description: " "}})
		if err != nil {
			t.Fatalf("pretty=%v: Render() unexpected error: %v", pretty, err)
		}
		if !strings.Contains(out, "<p> </p>") {
			t.Errorf("pretty=%v: description lost, got:\n%s", pretty, out)
		}
		if got := mustQuery(t, out).Find("details p").Text(); got != " " {
			t.Errorf("pretty=%v: description = %q, want a single space", pretty, got)
		}
	}
}

func TestRenderer_Render_Compact(t *testing.T) {
	t.Parallel()

	out, err := (&Renderer{}).Render("T", []Link{{URL: "u", Label: "l", Description: "d"}})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "</html>\n") {
		t.Errorf("compact output should be a single line ending in newline, got:\n%s", out)
	}
}

type failingDescription struct{}

func (failingDescription) RenderDescription(string) (*html.Node, error) {
	return nil, ErrMarkdownConversion
}

func TestRenderer_Render_DescriptionError(t *testing.T) {
	t.Parallel()

	r := &Renderer{Description: failingDescription{}}
	_, err := r.Render("T", []Link{{URL: "u", Label: "l", Description: "d"}})
	if !errors.Is(err, ErrMarkdownConversion) {
		t.Errorf("error = %v, want ErrMarkdownConversion", err)
	}
	if err != nil && !strings.Contains(err.Error(), "link 1") {
		t.Errorf("error %q should name the link", err.Error())
	}
}
