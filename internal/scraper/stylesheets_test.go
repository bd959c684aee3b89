package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stylegen-service/internal/entity"
)

// fakeRenderer serves canned CSS bodies keyed by URL and counts fetches.
type fakeRenderer struct {
	mu     sync.Mutex
	sheets map[string]string
	calls  map[string]int
}

func newFakeRenderer(sheets map[string]string) *fakeRenderer {
	return &fakeRenderer{sheets: sheets, calls: map[string]int{}}
}

func (f *fakeRenderer) FetchRendered(ctx context.Context, rawURL string, renderJS bool) (*entity.RenderedPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[rawURL]++
	body, ok := f.sheets[rawURL]
	if !ok {
		return nil, fmt.Errorf("no such sheet: %s", rawURL)
	}
	return &entity.RenderedPage{HTML: body}, nil
}

func (f *fakeRenderer) callCount(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[rawURL]
}

func TestInlineMergesStylesheetsAndRemovesLinks(t *testing.T) {
	renderer := newFakeRenderer(map[string]string{
		"https://acme.example.com/css/a.css": ".a { color: #111; }",
		"https://acme.example.com/css/b.css": ".b { color: #222; }",
	})
	inliner := NewStylesheetInliner(renderer)

	doc := parseDoc(t, `<html><head>
		<link rel="stylesheet" href="/css/a.css">
		<link rel="stylesheet" href="/css/b.css">
	</head><body></body></html>`)

	inliner.Inline(context.Background(), doc, baseURL(t))

	assert.Equal(t, 0, doc.Find(`link[rel="stylesheet"]`).Length())
	require.Equal(t, 1, doc.Find("head style").Length())

	css := doc.Find("head style").Text()
	aIdx := indexOf(t, css, ".a { color: #111; }")
	bIdx := indexOf(t, css, ".b { color: #222; }")
	assert.Less(t, aIdx, bIdx, "sheets must be inlined in discovery order")
}

func TestInlineFollowsImportsImportsFirst(t *testing.T) {
	renderer := newFakeRenderer(map[string]string{
		"https://acme.example.com/css/main.css":  `@import url("theme.css"); .main { color: red; }`,
		"https://acme.example.com/css/theme.css": ".theme { color: blue; }",
	})
	inliner := NewStylesheetInliner(renderer)

	doc := parseDoc(t, `<html><head><link rel="stylesheet" href="/css/main.css"></head><body></body></html>`)
	inliner.Inline(context.Background(), doc, baseURL(t))

	css := doc.Find("head style").Text()
	assert.NotContains(t, css, "@import")
	themeIdx := indexOf(t, css, ".theme")
	mainIdx := indexOf(t, css, ".main")
	assert.Less(t, themeIdx, mainIdx, "imported rules must precede the importing sheet")
}

func TestInlineCircularImportTerminates(t *testing.T) {
	renderer := newFakeRenderer(map[string]string{
		"https://acme.example.com/a.css": `@import "b.css"; .a { color: red; }`,
		"https://acme.example.com/b.css": `@import "a.css"; .b { color: blue; }`,
	})
	inliner := NewStylesheetInliner(renderer)

	doc := parseDoc(t, `<html><head><link rel="stylesheet" href="/a.css"></head><body></body></html>`)
	inliner.Inline(context.Background(), doc, baseURL(t))

	css := doc.Find("head style").Text()
	assert.Contains(t, css, ".a")
	assert.Contains(t, css, ".b")
	// the cycle is cut by the depth cap, not by visited tracking
	assert.LessOrEqual(t, renderer.callCount("https://acme.example.com/a.css"), 4)
	assert.LessOrEqual(t, renderer.callCount("https://acme.example.com/b.css"), 4)
}

func TestInlineFailedSheetIsNonFatal(t *testing.T) {
	renderer := newFakeRenderer(map[string]string{
		"https://acme.example.com/good.css": ".good { color: green; }",
	})
	inliner := NewStylesheetInliner(renderer)

	doc := parseDoc(t, `<html><head>
		<link rel="stylesheet" href="/missing.css">
		<link rel="stylesheet" href="/good.css">
	</head><body></body></html>`)
	inliner.Inline(context.Background(), doc, baseURL(t))

	css := doc.Find("head style").Text()
	assert.Contains(t, css, ".good")
}

func TestInlinePreservesGoogleFontsLinks(t *testing.T) {
	renderer := newFakeRenderer(map[string]string{
		"https://acme.example.com/site.css": ".site { color: teal; }",
	})
	inliner := NewStylesheetInliner(renderer)

	doc := parseDoc(t, `<html><head>
		<link rel="stylesheet" href="/site.css">
		<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Roboto+Mono:wght@400;700&display=swap">
	</head><body></body></html>`)
	inliner.Inline(context.Background(), doc, baseURL(t))

	assert.Equal(t, 1, doc.Find(`link[href*="fonts.googleapis.com"]`).Length(),
		"font links must survive inlining for the font extractor")
	assert.Equal(t, 0, doc.Find(`link[href="/site.css"]`).Length())
	assert.Contains(t, doc.Find("head style").Text(), ".site")
}

func TestInlineNoStylesheetsIsNoop(t *testing.T) {
	inliner := NewStylesheetInliner(newFakeRenderer(nil))

	doc := parseDoc(t, `<html><head><title>x</title></head><body></body></html>`)
	inliner.Inline(context.Background(), doc, baseURL(t))

	assert.Equal(t, 0, doc.Find("head style").Length())
}

func TestResolveStylesheetURL(t *testing.T) {
	base := baseURL(t)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute", "https://cdn.x.com/site.css", "https://cdn.x.com/site.css"},
		{"root relative", "/css/site.css", "https://acme.example.com/css/site.css"},
		{"protocol relative", "//cdn.x.com/site.css", "https://cdn.x.com/site.css"},
		{"sandbox container path", "container-1234/assets/css/site.css", "https://acme.example.com/assets/css/site.css"},
		{"sandbox path with leading slash", "/tmp/build/assets/app.css", "https://acme.example.com/assets/app.css"},
		{"plain relative without assets", "css/site.css", "https://acme.example.com/css/site.css"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveStylesheetURL(base, tt.href))
		})
	}
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in inlined CSS", needle)
	return idx
}
