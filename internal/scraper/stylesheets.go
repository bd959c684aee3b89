package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/pkg/utils"
)

// maxImportDepth bounds recursive @import resolution so circular or
// pathological import chains terminate.
const maxImportDepth = 5

var importRe = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]?([^'")\s;]+)['"]?\s*\)?[^;]*;`)

// StylesheetInliner fetches every external stylesheet referenced by a
// document, follows @import chains, and inlines the combined CSS as one
// <style> block so downstream extraction sees a single style surface.
type StylesheetInliner struct {
	renderer repository.RendererRepository
}

func NewStylesheetInliner(renderer repository.RendererRepository) *StylesheetInliner {
	return &StylesheetInliner{renderer: renderer}
}

// Inline mutates doc: <link rel="stylesheet"> elements are replaced by an
// equivalent merged <style> block appended to <head>. Google Fonts links
// are kept in place for the font extractor. Individual stylesheet
// failures are non-fatal; a failed sheet contributes empty text.
func (s *StylesheetInliner) Inline(ctx context.Context, doc *goquery.Document, base *url.URL) {
	links := doc.Find(`link[rel="stylesheet"]`)
	if links.Length() == 0 {
		return
	}

	var sheetURLs []string
	links.Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if resolved := resolveStylesheetURL(base, href); resolved != "" {
			sheetURLs = append(sheetURLs, resolved)
		}
	})

	// Sibling sheets are fetched concurrently; the inlined order follows
	// discovery order, not completion order.
	results := make([]string, len(sheetURLs))
	var wg sync.WaitGroup
	for i, sheetURL := range sheetURLs {
		wg.Add(1)
		go func(i int, sheetURL string) {
			defer wg.Done()
			results[i] = s.fetchCSS(ctx, sheetURL, 0)
		}(i, sheetURL)
	}
	wg.Wait()

	var merged []string
	for _, css := range results {
		if strings.TrimSpace(css) != "" {
			merged = append(merged, css)
		}
	}

	// Google Fonts links stay in the document: the font extractor reads
	// family names from the link's query even when the CSS fetch itself
	// contributes nothing.
	links.Each(func(i int, sel *goquery.Selection) {
		if !strings.Contains(sel.AttrOr("href", ""), "fonts.googleapis.com") {
			sel.Remove()
		}
	})
	if len(merged) > 0 {
		doc.Find("head").First().AppendHtml(fmt.Sprintf("<style>\n%s\n</style>", strings.Join(merged, "\n")))
	}
}

// fetchCSS fetches one stylesheet and inlines its @import chain, imports
// first, up to maxImportDepth levels deep.
func (s *StylesheetInliner) fetchCSS(ctx context.Context, cssURL string, depth int) string {
	if depth > maxImportDepth {
		slog.Warn("Stylesheet import depth exceeded, skipping", "url", cssURL, "depth", depth)
		return ""
	}

	rendered, err := s.renderer.FetchRendered(ctx, cssURL, false)
	if err != nil {
		slog.Warn("Failed to fetch stylesheet, continuing without it", "url", cssURL, "error", err)
		return ""
	}
	css := rendered.HTML

	sheetBase, err := url.Parse(cssURL)
	if err != nil {
		return css
	}

	matches := importRe.FindAllStringSubmatch(css, -1)
	if len(matches) == 0 {
		return css
	}

	var imported []string
	for _, m := range matches {
		importURL := utils.ResolveURL(sheetBase, m[1])
		if importURL == "" {
			continue
		}
		if text := s.fetchCSS(ctx, importURL, depth+1); text != "" {
			imported = append(imported, text)
		}
	}

	stripped := importRe.ReplaceAllString(css, "")
	if len(imported) == 0 {
		return stripped
	}
	return strings.Join(imported, "\n") + "\n" + stripped
}

// resolveStylesheetURL resolves a stylesheet href to an absolute URL.
// Sandboxed container paths (anything carrying an `assets` path segment
// under a container prefix) are rebased onto the site origin starting at
// that segment.
func resolveStylesheetURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") && !strings.HasPrefix(href, "//") {
		if idx := assetSegmentIndex(href); idx >= 0 {
			return utils.ResolveURL(base, "/"+href[idx:])
		}
	}
	return utils.ResolveURL(base, href)
}

// assetSegmentIndex returns the byte offset of the first "assets" path
// segment in href, or -1.
func assetSegmentIndex(href string) int {
	trimmed := strings.TrimPrefix(href, "/")
	offset := len(href) - len(trimmed)
	parts := strings.Split(trimmed, "/")
	pos := 0
	for _, part := range parts {
		if part == "assets" {
			return offset + pos
		}
		pos += len(part) + 1
	}
	return -1
}
