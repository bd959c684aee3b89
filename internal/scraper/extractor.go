package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/pkg/utils"
)

// Pure extraction heuristics over a parsed document. No network access;
// the document is expected to already have its stylesheets inlined.

var (
	hexColorRe   = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	rgbColorRe   = regexp.MustCompile(`rgba?\([^)]*\)`)
	fontFamilyRe = regexp.MustCompile(`font-family\s*:\s*([^;}]+)`)
	bgImageRe    = regexp.MustCompile(`background(?:-image)?\s*:[^;}]*url\(\s*['"]?([^'")]+)['"]?\s*\)`)
	imageExtRe   = regexp.MustCompile(`\.(jpe?g|png|webp)(\?|$)`)
)

// squareIconSizes are the common square logo dimensions checked by the
// brand-qualified icon strategy.
var squareIconSizes = []int{32, 64, 100, 128, 200}

// genericFontNames are font-family values that name a system fallback
// rather than a brand typeface.
var genericFontNames = map[string]bool{
	"inherit":            true,
	"initial":            true,
	"unset":              true,
	"sans-serif":         true,
	"serif":              true,
	"monospace":          true,
	"cursive":            true,
	"fantasy":            true,
	"system-ui":          true,
	"-apple-system":      true,
	"blinkmacsystemfont": true,
}

// ExtractLogo finds the brand logo via ranked strategies evaluated in
// order, first match wins. A brand hint prioritizes brand-qualified
// matches over generic "logo"-named images. Returns an absolute URL or "".
func ExtractLogo(doc *goquery.Document, base *url.URL, brand string) string {
	type strategy func() string

	brand = strings.ToLower(strings.TrimSpace(brand))

	var strategies []strategy
	if brand != "" {
		strategies = append(strategies,
			func() string { return findBrandNamedLogo(doc, base, brand) },
			func() string { return findHeaderImageContaining(doc, base, brand) },
			func() string { return findBrandSquareIcon(doc, base, brand) },
		)
	}
	strategies = append(strategies,
		func() string { return findHeaderImageContaining(doc, base, "logo", "brand") },
		func() string { return findAnyImageContaining(doc, base, "logo", "brand") },
		func() string { return findHeaderSquareImage(doc, base) },
	)

	for _, s := range strategies {
		if logo := s(); logo != "" {
			return logo
		}
	}
	return ""
}

func findBrandNamedLogo(doc *goquery.Document, base *url.URL, brand string) string {
	variants := []string{
		brand + "-logo", "logo-" + brand,
		brand + "_logo", "logo_" + brand,
		brand + "logo",
	}
	return firstImage(doc.Find("img"), base, func(sel *goquery.Selection, src string) bool {
		hay := strings.ToLower(src + " " + sel.AttrOr("alt", ""))
		for _, v := range variants {
			if strings.Contains(hay, v) {
				return true
			}
		}
		return false
	})
}

func findHeaderImageContaining(doc *goquery.Document, base *url.URL, tokens ...string) string {
	return firstImage(doc.Find("header img, nav img"), base, func(sel *goquery.Selection, src string) bool {
		return containsAny(strings.ToLower(src+" "+sel.AttrOr("alt", "")), tokens)
	})
}

func findAnyImageContaining(doc *goquery.Document, base *url.URL, tokens ...string) string {
	return firstImage(doc.Find("img"), base, func(sel *goquery.Selection, src string) bool {
		return containsAny(strings.ToLower(src+" "+sel.AttrOr("alt", "")), tokens)
	})
}

func findBrandSquareIcon(doc *goquery.Document, base *url.URL, brand string) string {
	return firstImage(doc.Find("img"), base, func(sel *goquery.Selection, src string) bool {
		if !strings.Contains(strings.ToLower(src+" "+sel.AttrOr("alt", "")), brand) {
			return false
		}
		w, h := imageDimensions(sel)
		if w != h {
			return false
		}
		for _, size := range squareIconSizes {
			if w == size {
				return true
			}
		}
		return false
	})
}

func findHeaderSquareImage(doc *goquery.Document, base *url.URL) string {
	return firstImage(doc.Find("header img, nav img"), base, func(sel *goquery.Selection, src string) bool {
		w, h := imageDimensions(sel)
		return w > 0 && w == h && w >= 32 && w <= 200
	})
}

func firstImage(sel *goquery.Selection, base *url.URL, match func(*goquery.Selection, string) bool) string {
	var found string
	sel.EachWithBreak(func(i int, s *goquery.Selection) bool {
		src := imageSource(s)
		if src == "" || !match(s, src) {
			return true
		}
		if resolved := utils.ResolveURL(base, src); resolved != "" {
			found = resolved
			return false
		}
		return true
	})
	return found
}

// imageSource prefers src but falls back to common lazy-load attributes.
func imageSource(sel *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

func imageDimensions(sel *goquery.Selection) (int, int) {
	w, _ := strconv.Atoi(sel.AttrOr("width", ""))
	h, _ := strconv.Atoi(sel.AttrOr("height", ""))
	return w, h
}

func containsAny(hay string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(hay, t) {
			return true
		}
	}
	return false
}

// ExtractImages collects representative imagery from four ranked sources:
// hero regions, large images, feature/product/gallery containers, and
// inline background-image declarations. Results are deduplicated by
// absolute URL, logo-excluded, and capped at MaxImages in discovery order.
func ExtractImages(doc *goquery.Document, base *url.URL, logo string) []string {
	var ordered []string
	seen := map[string]bool{}

	add := func(raw string) {
		resolved := utils.ResolveURL(base, raw)
		if resolved == "" || seen[resolved] {
			return
		}
		if resolved == logo || strings.Contains(strings.ToLower(resolved), "logo") {
			return
		}
		seen[resolved] = true
		if len(ordered) < entity.MaxImages {
			ordered = append(ordered, resolved)
		}
	}

	// (a) hero-region images
	heroSelectors := `[class*="hero"] img, [id*="hero"] img, [class*="banner"] img, main > section:first-of-type img`
	doc.Find(heroSelectors).Each(func(i int, s *goquery.Selection) {
		add(imageSource(s))
	})

	// (b) large images anywhere, extension-filtered
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src := imageSource(s)
		if src == "" || !imageExtRe.MatchString(strings.ToLower(src)) {
			return
		}
		w, h := imageDimensions(s)
		if w >= 600 || h >= 400 {
			add(src)
		}
	})

	// (c) feature/product/gallery/article/section containers
	containerSelectors := `[class*="feature"] img, [class*="product"] img, [class*="gallery"] img, article img, section img`
	doc.Find(containerSelectors).Each(func(i int, s *goquery.Selection) {
		add(imageSource(s))
	})

	// (d) inline background-image URLs
	doc.Find("[style]").Each(func(i int, s *goquery.Selection) {
		style := s.AttrOr("style", "")
		for _, m := range bgImageRe.FindAllStringSubmatch(style, -1) {
			add(m[1])
		}
	})

	return ordered
}

// ExtractColors scans inline style attributes and <style> blocks for hex
// and rgb()/rgba() literals, deduplicates, and caps at MaxColors. The
// built-in default palette is returned when nothing is found.
func ExtractColors(doc *goquery.Document) []string {
	var sources []string
	doc.Find("[style]").Each(func(i int, s *goquery.Selection) {
		sources = append(sources, s.AttrOr("style", ""))
	})
	doc.Find("style").Each(func(i int, s *goquery.Selection) {
		sources = append(sources, s.Text())
	})

	var ordered []string
	seen := map[string]bool{}
	add := func(c string) {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		if len(ordered) < entity.MaxColors {
			ordered = append(ordered, c)
		}
	}

	for _, text := range sources {
		for _, m := range hexColorRe.FindAllString(text, -1) {
			add(m)
		}
		for _, m := range rgbColorRe.FindAllString(text, -1) {
			// CSS variable references inside the functional notation are
			// not concrete colors.
			if strings.Contains(m, "var(") {
				continue
			}
			add(m)
		}
	}

	if len(ordered) == 0 {
		return entity.DefaultStyleProfile().Colors
	}
	return ordered
}

// ExtractFonts pulls font families from <style> blocks and Google Fonts
// link tags, keeping the first family of each declaration, stripping
// quotes, and excluding generic fallbacks. Capped at MaxFonts; the
// default list is returned when nothing is found.
func ExtractFonts(doc *goquery.Document) []string {
	var ordered []string
	seen := map[string]bool{}
	add := func(name string) {
		name = strings.Trim(strings.TrimSpace(name), `'"`)
		if name == "" || genericFontNames[strings.ToLower(name)] {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		if len(ordered) < entity.MaxFonts {
			ordered = append(ordered, name)
		}
	}

	doc.Find("style").Each(func(i int, s *goquery.Selection) {
		for _, m := range fontFamilyRe.FindAllStringSubmatch(s.Text(), -1) {
			first := strings.SplitN(m[1], ",", 2)[0]
			add(first)
		}
	})

	doc.Find(`link[href*="fonts.googleapis.com"]`).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		// Parsed by hand: the v2 axis syntax ("wght@400;700") carries
		// semicolons, which url.Values refuses.
		for _, param := range strings.Split(u.RawQuery, "&") {
			value, ok := strings.CutPrefix(param, "family=")
			if !ok {
				continue
			}
			// Families join with "|" and append ":wght@..." axis lists;
			// both are stripped.
			for _, f := range strings.Split(value, "|") {
				name := strings.SplitN(f, ":", 2)[0]
				if unescaped, err := url.QueryUnescape(name); err == nil {
					name = unescaped
				}
				add(strings.ReplaceAll(name, "+", " "))
			}
		}
	})

	if len(ordered) == 0 {
		return entity.DefaultStyleProfile().Fonts
	}
	return ordered
}

// ExtractMetaDescription returns the content of <meta name="description">.
func ExtractMetaDescription(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
}

// ExtractHeadings collects non-empty h1/h2 text for prompt grounding.
func ExtractHeadings(doc *goquery.Document) []string {
	var headings []string
	doc.Find("h1, h2").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			headings = append(headings, text)
		}
		return len(headings) < entity.MaxHeadings
	})
	return headings
}
