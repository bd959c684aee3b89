package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/stylegen-service/internal/entity"
)

const maxRuleSamples = 4

var (
	cssRuleRe      = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	paddingRe      = regexp.MustCompile(`(?:^|[;{\s])padding\s*:\s*([^;}]+)`)
	borderRadiusRe = regexp.MustCompile(`border-radius\s*:\s*([^;}]+)`)
	maxWidthRe     = regexp.MustCompile(`max-width\s*:\s*([^;}]+)`)
	gridGapRe      = regexp.MustCompile(`(?:grid-)?gap\s*:\s*([^;}]+)`)
	gradientRe     = regexp.MustCompile(`(?:linear|radial|conic)-gradient\([^)]*\)`)
	boxShadowRe    = regexp.MustCompile(`box-shadow\s*:\s*([^;}]+)`)
)

// ExtractStyleTokens performs a best-effort scan of the document's merged
// CSS for layout tokens, button/header rule bodies, gradients and
// shadows. Every field is optional; absent values stay empty.
func ExtractStyleTokens(doc *goquery.Document) entity.StyleTokens {
	var css strings.Builder
	doc.Find("style").Each(func(i int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})
	text := css.String()

	var tokens entity.StyleTokens

	if m := paddingRe.FindStringSubmatch(text); m != nil {
		tokens.Spacing = strings.TrimSpace(m[1])
	}
	if m := borderRadiusRe.FindStringSubmatch(text); m != nil {
		tokens.BorderRadius = strings.TrimSpace(m[1])
	}
	if m := maxWidthRe.FindStringSubmatch(text); m != nil {
		tokens.Layout.MaxWidth = strings.TrimSpace(m[1])
	}
	if m := gridGapRe.FindStringSubmatch(text); m != nil {
		tokens.Layout.GridGap = strings.TrimSpace(m[1])
	}

	for _, rule := range cssRuleRe.FindAllStringSubmatch(text, -1) {
		selector := strings.ToLower(strings.TrimSpace(rule[1]))
		body := strings.TrimSpace(rule[2])
		if body == "" {
			continue
		}
		switch {
		case strings.Contains(selector, "container") && tokens.Layout.ContainerPadding == "":
			if m := paddingRe.FindStringSubmatch(body); m != nil {
				tokens.Layout.ContainerPadding = strings.TrimSpace(m[1])
			}
		case (strings.Contains(selector, "btn") || strings.Contains(selector, "button")) && len(tokens.ButtonStyles) < maxRuleSamples:
			tokens.ButtonStyles = append(tokens.ButtonStyles, body)
		case (strings.Contains(selector, "header") || strings.Contains(selector, "nav")) && len(tokens.HeaderStyles) < maxRuleSamples:
			tokens.HeaderStyles = append(tokens.HeaderStyles, body)
		}
	}

	for _, m := range gradientRe.FindAllString(text, maxRuleSamples) {
		tokens.Gradients = append(tokens.Gradients, m)
	}
	for _, m := range boxShadowRe.FindAllStringSubmatch(text, maxRuleSamples) {
		tokens.Shadows = append(tokens.Shadows, strings.TrimSpace(m[1]))
	}

	return tokens
}
