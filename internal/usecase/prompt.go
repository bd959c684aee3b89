package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/stylegen-service/internal/entity"
)

// BuildPrompt assembles the constrained generation prompt: the extracted
// style guide, the fixed structural requirements, and the caller's
// free-text instructions.
func BuildPrompt(instructions string, profile *entity.StyleProfile) string {
	var b strings.Builder

	b.WriteString("Build a complete single-page landing page as one self-contained HTML document with embedded CSS.\n\n")
	writeStyleGuide(&b, profile)
	writeRequirements(&b)

	b.WriteString("USER INSTRUCTIONS:\n")
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nRespond with the HTML document only.")
	return b.String()
}

// BuildUpdatePrompt assembles the prompt for modifying an existing page
// while keeping it inside the same style guide.
func BuildUpdatePrompt(instructions string, profile *entity.StyleProfile, currentHTML string) string {
	var b strings.Builder

	b.WriteString("Update the landing page below according to the user instructions. ")
	b.WriteString("Keep everything not mentioned in the instructions unchanged, and keep the page inside the style guide.\n\n")
	writeStyleGuide(&b, profile)
	writeRequirements(&b)

	b.WriteString("CURRENT PAGE HTML:\n")
	b.WriteString(currentHTML)
	b.WriteString("\n\nUSER INSTRUCTIONS:\n")
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nRespond with the complete updated HTML document only.")
	return b.String()
}

func writeStyleGuide(b *strings.Builder, profile *entity.StyleProfile) {
	if profile == nil {
		return
	}

	b.WriteString("STYLE GUIDE: use these exact values. Do not introduce any color, font, or image that is not listed here.\n")
	if len(profile.Colors) > 0 {
		fmt.Fprintf(b, "- Color palette: %s\n", strings.Join(profile.Colors, ", "))
	}
	if len(profile.Fonts) > 0 {
		fmt.Fprintf(b, "- Fonts: %s\n", strings.Join(profile.Fonts, ", "))
	}
	if profile.Logo != "" {
		fmt.Fprintf(b, "- Logo (display in the header): %s\n", profile.Logo)
	}
	if len(profile.Images) > 0 {
		fmt.Fprintf(b, "- Images (use only these URLs): %s\n", strings.Join(profile.Images, ", "))
	}
	if len(profile.Headings) > 0 {
		fmt.Fprintf(b, "- Headings seen on the reference site, for tone: %s\n", strings.Join(profile.Headings, " | "))
	}
	if profile.MetaDescription != "" {
		fmt.Fprintf(b, "- Reference site description: %s\n", profile.MetaDescription)
	}

	s := profile.Styles
	if s.Spacing != "" {
		fmt.Fprintf(b, "- Base spacing: %s\n", s.Spacing)
	}
	if s.BorderRadius != "" {
		fmt.Fprintf(b, "- Border radius: %s\n", s.BorderRadius)
	}
	if s.Layout.MaxWidth != "" {
		fmt.Fprintf(b, "- Content max width: %s\n", s.Layout.MaxWidth)
	}
	if s.Layout.ContainerPadding != "" {
		fmt.Fprintf(b, "- Container padding: %s\n", s.Layout.ContainerPadding)
	}
	if s.Layout.GridGap != "" {
		fmt.Fprintf(b, "- Grid gap: %s\n", s.Layout.GridGap)
	}
	if len(s.ButtonStyles) > 0 {
		fmt.Fprintf(b, "- Button CSS from the reference site: %s\n", strings.Join(s.ButtonStyles, " / "))
	}
	if len(s.HeaderStyles) > 0 {
		fmt.Fprintf(b, "- Header CSS from the reference site: %s\n", strings.Join(s.HeaderStyles, " / "))
	}
	if len(s.Gradients) > 0 {
		fmt.Fprintf(b, "- Gradients: %s\n", strings.Join(s.Gradients, " / "))
	}
	if len(s.Shadows) > 0 {
		fmt.Fprintf(b, "- Shadows: %s\n", strings.Join(s.Shadows, " / "))
	}
	b.WriteString("\n")
}

func writeRequirements(b *strings.Builder) {
	fmt.Fprintf(b, `REQUIREMENTS:
1. Responsive, semantic HTML5 (header, main, section, footer) with embedded CSS.
2. Hover states on all links and buttons.
3. Accessible markup: alt text on every image, labelled form controls, sufficient contrast.
4. The footer copyright year is %d.
5. The header contains only the logo or site name; no other navigation links.
6. Where the instructions leave content unspecified, write short realistic placeholder copy; never use lorem ipsum.
7. At least five sections, including a hero, a features section, and a call to action.

`, time.Now().Year())
}
