package entity

// Bounds applied to every StyleProfile returned by the scraper.
const (
	MaxColors   = 5
	MaxFonts    = 3
	MaxImages   = 5
	MaxHeadings = 6
)

// LayoutTokens holds coarse layout measurements lifted from the site's CSS.
type LayoutTokens struct {
	MaxWidth         string `json:"max_width,omitempty"`
	ContainerPadding string `json:"container_padding,omitempty"`
	GridGap          string `json:"grid_gap,omitempty"`
}

// StyleTokens captures secondary visual tokens beyond colors and fonts.
type StyleTokens struct {
	Spacing      string       `json:"spacing,omitempty"`
	BorderRadius string       `json:"border_radius,omitempty"`
	Layout       LayoutTokens `json:"layout"`
	ButtonStyles []string     `json:"button_styles,omitempty"`
	HeaderStyles []string     `json:"header_styles,omitempty"`
	Gradients    []string     `json:"gradients,omitempty"`
	Shadows      []string     `json:"shadows,omitempty"`
}

// IsEmpty reports whether no token was extracted at all.
func (s StyleTokens) IsEmpty() bool {
	return s.Spacing == "" && s.BorderRadius == "" &&
		s.Layout.MaxWidth == "" && s.Layout.ContainerPadding == "" && s.Layout.GridGap == "" &&
		len(s.ButtonStyles) == 0 && len(s.HeaderStyles) == 0 &&
		len(s.Gradients) == 0 && len(s.Shadows) == 0
}

// StyleProfile is the normalized visual identity of a scraped website.
// Every URL field is either absolute (http/https) or empty; relative and
// data: URLs never survive extraction. Immutable once returned by the
// scrape use case.
type StyleProfile struct {
	Colors          []string    `json:"colors"`
	Fonts           []string    `json:"fonts"`
	Images          []string    `json:"images"`
	Logo            string      `json:"logo,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	Headings        []string    `json:"headings,omitempty"`
	Styles          StyleTokens `json:"styles"`
}

// DefaultStyleProfile returns a fresh copy of the built-in profile used
// whenever scraping fails or a category yields nothing usable.
func DefaultStyleProfile() *StyleProfile {
	return &StyleProfile{
		Colors: []string{"#6366f1", "#8b5cf6", "#0f172a", "#f8fafc", "#22d3ee"},
		Fonts:  []string{"Inter", "system-ui", "sans-serif"},
		Images: FallbackImages(),
		Styles: StyleTokens{
			Spacing:      "2rem",
			BorderRadius: "0.75rem",
			Layout: LayoutTokens{
				MaxWidth:         "1200px",
				ContainerPadding: "1.5rem",
				GridGap:          "2rem",
			},
		},
	}
}

// FallbackImages returns the fixed image list substituted when extraction
// finds no usable imagery. Order is significant.
func FallbackImages() []string {
	return []string{
		"https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&w=1200&q=80",
		"https://images.unsplash.com/photo-1551434678-e076c223a692?auto=format&fit=crop&w=1200&q=80",
		"https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=1200&q=80",
	}
}
