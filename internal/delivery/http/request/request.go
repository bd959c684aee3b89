package request

type ScrapeRequest struct {
	URL       string `json:"url"`
	ProjectID string `json:"project_id"`
	Brand     string `json:"brand,omitempty"`
	// Force bypasses the render cache and fetches the page fresh.
	Force bool `json:"force,omitempty"`
}

type GenerateRequest struct {
	Prompt       string               `json:"prompt"`
	StyleProfile *StyleProfilePayload `json:"style_profile,omitempty"`
}

type UpdateRequest struct {
	Prompt       string               `json:"prompt"`
	StyleProfile *StyleProfilePayload `json:"style_profile,omitempty"`
	CurrentHTML  string               `json:"current_html"`
}

// StyleProfilePayload mirrors entity.StyleProfile for inbound JSON; it is
// converted by the handler rather than binding entities to the wire.
type StyleProfilePayload struct {
	Colors          []string           `json:"colors"`
	Fonts           []string           `json:"fonts"`
	Images          []string           `json:"images"`
	Logo            string             `json:"logo,omitempty"`
	MetaDescription string             `json:"meta_description,omitempty"`
	Headings        []string           `json:"headings,omitempty"`
	Styles          StyleTokensPayload `json:"styles"`
}

// StyleTokensPayload mirrors entity.StyleTokens.
type StyleTokensPayload struct {
	Spacing      string              `json:"spacing,omitempty"`
	BorderRadius string              `json:"border_radius,omitempty"`
	Layout       LayoutTokensPayload `json:"layout"`
	ButtonStyles []string            `json:"button_styles,omitempty"`
	HeaderStyles []string            `json:"header_styles,omitempty"`
	Gradients    []string            `json:"gradients,omitempty"`
	Shadows      []string            `json:"shadows,omitempty"`
}

// LayoutTokensPayload mirrors entity.LayoutTokens.
type LayoutTokensPayload struct {
	MaxWidth         string `json:"max_width,omitempty"`
	ContainerPadding string `json:"container_padding,omitempty"`
	GridGap          string `json:"grid_gap,omitempty"`
}
