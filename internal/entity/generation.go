package entity

// GenerationResult is the outcome of one text-to-HTML generation call.
// HTML is always populated: either model output or the deterministic
// fallback template. Err carries the last provider error, if any.
type GenerationResult struct {
	HTML string `json:"html"`
	Err  string `json:"error,omitempty"`
}

// RenderedPage is the outcome of fetching a URL through a renderer
// backend. Retries counts internal HTTP retries spent on the fetch.
type RenderedPage struct {
	HTML    string
	Retries int
}
