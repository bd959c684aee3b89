package entity

import "time"

// AssetsFound summarizes, per category, what a scrape attempt extracted.
type AssetsFound struct {
	Colors int  `json:"colors"`
	Fonts  int  `json:"fonts"`
	Images int  `json:"images"`
	Logo   bool `json:"logo"`
	Styles bool `json:"styles"`
}

// ScrapingLogEntry mirrors the `scraping_logs` PostgreSQL table schema.
// Exactly one entry is written per logical scrape attempt, regardless of
// internal HTTP retries. Write-only audit record, never mutated.
type ScrapingLogEntry struct {
	ID                 int64       `json:"id,omitempty"`
	URL                string      `json:"url"`
	Success            bool        `json:"success"`
	AssetsFound        AssetsFound `json:"assets_found"`
	Errors             []string    `json:"errors,omitempty"`
	DurationMS         int64       `json:"duration_ms"`
	Retries            int         `json:"retries"`
	UsingDefaultStyles bool        `json:"using_default_styles"`
	Timestamp          time.Time   `json:"timestamp"`
}
