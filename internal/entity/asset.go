package entity

import "time"

// AssetType distinguishes the kinds of stored project assets.
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeLogo  AssetType = "logo"
	AssetTypeFont  AssetType = "font"
)

// Asset mirrors the `assets` PostgreSQL table schema. One record is
// created per image or logo URL accepted for a project.
type Asset struct {
	ID        int64
	ProjectID string
	Type      AssetType
	URL       string
	CreatedAt time.Time
}
