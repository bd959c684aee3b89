package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stylegen-service/internal/entity"
)

func TestNormalizeAssetURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"image extension", "https://acme.example.com/hero.jpg", "https://acme.example.com/hero.jpg"},
		{"webp extension", "https://acme.example.com/a.webp", "https://acme.example.com/a.webp"},
		{"data url", "data:image/png;base64,AAAA", ""},
		{"relative path", "/img/hero.jpg", ""},
		{"no extension unknown host", "https://acme.example.com/api/render", ""},
		{"known cdn without extension", "https://res.cloudinary.com/demo/image/upload/sample", "https://res.cloudinary.com/demo/image/upload/sample"},
		{"unsplash without query", "https://images.unsplash.com/photo-123", "https://images.unsplash.com/photo-123?auto=format&fit=crop&w=1200&q=80"},
		{"unsplash with query", "https://images.unsplash.com/photo-123?w=400", "https://images.unsplash.com/photo-123?w=400"},
		{"empty", "", ""},
		{"whitespace", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeAssetURL(tt.raw))
		})
	}
}

func TestStoreRecordsAcceptedAssets(t *testing.T) {
	repo := &memAssetRepo{}
	store := NewAssetStore(repo)

	images, logo := store.Store(context.Background(), "proj-1",
		[]string{
			"https://acme.example.com/hero.jpg",
			"data:image/png;base64,AAAA",
			"https://acme.example.com/team.png",
		},
		"https://acme.example.com/logo.svg",
	)

	assert.Equal(t, []string{
		"https://acme.example.com/hero.jpg",
		"https://acme.example.com/team.png",
	}, images)
	assert.Equal(t, "https://acme.example.com/logo.svg", logo)

	records := repo.recorded()
	require.Len(t, records, 3)
	var imageCount, logoCount int
	for _, r := range records {
		assert.Equal(t, "proj-1", r.projectID)
		switch r.assetType {
		case entity.AssetTypeImage:
			imageCount++
		case entity.AssetTypeLogo:
			logoCount++
			assert.Equal(t, "https://acme.example.com/logo.svg", r.url)
		}
	}
	assert.Equal(t, 2, imageCount)
	assert.Equal(t, 1, logoCount)
}

func TestStoreSubstitutesFallbackImagery(t *testing.T) {
	repo := &memAssetRepo{}
	store := NewAssetStore(repo)

	images, logo := store.Store(context.Background(), "proj-1",
		[]string{"data:image/png;base64,AAAA", "/relative.jpg"}, "")

	assert.Equal(t, entity.FallbackImages(), images)
	assert.Equal(t, "", logo)
	assert.Empty(t, repo.recorded(), "rejected candidates must not be recorded")
}

func TestStoreWithoutProjectRecordsNothing(t *testing.T) {
	repo := &memAssetRepo{}
	store := NewAssetStore(repo)

	images, logo := store.Store(context.Background(), "",
		[]string{"https://acme.example.com/hero.jpg"},
		"https://acme.example.com/logo.png",
	)

	assert.Equal(t, []string{"https://acme.example.com/hero.jpg"}, images)
	assert.Equal(t, "https://acme.example.com/logo.png", logo)
	assert.Empty(t, repo.recorded(), "assets need an owning project row")
}

func TestStoreRecordFailureIsNonFatal(t *testing.T) {
	repo := &memAssetRepo{err: errors.New("connection refused")}
	store := NewAssetStore(repo)

	images, logo := store.Store(context.Background(), "proj-1",
		[]string{"https://acme.example.com/hero.jpg"},
		"https://acme.example.com/logo.png",
	)

	assert.Equal(t, []string{"https://acme.example.com/hero.jpg"}, images)
	assert.Equal(t, "https://acme.example.com/logo.png", logo)
}

func TestStoreRejectsDataURLLogo(t *testing.T) {
	store := NewAssetStore(&memAssetRepo{})

	_, logo := store.Store(context.Background(), "proj-1",
		[]string{"https://acme.example.com/hero.jpg"}, "data:image/svg+xml;base64,AAAA")

	assert.Equal(t, "", logo)
}
