package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/pkg/utils"
)

// knownImageHosts are CDNs whose URLs are accepted even without a
// recognizable image extension in the path.
var knownImageHosts = []string{
	"images.unsplash.com",
	"res.cloudinary.com",
	"imgix.net",
	"cdn.shopify.com",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg", ".avif"}

// unsplashParams are appended to Unsplash URLs that carry no sizing query.
const unsplashParams = "auto=format&fit=crop&w=1200&q=80"

// AssetStore validates extracted image/logo URLs, records accepted ones
// as project assets, and substitutes fallback imagery when nothing
// usable survives validation.
type AssetStore interface {
	// Store returns the accepted image list (original order) and logo.
	// The returned image list is never empty. Asset rows are written
	// only when projectID is non-empty.
	Store(ctx context.Context, projectID string, images []string, logo string) ([]string, string)
}

type assetStoreUseCase struct {
	assetRepo repository.AssetRepository
}

// NewAssetStore creates the asset persistence use case.
func NewAssetStore(assetRepo repository.AssetRepository) AssetStore {
	return &assetStoreUseCase{assetRepo: assetRepo}
}

func (uc *assetStoreUseCase) Store(ctx context.Context, projectID string, images []string, logo string) ([]string, string) {
	storedLogo := normalizeAssetURL(logo)

	accepted := make([]string, 0, len(images))
	for _, img := range images {
		if u := normalizeAssetURL(img); u != "" {
			accepted = append(accepted, u)
		}
	}

	// Record asset rows concurrently; a failure on one asset never
	// aborts its siblings. Project-less scrapes have no row to attach
	// assets to, so nothing is recorded.
	if projectID != "" {
		var wg sync.WaitGroup
		record := func(assetType entity.AssetType, assetURL string) {
			defer wg.Done()
			if err := uc.assetRepo.CreateAssetRecord(ctx, projectID, assetType, assetURL); err != nil {
				slog.Warn("Failed to record asset, continuing", "project_id", projectID, "type", assetType, "url", assetURL, "error", err)
			}
		}
		if storedLogo != "" {
			wg.Add(1)
			go record(entity.AssetTypeLogo, storedLogo)
		}
		for _, img := range accepted {
			wg.Add(1)
			go record(entity.AssetTypeImage, img)
		}
		wg.Wait()
	}

	if len(accepted) == 0 {
		slog.Info("No usable images extracted, substituting fallback imagery", "project_id", projectID)
		accepted = entity.FallbackImages()
	}

	return accepted, storedLogo
}

// normalizeAssetURL validates one candidate URL. data: URLs and anything
// that is not an absolute http(s) URL are rejected; Unsplash URLs pass
// through with sizing parameters appended when absent; other URLs must
// carry a recognized image extension or live on a known image CDN.
func normalizeAssetURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return ""
	}
	if !utils.IsAbsoluteURL(raw) {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)

	if strings.Contains(host, "unsplash.com") {
		if u.RawQuery == "" {
			return raw + "?" + unsplashParams
		}
		return raw
	}

	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return raw
		}
	}
	for _, known := range knownImageHosts {
		if strings.HasSuffix(host, known) || host == known {
			return raw
		}
	}
	return ""
}
