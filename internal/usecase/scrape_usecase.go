package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/internal/scraper"
	"github.com/user/stylegen-service/pkg/metrics"
)

// StyleScraper defines the interface for the end-to-end style extraction
// pipeline. Scrape never fails outward: any internal failure yields the
// built-in default profile and a failure log entry.
type StyleScraper interface {
	// Scrape extracts the style profile of rawURL. force bypasses the
	// render cache and fetches fresh.
	Scrape(ctx context.Context, rawURL, projectID, brand string, force bool) *entity.StyleProfile
}

type scrapeUseCase struct {
	renderer repository.RendererRepository
	cache    repository.RenderCacheRepository
	inliner  *scraper.StylesheetInliner
	assets   AssetStore
	logRepo  repository.ScrapingLogRepository
	projects repository.ProjectRepository
	cacheTTL time.Duration
}

// NewStyleScraper creates the scrape orchestrator. cache and projects may
// be nil; both are best-effort collaborators.
func NewStyleScraper(
	renderer repository.RendererRepository,
	inliner *scraper.StylesheetInliner,
	assets AssetStore,
	logRepo repository.ScrapingLogRepository,
	projects repository.ProjectRepository,
	cache repository.RenderCacheRepository,
	cacheTTL time.Duration,
) StyleScraper {
	return &scrapeUseCase{
		renderer: renderer,
		cache:    cache,
		inliner:  inliner,
		assets:   assets,
		logRepo:  logRepo,
		projects: projects,
		cacheTTL: cacheTTL,
	}
}

// Scrape runs fetch → inline → extract → store for one target URL, timing
// the whole operation and writing exactly one audit entry. The returned
// profile is always usable; on any failure it is the pure default profile.
func (uc *scrapeUseCase) Scrape(ctx context.Context, rawURL, projectID, brand string, force bool) *entity.StyleProfile {
	start := time.Now()
	entry := &entity.ScrapingLogEntry{URL: rawURL, Timestamp: start}

	profile, err := uc.scrape(ctx, rawURL, projectID, brand, force, entry)
	if err != nil {
		profile = entity.DefaultStyleProfile()
		entry.Success = false
		entry.UsingDefaultStyles = true
		entry.Errors = append(entry.Errors, err.Error())
		metrics.ScrapesTotal.WithLabelValues("failure", classifyScrapeError(err)).Inc()

		if errors.Is(err, repository.ErrQuotaExhausted) {
			slog.Error("Rendering proxy quota exhausted, returning default profile", "url", rawURL)
		} else {
			slog.Error("Scrape failed, returning default profile", "url", rawURL, "error", err)
		}
	} else {
		entry.Success = true
		metrics.ScrapesTotal.WithLabelValues("success", "").Inc()

		if projectID != "" && uc.projects != nil {
			if err := uc.projects.SaveStyleProfile(ctx, projectID, profile); err != nil {
				slog.Warn("Failed to persist style profile on project", "project_id", projectID, "error", err)
			}
		}
	}

	duration := time.Since(start)
	entry.DurationMS = duration.Milliseconds()
	metrics.ScrapeDuration.WithLabelValues(domainOf(rawURL)).Observe(duration.Seconds())

	if uc.logRepo != nil {
		if err := uc.logRepo.Save(ctx, entry); err != nil {
			slog.Error("Failed to write scraping log entry", "url", rawURL, "error", err)
		}
	}

	slog.Info("Scrape finished",
		"url", rawURL,
		"success", entry.Success,
		"duration_ms", entry.DurationMS,
		"retries", entry.Retries,
		"using_default_styles", entry.UsingDefaultStyles,
	)
	return profile
}

func (uc *scrapeUseCase) scrape(ctx context.Context, rawURL, projectID, brand string, force bool, entry *entity.ScrapingLogEntry) (*entity.StyleProfile, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("target %q is not an absolute URL: %w", rawURL, repository.ErrInvalidInput)
	}

	html, retries, err := uc.fetchDocument(ctx, rawURL, force)
	if err != nil {
		return nil, err
	}
	entry.Retries = retries

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	uc.inliner.Inline(ctx, doc, base)

	logo := scraper.ExtractLogo(doc, base, brand)
	images := scraper.ExtractImages(doc, base, logo)
	colors := scraper.ExtractColors(doc)
	fonts := scraper.ExtractFonts(doc)
	tokens := scraper.ExtractStyleTokens(doc)

	images, logo = uc.assets.Store(ctx, projectID, images, logo)

	// Extracted values win over the defaults wherever extraction yielded
	// anything; the default fills the gaps.
	profile := entity.DefaultStyleProfile()
	if len(colors) > 0 {
		profile.Colors = colors
	}
	if len(fonts) > 0 {
		profile.Fonts = fonts
	}
	if len(images) > 0 {
		profile.Images = images
	}
	profile.Logo = logo
	profile.MetaDescription = scraper.ExtractMetaDescription(doc)
	profile.Headings = scraper.ExtractHeadings(doc)
	if !tokens.IsEmpty() {
		profile.Styles = tokens
	}

	entry.AssetsFound = entity.AssetsFound{
		Colors: len(profile.Colors),
		Fonts:  len(profile.Fonts),
		Images: len(profile.Images),
		Logo:   logo != "",
		Styles: !tokens.IsEmpty(),
	}

	return profile, nil
}

// fetchDocument consults the render cache before going to the renderer
// backend; cache failures are non-fatal. force skips the lookup but the
// fresh result is still stored.
func (uc *scrapeUseCase) fetchDocument(ctx context.Context, rawURL string, force bool) (string, int, error) {
	if uc.cache != nil && !force {
		html, hit, err := uc.cache.Get(ctx, rawURL, true)
		if err != nil {
			slog.Warn("Render cache lookup failed", "url", rawURL, "error", err)
		} else if hit {
			slog.Debug("Render cache hit", "url", rawURL)
			return html, 0, nil
		}
	}

	rendered, err := uc.renderer.FetchRendered(ctx, rawURL, true)
	if err != nil {
		return "", 0, err
	}

	if uc.cache != nil && uc.cacheTTL > 0 {
		if err := uc.cache.Set(ctx, rawURL, true, rendered.HTML, uc.cacheTTL); err != nil {
			slog.Warn("Render cache store failed", "url", rawURL, "error", err)
		}
	}

	return rendered.HTML, rendered.Retries, nil
}

func classifyScrapeError(err error) string {
	switch {
	case errors.Is(err, repository.ErrQuotaExhausted):
		return "quota_exhausted"
	case errors.Is(err, repository.ErrInvalidInput):
		return "invalid_input"
	default:
		return "upstream"
	}
}

func domainOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return "unknown"
}
