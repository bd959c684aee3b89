package chromedp_renderer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/pkg/utils"
)

// Renderer is a local headless-Chrome implementation of
// repository.RendererRepository, used when no rendering-proxy quota is
// available (RENDER_BACKEND=local). Non-JS fetches (stylesheets) go
// through a plain HTTP client instead of a browser session.
type Renderer struct {
	allocatorPool *sync.Pool
	httpClient    *http.Client
	timeout       time.Duration
}

// New creates a renderer with a pool of pre-warmed Chrome allocators.
func New(poolSize int, pageLoadTimeout time.Duration) (*Renderer, error) {
	if poolSize <= 0 {
		poolSize = 2
	}
	if pageLoadTimeout <= 0 {
		pageLoadTimeout = 60 * time.Second
	}

	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36`),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < poolSize; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &Renderer{
		allocatorPool: pool,
		httpClient:    &http.Client{Timeout: pageLoadTimeout},
		timeout:       pageLoadTimeout,
	}, nil
}

// FetchRendered fetches rawURL, driving a browser session when renderJS
// is true and a plain GET otherwise.
func (r *Renderer) FetchRendered(ctx context.Context, rawURL string, renderJS bool) (*entity.RenderedPage, error) {
	if !utils.IsAbsoluteURL(rawURL) {
		return nil, fmt.Errorf("renderer: target %q is not an absolute URL: %w", rawURL, repository.ErrInvalidInput)
	}

	if !renderJS {
		return r.fetchPlain(ctx, rawURL)
	}

	allocCtx := r.allocatorPool.Get().(context.Context)
	defer r.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, r.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("renderer: browser fetch of %s failed: %w: %w", rawURL, err, repository.ErrUpstream)
	}

	return &entity.RenderedPage{HTML: html}, nil
}

func (r *Renderer) fetchPlain(ctx context.Context, rawURL string) (*entity.RenderedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("renderer: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,text/css,application/xhtml+xml,*/*;q=0.8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer: fetch of %s failed: %w: %w", rawURL, err, repository.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer: fetch of %s returned status %d: %w", rawURL, resp.StatusCode, repository.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("renderer: read body: %w: %w", err, repository.ErrUpstream)
	}

	return &entity.RenderedPage{HTML: string(body)}, nil
}
