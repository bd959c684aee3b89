package scrapingbee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/pkg/utils"
)

const (
	defaultBaseURL = "https://app.scrapingbee.com/api/v1/"

	// maxRetries is the number of additional attempts after the first
	// failed fetch. Quota exhaustion is never retried.
	maxRetries = 2

	// quotaMarker is the literal substring ScrapingBee places in error
	// bodies once the account's call quota is spent.
	quotaMarker = "API calls limit reached"
)

// Config holds everything the client needs at construction time.
type Config struct {
	APIKey    string
	BaseURL   string
	TimeoutMS int
	WaitMS    int

	// RetryBackoff is the base backoff unit between attempts; the wait
	// grows linearly with the attempt number. Defaults to 2s.
	RetryBackoff time.Duration

	HTTPClient *http.Client
}

// Client fetches rendered HTML through the ScrapingBee rendering proxy.
// It implements repository.RendererRepository.
type Client struct {
	apiKey       string
	baseURL      string
	timeoutMS    int
	waitMS       int
	retryBackoff time.Duration
	httpClient   *http.Client
}

// New validates the configuration and constructs a Client. A missing API
// key fails immediately rather than on first use.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("scrapingbee: missing API key: %w", repository.ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TimeoutMS <= 0 {
		cfg.TimeoutMS = 20000
	}
	if cfg.WaitMS <= 0 {
		cfg.WaitMS = 2500
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutMS+10000) * time.Millisecond}
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		timeoutMS:    cfg.TimeoutMS,
		waitMS:       cfg.WaitMS,
		retryBackoff: cfg.RetryBackoff,
		httpClient:   cfg.HTTPClient,
	}, nil
}

// FetchRendered fetches rawURL through the proxy, optionally executing
// JavaScript. It retries transient failures with linearly increasing
// backoff and fails immediately on quota exhaustion.
func (c *Client) FetchRendered(ctx context.Context, rawURL string, renderJS bool) (*entity.RenderedPage, error) {
	if !utils.IsAbsoluteURL(rawURL) {
		return nil, fmt.Errorf("scrapingbee: target %q is not an absolute URL: %w", rawURL, repository.ErrInvalidInput)
	}

	requestURL := c.buildRequestURL(rawURL, renderJS)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retryBackoff * time.Duration(attempt)
			slog.Warn("Retrying rendering proxy fetch", "url", rawURL, "attempt", attempt, "wait", wait.String())
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		html, err := c.doFetch(ctx, requestURL)
		if err == nil {
			return &entity.RenderedPage{HTML: html, Retries: attempt}, nil
		}
		if errors.Is(err, repository.ErrQuotaExhausted) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("scrapingbee: fetch of %s failed after %d attempts: %w", rawURL, maxRetries+1, lastErr)
}

func (c *Client) doFetch(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w: %w", err, repository.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read proxy response: %w: %w", err, repository.ErrUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		if strings.Contains(string(body), quotaMarker) {
			return "", fmt.Errorf("scrapingbee: %s: %w", quotaMarker, repository.ErrQuotaExhausted)
		}
		return "", fmt.Errorf("proxy returned status %d: %w", resp.StatusCode, repository.ErrUpstream)
	}

	return string(body), nil
}

func (c *Client) buildRequestURL(target string, renderJS bool) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("url", target)
	params.Set("render_js", strconv.FormatBool(renderJS))
	params.Set("premium_proxy", "true")
	params.Set("block_ads", "true")
	params.Set("block_resources", "false")
	params.Set("country_code", "us")
	params.Set("device", "desktop")
	params.Set("timeout", strconv.Itoa(c.timeoutMS))
	if renderJS {
		params.Set("wait", strconv.Itoa(c.waitMS))
	}
	return c.baseURL + "?" + params.Encode()
}
