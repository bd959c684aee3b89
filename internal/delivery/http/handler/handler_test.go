package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stylegen-service/internal/entity"
)

type fakeScraper struct {
	gotURL     string
	gotProject string
	gotBrand   string
	gotForce   bool
}

func (f *fakeScraper) Scrape(ctx context.Context, rawURL, projectID, brand string, force bool) *entity.StyleProfile {
	f.gotURL = rawURL
	f.gotProject = projectID
	f.gotBrand = brand
	f.gotForce = force
	return entity.DefaultStyleProfile()
}

type fakeGenerator struct {
	gotInstructions string
	gotCurrentHTML  string
	gotProfile      *entity.StyleProfile
	result          *entity.GenerationResult
}

func (f *fakeGenerator) Generate(ctx context.Context, instructions string, profile *entity.StyleProfile) *entity.GenerationResult {
	f.gotInstructions = instructions
	f.gotProfile = profile
	return f.result
}

func (f *fakeGenerator) Update(ctx context.Context, instructions string, profile *entity.StyleProfile, currentHTML string) *entity.GenerationResult {
	f.gotInstructions = instructions
	f.gotProfile = profile
	f.gotCurrentHTML = currentHTML
	return f.result
}

func TestHandleScrape(t *testing.T) {
	scraper := &fakeScraper{}
	h := NewHandler(scraper, &fakeGenerator{})

	body := `{"url": "https://acme.example.com", "project_id": "proj-1", "brand": "acme", "force": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleScrape(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://acme.example.com", scraper.gotURL)
	assert.Equal(t, "proj-1", scraper.gotProject)
	assert.Equal(t, "acme", scraper.gotBrand)
	assert.True(t, scraper.gotForce)

	var resp struct {
		Status       string               `json:"status"`
		StyleProfile *entity.StyleProfile `json:"style_profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.StyleProfile)
	assert.NotEmpty(t, resp.StyleProfile.Colors)
}

func TestHandleScrapeRejectsBadURL(t *testing.T) {
	h := NewHandler(&fakeScraper{}, &fakeGenerator{})

	for _, body := range []string{
		`{"url": "not-a-url"}`,
		`{"url": "ftp://files.example.com"}`,
		`{"url": ""}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.HandleScrape(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestHandleGenerate(t *testing.T) {
	gen := &fakeGenerator{result: &entity.GenerationResult{HTML: "<html>ok</html>"}}
	h := NewHandler(&fakeScraper{}, gen)

	body := `{"prompt": "a coffee shop", "style_profile": {"colors": ["#112233"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a coffee shop", gen.gotInstructions)
	require.NotNil(t, gen.gotProfile)
	assert.Equal(t, []string{"#112233"}, gen.gotProfile.Colors)

	var resp struct {
		HTML string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "<html>ok</html>", resp.HTML)
}

func TestHandleGenerateCarriesStyleTokens(t *testing.T) {
	gen := &fakeGenerator{result: &entity.GenerationResult{HTML: "<html>ok</html>"}}
	h := NewHandler(&fakeScraper{}, gen)

	body := `{
		"prompt": "a coffee shop",
		"style_profile": {
			"colors": ["#112233"],
			"styles": {
				"spacing": "2rem",
				"border_radius": "8px",
				"layout": {"max_width": "1140px", "container_padding": "0 24px", "grid_gap": "32px"},
				"gradients": ["linear-gradient(90deg, #111, #222)"],
				"shadows": ["0 1px 4px rgba(0,0,0,0.1)"]
			}
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gen.gotProfile)
	assert.Equal(t, "2rem", gen.gotProfile.Styles.Spacing)
	assert.Equal(t, "8px", gen.gotProfile.Styles.BorderRadius)
	assert.Equal(t, "1140px", gen.gotProfile.Styles.Layout.MaxWidth)
	assert.Equal(t, "0 24px", gen.gotProfile.Styles.Layout.ContainerPadding)
	assert.Equal(t, "32px", gen.gotProfile.Styles.Layout.GridGap)
	assert.Equal(t, []string{"linear-gradient(90deg, #111, #222)"}, gen.gotProfile.Styles.Gradients)
	assert.Equal(t, []string{"0 1px 4px rgba(0,0,0,0.1)"}, gen.gotProfile.Styles.Shadows)
}

func TestHandleGenerateRequiresPrompt(t *testing.T) {
	h := NewHandler(&fakeScraper{}, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": ""}`))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateSurfacesFallbackError(t *testing.T) {
	gen := &fakeGenerator{result: &entity.GenerationResult{HTML: "<html>fallback</html>", Err: "provider exhausted"}}
	h := NewHandler(&fakeScraper{}, gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "x"}`))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "fallback output is still a success response")

	var resp struct {
		HTML  string `json:"html"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "<html>fallback</html>", resp.HTML)
	assert.Equal(t, "provider exhausted", resp.Error)
}

func TestHandleUpdate(t *testing.T) {
	gen := &fakeGenerator{result: &entity.GenerationResult{HTML: "<html>updated</html>"}}
	h := NewHandler(&fakeScraper{}, gen)

	body := `{"prompt": "make it blue", "current_html": "<div>old</div>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/update", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "make it blue", gen.gotInstructions)
	assert.Equal(t, "<div>old</div>", gen.gotCurrentHTML)
}

func TestHandleHealthCheck(t *testing.T) {
	h := NewHandler(&fakeScraper{}, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
