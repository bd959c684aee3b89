package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/user/stylegen-service/internal/delivery/http/request"
	"github.com/user/stylegen-service/internal/delivery/http/response"
	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/usecase"
)

type Handler struct {
	scraper   usecase.StyleScraper
	generator usecase.Generator
}

func NewHandler(scraper usecase.StyleScraper, generator usecase.Generator) *Handler {
	return &Handler{
		scraper:   scraper,
		generator: generator,
	}
}

func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	var req request.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		h.writeJSONError(w, "url must be an absolute http(s) URL", http.StatusBadRequest)
		return
	}

	profile := h.scraper.Scrape(r.Context(), req.URL, req.ProjectID, req.Brand, req.Force)
	h.writeJSON(w, http.StatusOK, response.ScrapeResponse{
		Status:       "success",
		StyleProfile: profile,
	})
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		h.writeJSONError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	result := h.generator.Generate(r.Context(), req.Prompt, toProfile(req.StyleProfile))
	h.writeJSON(w, http.StatusOK, response.GenerateResponse{HTML: result.HTML, Error: result.Err})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		h.writeJSONError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	result := h.generator.Update(r.Context(), req.Prompt, toProfile(req.StyleProfile), req.CurrentHTML)
	h.writeJSON(w, http.StatusOK, response.GenerateResponse{HTML: result.HTML, Error: result.Err})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toProfile(p *request.StyleProfilePayload) *entity.StyleProfile {
	if p == nil {
		return nil
	}
	return &entity.StyleProfile{
		Colors:          p.Colors,
		Fonts:           p.Fonts,
		Images:          p.Images,
		Logo:            p.Logo,
		MetaDescription: p.MetaDescription,
		Headings:        p.Headings,
		Styles: entity.StyleTokens{
			Spacing:      p.Styles.Spacing,
			BorderRadius: p.Styles.BorderRadius,
			Layout: entity.LayoutTokens{
				MaxWidth:         p.Styles.Layout.MaxWidth,
				ContainerPadding: p.Styles.Layout.ContainerPadding,
				GridGap:          p.Styles.Layout.GridGap,
			},
			ButtonStyles: p.Styles.ButtonStyles,
			HeaderStyles: p.Styles.HeaderStyles,
			Gradients:    p.Styles.Gradients,
			Shadows:      p.Styles.Shadows,
		},
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
