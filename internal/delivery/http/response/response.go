package response

import "github.com/user/stylegen-service/internal/entity"

type ScrapeResponse struct {
	Status       string               `json:"status"`
	StyleProfile *entity.StyleProfile `json:"style_profile"`
}

type GenerateResponse struct {
	HTML  string `json:"html"`
	Error string `json:"error,omitempty"`
}
