package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/user/stylegen-service/internal/entity"
	"github.com/user/stylegen-service/internal/ratelimit"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/pkg/metrics"
)

// generationMaxAttempts is the total number of provider attempts per
// call, first try included.
const generationMaxAttempts = 3

const systemInstruction = "You are an expert web developer. You produce complete, " +
	"production-quality single-file HTML landing pages. You respond with the raw HTML " +
	"document only: no explanations, no markdown fences, no commentary."

// Generator defines the interface for AI text-to-HTML generation. Both
// operations never fail outward: the result always carries renderable
// HTML, falling back to a deterministic template when the provider is
// unreachable.
type Generator interface {
	Generate(ctx context.Context, instructions string, profile *entity.StyleProfile) *entity.GenerationResult
	Update(ctx context.Context, instructions string, profile *entity.StyleProfile, currentHTML string) *entity.GenerationResult
}

type generateUseCase struct {
	provider     repository.TextGenerationRepository
	limiter      ratelimit.Limiter
	retryBackoff time.Duration
}

// NewGenerator creates the generation use case. retryBackoff is the base
// unit of the linearly growing wait between attempts; 5s when zero.
func NewGenerator(provider repository.TextGenerationRepository, limiter ratelimit.Limiter, retryBackoff time.Duration) Generator {
	if retryBackoff <= 0 {
		retryBackoff = 5 * time.Second
	}
	return &generateUseCase{
		provider:     provider,
		limiter:      limiter,
		retryBackoff: retryBackoff,
	}
}

func (uc *generateUseCase) Generate(ctx context.Context, instructions string, profile *entity.StyleProfile) *entity.GenerationResult {
	return uc.run(ctx, BuildPrompt(instructions, profile), profile)
}

func (uc *generateUseCase) Update(ctx context.Context, instructions string, profile *entity.StyleProfile, currentHTML string) *entity.GenerationResult {
	return uc.run(ctx, BuildUpdatePrompt(instructions, profile, currentHTML), profile)
}

func (uc *generateUseCase) run(ctx context.Context, prompt string, profile *entity.StyleProfile) *entity.GenerationResult {
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= generationMaxAttempts; attempt++ {
		if attempt > 1 {
			wait := uc.retryBackoff * time.Duration(attempt-1)
			slog.Warn("Retrying generation", "attempt", attempt, "wait", wait.String())
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				lastErr = ctx.Err()
				return uc.fallback(profile, lastErr, start)
			}
		}

		// Every provider call, retries included, takes its turn on the
		// shared minimum-interval limiter.
		if err := uc.limiter.Wait(ctx); err != nil {
			lastErr = err
			return uc.fallback(profile, lastErr, start)
		}

		text, err := uc.provider.GenerateText(ctx, systemInstruction, prompt)
		if err == nil {
			metrics.GenerationsTotal.WithLabelValues("success").Inc()
			metrics.GenerationDuration.Observe(time.Since(start).Seconds())
			return &entity.GenerationResult{HTML: CleanGeneratedCode(text)}
		}

		lastErr = err
		if !isRetryableGenerationError(err) {
			slog.Error("Generation failed with non-retryable error", "error", err)
			break
		}
		slog.Warn("Generation attempt failed", "attempt", attempt, "error", err)
	}

	return uc.fallback(profile, lastErr, start)
}

func (uc *generateUseCase) fallback(profile *entity.StyleProfile, lastErr error, start time.Time) *entity.GenerationResult {
	metrics.GenerationsTotal.WithLabelValues("fallback").Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	errText := ""
	if lastErr != nil {
		errText = lastErr.Error()
	}
	slog.Error("Generation exhausted, returning fallback template", "error", errText)
	return &entity.GenerationResult{HTML: FallbackTemplate(profile), Err: errText}
}

// retryableMarkers are substrings of provider error messages that signal
// a transient condition worth another attempt.
var retryableMarkers = []string{
	"rate limit", "429",
	"timeout", "timed out", "deadline",
	"connection", "network",
	"temporar", "overloaded",
	"internal", "500", "502", "503",
}

func isRetryableGenerationError(err error) bool {
	if errors.Is(err, repository.ErrGenerationRefused) {
		return false
	}
	if errors.Is(err, repository.ErrUpstream) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// CleanGeneratedCode strips markdown code-fence markers and stray
// backticks that generation frameworks wrap around model output.
// Idempotent: cleaning already-clean HTML returns it unchanged.
func CleanGeneratedCode(raw string) string {
	out := strings.TrimSpace(raw)
	for _, prefix := range []string{"```html", "```HTML", "```"} {
		if strings.HasPrefix(out, prefix) {
			out = out[len(prefix):]
			break
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	out = strings.Trim(strings.TrimSpace(out), "`")
	return strings.TrimSpace(out)
}
