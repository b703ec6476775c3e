// Package handlers carries the HTTP endpoints of the recommendation API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/TimInTech/Film-Robo/lib/metrics"
	"github.com/TimInTech/Film-Robo/lib/validation"
	"github.com/TimInTech/Film-Robo/models"
)

// Recommender is the slice of the recommendation service the HTTP layer
// needs.
type Recommender interface {
	Recommend(ctx context.Context, prompt string) (*models.RecommendationResponse, error)
}

// HandleRecommend answers POST /api/recommend. Bad input gets a 400, an
// unreachable movie catalog a 502, anything else unexpected a 500.
func HandleRecommend(rec Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		metrics.RecommendRequests.Inc()
		start := time.Now()
		defer func() {
			metrics.RecommendDuration.Observe(time.Since(start).Seconds())
		}()

		var body models.PromptRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			validation.WriteError(w, errors.New("invalid request body"), http.StatusBadRequest)
			return
		}

		if err := validation.ValidatePrompt(body.Prompt); err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		resp, err := rec.Recommend(req.Context(), strings.TrimSpace(body.Prompt))
		if err != nil {
			slog.Error("Failed to build recommendations", slog.Any("error", err))
			if errors.Is(err, models.ErrCatalogUnavailable) {
				validation.WriteError(w, models.ErrCatalogUnavailable, http.StatusBadGateway)
				return
			}
			validation.WriteError(w, errors.New("internal server error"), http.StatusInternalServerError)
			return
		}

		writeJSON(w, resp)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
