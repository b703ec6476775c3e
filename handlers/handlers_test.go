package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TimInTech/Film-Robo/models"
)

type fakeRecommender struct {
	resp *models.RecommendationResponse
	err  error

	called    bool
	gotPrompt string
}

func (f *fakeRecommender) Recommend(ctx context.Context, prompt string) (*models.RecommendationResponse, error) {
	f.called = true
	f.gotPrompt = prompt

	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func postRecommend(t *testing.T, rec Recommender, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleRecommend(rec)(w, req)
	return w
}

func TestHandleRecommend(t *testing.T) {
	fake := &fakeRecommender{
		resp: &models.RecommendationResponse{
			Message:           "✓ 1 Filme gefunden für Ihre Anfrage!",
			RequestedGenreIDs: []int{35, 10749},
			Movies: []models.Movie{
				{
					Title:              "Eine Komödie",
					TMDbID:             42,
					StreamingProviders: []models.StreamingProvider{},
				},
			},
			UsedAI: true,
		},
	}

	w := postRecommend(t, fake, `{"prompt": "  Lustige Filme mit Aliens  "}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if fake.gotPrompt != "Lustige Filme mit Aliens" {
		t.Errorf("prompt passed on = %q, want it trimmed", fake.gotPrompt)
	}

	var resp models.RecommendationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Message != fake.resp.Message {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Movies) != 1 || resp.Movies[0].TMDbID != 42 {
		t.Errorf("movies = %+v", resp.Movies)
	}
	if !resp.UsedAI {
		t.Error("expected used_ai true")
	}
}

func TestHandleRecommendRejectsEmptyPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing prompt", body: `{}`},
		{name: "empty prompt", body: `{"prompt": ""}`},
		{name: "whitespace prompt", body: `{"prompt": "   \t  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRecommender{}
			w := postRecommend(t, fake, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if fake.called {
				t.Error("recommender must not run for an unusable prompt")
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message in the body")
			}
		})
	}
}

func TestHandleRecommendRejectsBadJSON(t *testing.T) {
	fake := &fakeRecommender{}
	w := postRecommend(t, fake, `{"prompt": `)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if fake.called {
		t.Error("recommender must not run for a broken body")
	}
}

func TestHandleRecommendCatalogDown(t *testing.T) {
	fake := &fakeRecommender{
		err: fmt.Errorf("failed to discover movies: %w", models.ErrCatalogUnavailable),
	}
	w := postRecommend(t, fake, `{"prompt": "Action"}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "movie catalog unavailable" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandleRecommendInternalError(t *testing.T) {
	fake := &fakeRecommender{err: errors.New("boom")}
	w := postRecommend(t, fake, `{"prompt": "Action"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, internals must not leak", body["error"])
	}
}
