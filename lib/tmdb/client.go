// Package tmdb is a thin client for the TMDb v3 API. Without an API key it
// serves deterministic placeholder data so the rest of the service stays
// exercisable.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/TimInTech/Film-Robo/lib/metrics"
	"github.com/TimInTech/Film-Robo/models"
)

// PlaceholderKey marks a deliberately unset API key.
const PlaceholderKey = "PLACEHOLDER"

const maxDiscoverResults = 10

type Client struct {
	apiKey      string
	language    string
	baseURL     string
	placeholder bool
	httpClient  *http.Client
	logger      *slog.Logger
}

type discoverResult struct {
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		PosterPath  string  `json:"poster_path"`
		Overview    string  `json:"overview"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

type providersResult struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
			LogoPath     string `json:"logo_path"`
		} `json:"flatrate"`
	} `json:"results"`
}

func NewClient(apiKey, language string, logger *slog.Logger) *Client {
	placeholder := apiKey == "" || apiKey == PlaceholderKey
	if placeholder {
		logger.Warn("no TMDb API key configured, serving placeholder data")
	}

	return &Client{
		apiKey:      apiKey,
		language:    language,
		baseURL:     "https://api.themoviedb.org/3",
		placeholder: placeholder,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// DiscoverMovies returns the most popular movies matching all given genre
// IDs, capped at ten. Every failure wraps models.ErrCatalogUnavailable.
func (c *Client) DiscoverMovies(ctx context.Context, genreIDs []int) ([]models.Movie, error) {
	if c.placeholder {
		return placeholderMovies(), nil
	}

	url := fmt.Sprintf("%s/discover/movie?api_key=%s&language=%s&sort_by=popularity.desc&page=1&with_genres=%s",
		c.baseURL, c.apiKey, c.language, joinGenreIDs(genreIDs))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", models.ErrCatalogUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CatalogErrors.Inc()
		return nil, fmt.Errorf("%w: failed to make request: %v", models.ErrCatalogUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogErrors.Inc()
		return nil, fmt.Errorf("%w: discover returned status %d", models.ErrCatalogUnavailable, resp.StatusCode)
	}

	var result discoverResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.CatalogErrors.Inc()
		return nil, fmt.Errorf("%w: failed to decode response: %v", models.ErrCatalogUnavailable, err)
	}

	raw := result.Results
	if len(raw) > maxDiscoverResults {
		raw = raw[:maxDiscoverResults]
	}

	movies := make([]models.Movie, 0, len(raw))
	for _, r := range raw {
		movies = append(movies, models.Movie{
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			TMDbID:      r.ID,
			PosterURL:   c.GetPosterURL(r.PosterPath),
			Overview:    r.Overview,
			VoteAverage: r.VoteAverage,
		})
	}

	return movies, nil
}

// WatchProviders returns the flatrate streaming providers for a movie in the
// given region. A movie with no listed providers is not an error.
func (c *Client) WatchProviders(ctx context.Context, movieID int, region string) ([]models.StreamingProvider, error) {
	if c.placeholder {
		return []models.StreamingProvider{}, nil
	}

	url := fmt.Sprintf("%s/movie/%d/watch/providers?api_key=%s", c.baseURL, movieID, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch providers returned status %d", resp.StatusCode)
	}

	var result providersResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	entry, ok := result.Results[region]
	if !ok {
		return []models.StreamingProvider{}, nil
	}

	providers := make([]models.StreamingProvider, 0, len(entry.Flatrate))
	for _, p := range entry.Flatrate {
		providers = append(providers, models.StreamingProvider{
			ProviderName: p.ProviderName,
			LogoPath:     p.LogoPath,
		})
	}

	return providers, nil
}

func (c *Client) GetPosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return fmt.Sprintf("https://image.tmdb.org/t/p/w500%s", posterPath)
}

// placeholderMovies mirrors the shape of a real discover response so the API
// contract stays identical with and without a key.
func placeholderMovies() []models.Movie {
	movies := make([]models.Movie, 0, maxDiscoverResults)
	for i := 0; i < maxDiscoverResults; i++ {
		movies = append(movies, models.Movie{
			Title:       fmt.Sprintf("Simulierter Film %d", i+1),
			ReleaseDate: "2024-01-01",
			TMDbID:      1000 + i,
			Overview:    "Dies ist ein Platzhalter-Film. Fügen Sie einen TMDb API-Schlüssel hinzu für echte Daten.",
			VoteAverage: float64(75+i) / 10,
		})
	}
	return movies
}

func joinGenreIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
