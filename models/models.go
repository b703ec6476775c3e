package models

import "errors"

// ErrCatalogUnavailable marks a failed movie catalog query. It is the only
// failure the recommendation flow surfaces to callers; everything else is
// absorbed into a degraded but complete response.
var ErrCatalogUnavailable = errors.New("movie catalog unavailable")

// PromptRequest is the body of POST /api/recommend.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// StreamingProvider is one subscription offering for a movie.
type StreamingProvider struct {
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// Movie is a catalog result enriched with streaming availability.
// StreamingProviders is empty (never null) when no offering is known.
type Movie struct {
	Title              string              `json:"title"`
	ReleaseDate        string              `json:"release_date,omitempty"`
	TMDbID             int                 `json:"tmdb_id"`
	PosterURL          string              `json:"poster_url,omitempty"`
	Overview           string              `json:"overview,omitempty"`
	VoteAverage        float64             `json:"vote_average,omitempty"`
	StreamingProviders []StreamingProvider `json:"streaming_providers"`
}

// RecommendationResponse is the body of a successful POST /api/recommend.
type RecommendationResponse struct {
	Message           string  `json:"message"`
	RequestedGenreIDs []int   `json:"requested_genre_ids"`
	Movies            []Movie `json:"movies"`
	UsedAI            bool    `json:"used_ai"`
}
