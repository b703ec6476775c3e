// Package recommend turns a free-text movie prompt into a ranked, enriched
// list of recommendations.
package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/TimInTech/Film-Robo/lib/classify"
	"github.com/TimInTech/Film-Robo/lib/metrics"
	"github.com/TimInTech/Film-Robo/models"
)

// Classifier yields genre IDs for a prompt.
type Classifier interface {
	Classify(ctx context.Context, prompt string) classify.Result
}

// Catalog serves movie listings and their streaming providers.
type Catalog interface {
	DiscoverMovies(ctx context.Context, genreIDs []int) ([]models.Movie, error)
	WatchProviders(ctx context.Context, movieID int, region string) ([]models.StreamingProvider, error)
}

const (
	foundMessage   = "✓ %d Filme gefunden für Ihre Anfrage!"
	noMatchMessage = "Konnte keine passenden Genres finden. Versuchen Sie es mit: lustig, spannend, Kinder, Action oder Fantasy."
)

type Recommender struct {
	classifier      Classifier
	catalog         Catalog
	region          string
	providerTimeout time.Duration
	logger          *slog.Logger
}

func New(classifier Classifier, catalog Catalog, region string, providerTimeout time.Duration, logger *slog.Logger) *Recommender {
	return &Recommender{
		classifier:      classifier,
		catalog:         catalog,
		region:          region,
		providerTimeout: providerTimeout,
		logger:          logger,
	}
}

// Recommend classifies the prompt, queries the catalog and enriches every hit
// with its streaming providers. Only a failing catalog query is an error;
// classification and enrichment degrade instead of failing.
func (r *Recommender) Recommend(ctx context.Context, prompt string) (*models.RecommendationResponse, error) {
	result := r.classifier.Classify(ctx, prompt)

	r.logger.Info("classified prompt",
		slog.Int("genre_count", len(result.GenreIDs)),
		slog.Bool("used_ai", result.UsedAI))

	if len(result.GenreIDs) == 0 {
		return &models.RecommendationResponse{
			Message:           noMatchMessage,
			RequestedGenreIDs: result.GenreIDs,
			Movies:            []models.Movie{},
			UsedAI:            result.UsedAI,
		}, nil
	}

	movies, err := r.catalog.DiscoverMovies(ctx, result.GenreIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover movies: %w", err)
	}

	r.attachProviders(ctx, movies)

	return &models.RecommendationResponse{
		Message:           fmt.Sprintf(foundMessage, len(movies)),
		RequestedGenreIDs: result.GenreIDs,
		Movies:            movies,
		UsedAI:            result.UsedAI,
	}, nil
}

// attachProviders enriches all movies concurrently. Each goroutine writes
// only its own slot, so the order of the slice never changes.
func (r *Recommender) attachProviders(ctx context.Context, movies []models.Movie) {
	var wg sync.WaitGroup
	for i := range movies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			movies[i].StreamingProviders = r.fetchProviders(ctx, movies[i].TMDbID)
		}(i)
	}
	wg.Wait()
}

// fetchProviders never fails: a lookup error or timeout degrades to an empty
// provider list for that one movie.
func (r *Recommender) fetchProviders(ctx context.Context, movieID int) []models.StreamingProvider {
	ctx, cancel := context.WithTimeout(ctx, r.providerTimeout)
	defer cancel()

	providers, err := r.catalog.WatchProviders(ctx, movieID, r.region)
	if err != nil {
		metrics.EnrichmentFailures.Inc()
		r.logger.Warn("streaming provider lookup failed",
			slog.Int("movie_id", movieID),
			slog.Any("error", err))
		return []models.StreamingProvider{}
	}
	if providers == nil {
		providers = []models.StreamingProvider{}
	}

	return providers
}
