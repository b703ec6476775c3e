// Package classify maps free-text movie prompts to TMDb genre IDs. It asks a
// chat model first and falls back to keyword matching whenever the model is
// unavailable, times out, or answers with nothing usable.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/TimInTech/Film-Robo/lib/genres"
	"github.com/TimInTech/Film-Robo/lib/metrics"
)

// Result is the outcome of classifying a single prompt. UsedAI reports
// whether the genre IDs came from the model or from the keyword fallback.
type Result struct {
	GenreIDs []int
	UsedAI   bool
}

// ChatCompleter is the slice of the OpenAI client the classifier needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Classifier turns prompts into genre IDs. The zero value is not usable, use
// New.
type Classifier struct {
	llm     ChatCompleter
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a Classifier. llm may be nil, in which case every prompt goes
// straight to the keyword fallback.
func New(llm ChatCompleter, model string, timeout time.Duration, logger *slog.Logger) *Classifier {
	if llm == nil {
		logger.Info("no language model configured, classifying by keywords only")
	}

	return &Classifier{
		llm:     llm,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Classify maps prompt to genre IDs. It never fails: any model problem is
// absorbed and answered by the keyword matcher instead.
func (c *Classifier) Classify(ctx context.Context, prompt string) Result {
	if c.llm == nil {
		return c.keywordFallback(prompt)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Analysiere diesen Film-Wunsch: '%s'", prompt),
			},
		},
		Temperature: 0.1,
		MaxTokens:   64,
		User:        "film-robo-" + uuid.NewString(),
	})
	if err != nil {
		c.logger.Warn("model classification failed", slog.Any("error", err))
		return c.keywordFallback(prompt)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("model returned no choices")
		return c.keywordFallback(prompt)
	}

	ids := parseGenreIDs(resp.Choices[0].Message.Content)
	if len(ids) == 0 {
		c.logger.Warn("model answer contained no known genre IDs",
			slog.String("answer", resp.Choices[0].Message.Content))
		return c.keywordFallback(prompt)
	}

	return Result{GenreIDs: ids, UsedAI: true}
}

func (c *Classifier) keywordFallback(prompt string) Result {
	metrics.ClassifierFallbacks.Inc()
	return Result{GenreIDs: genres.MatchKeywords(prompt)}
}

var numberPattern = regexp.MustCompile(`\d+`)

// parseGenreIDs pulls every integer out of the model answer and keeps the
// ones naming a known genre, first occurrence wins. The model is told to
// answer with a bare comma-separated list, but this survives prose around the
// numbers too.
func parseGenreIDs(answer string) []int {
	var ids []int
	seen := make(map[int]bool)
	for _, raw := range numberPattern.FindAllString(answer, -1) {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if !genres.KnownID(id) || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

func systemPrompt() string {
	var b strings.Builder
	b.WriteString("Du bist ein Filmexperte, der Benutzer-Wünsche analysiert.\n\n")
	b.WriteString("Deine Aufgabe: Analysiere den Benutzer-Prompt und ordne ihn den passenden Film-Genres zu.\n\n")
	b.WriteString("Verfügbare Genre-Kategorien:\n")
	for _, cat := range genres.Catalog() {
		b.WriteString(fmt.Sprintf("- %s: %s (Genre-IDs: %s)\n", cat.Name, cat.Description, joinIDs(cat.GenreIDs)))
	}
	b.WriteString("\nAntworte NUR mit einer kommagetrennten Liste der passenden Genre-IDs.\n")
	b.WriteString("Beispiel: Wenn der Benutzer nach lustigen Alien-Filmen fragt, antworte: 35,878\n")
	b.WriteString("Antworte NICHTS anderes, nur die Zahlen!")

	return b.String()
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return strings.Join(parts, ", ")
}
