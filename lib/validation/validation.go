package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"log/slog"
)

// maxPromptLength caps prompt size in runes, not bytes, so a German umlaut
// counts once.
const maxPromptLength = 500

// ValidatePrompt checks that a recommendation prompt carries actual content
// and stays within the length limit. Returns an error if the prompt is
// unusable.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if utf8.RuneCountInString(prompt) > maxPromptLength {
		return fmt.Errorf("prompt must not exceed %d characters", maxPromptLength)
	}
	return nil
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
