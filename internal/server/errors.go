package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"aiupstart.com/snapcode/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

// providerFailure maps a generation error to the status and detail sent back
// to the caller.
func providerFailure(err error) (int, string) {
	if errors.Is(err, llm.ErrEmptyCompletion) {
		return http.StatusInternalServerError, "Failed to generate code"
	}

	msg := err.Error()
	haystack := msg
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		haystack = fmt.Sprintf("%s %v %s %d", msg, apiErr.Code, apiErr.Type, apiErr.HTTPStatusCode)
	}

	switch {
	case strings.Contains(haystack, "insufficient_quota"):
		return http.StatusPaymentRequired, "API quota exceeded. Please check your OpenAI billing."
	case strings.Contains(haystack, "429"):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please wait a moment and try again."
	case strings.Contains(haystack, "model_not_found"):
		return http.StatusBadRequest, "Model not available. Please check your OpenAI account access."
	case strings.Contains(haystack, "invalid_api_key"):
		return http.StatusUnauthorized, "Invalid API key. Please check your OpenAI API key."
	}

	if !strings.HasPrefix(msg, "OpenAI API error") {
		msg = "OpenAI API error: " + msg
	}
	return http.StatusInternalServerError, msg
}
