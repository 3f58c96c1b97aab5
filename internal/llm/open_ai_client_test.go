package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpenAI(t *testing.T, handler func(w http.ResponseWriter, req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_Generate(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := fakeOpenAI(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		seen = req
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "<html></html>"}},
			},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	})

	c := NewOpenAIClient("sk-test", srv.URL+"/v1", "gpt-3.5-turbo", 2000, 0.7)
	out, err := c.Generate(context.Background(), "a pricing table")

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", out)
	assert.Equal(t, "gpt-3.5-turbo", seen.Model)
	assert.Equal(t, 2000, seen.MaxTokens)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, seen.Messages[0].Role)
	assert.Contains(t, seen.Messages[0].Content, "DOCTYPE")
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[1].Role)
	assert.Contains(t, seen.Messages[1].Content, "a pricing table")
}

func TestOpenAIClient_EmptyCompletion(t *testing.T) {
	srv := fakeOpenAI(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	})

	_, err := NewOpenAIClient("sk-test", srv.URL+"/v1", "m", 10, 0).Generate(context.Background(), "x")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIClient_APIError(t *testing.T) {
	srv := fakeOpenAI(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	})

	_, err := NewOpenAIClient("sk-bad", srv.URL+"/v1", "m", 10, 0).Generate(context.Background(), "x")

	require.Error(t, err)
	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	assert.Contains(t, err.Error(), "OpenAI API error")
}
