package llm

import (
	"context"
	"errors"
	"fmt"

	"aiupstart.com/snapcode/internal/metrics"
	"aiupstart.com/snapcode/internal/utils"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are an expert front-end developer. Generate clean, modern HTML and CSS code based on the description provided.

Requirements:
- Include complete HTML structure with proper DOCTYPE, head, and body tags
- Include CSS styling within <style> tags in the head
- Include JavaScript within <script> tags at the end of body if needed
- Make the design responsive and modern
- Use semantic HTML elements
- Include proper accessibility attributes
- Use modern CSS features like flexbox/grid
- Create different designs based on the description

Return the complete HTML document with embedded CSS and JavaScript.`

const userPromptTemplate = "Create a complete HTML document with CSS and JavaScript for this UI description: %s"

// ErrEmptyCompletion is returned when the model answers with no content.
var ErrEmptyCompletion = errors.New("empty completion")

type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIClient builds a client for apiKey. baseURL may be empty to use the
// public OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, maxTokens int, temperature float32) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, description string) (string, error) {
	utils.Logger.Debug().Str("module", "llm").Str("model", c.model).Msgf("Generating code for description: %s", description)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, description)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Logger.Error().Err(err).Str("module", "llm").Msg("Failed to generate response from OpenAI")
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	metrics.OpenAITokensTotal.WithLabelValues("prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.OpenAITokensTotal.WithLabelValues("completion").Add(float64(resp.Usage.CompletionTokens))
	metrics.OpenAITokensTotal.WithLabelValues("total").Add(float64(resp.Usage.TotalTokens))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		utils.Logger.Error().Str("module", "llm").Msg("No content returned from OpenAI API")
		return "", ErrEmptyCompletion
	}
	utils.Logger.Debug().Str("module", "llm").Int("bytes", len(resp.Choices[0].Message.Content)).Msg("OpenAI response received")
	return resp.Choices[0].Message.Content, nil
}
