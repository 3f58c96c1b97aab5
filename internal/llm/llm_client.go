package llm

import "context"

// LLMClient turns a UI description into a raw generated code blob.
type LLMClient interface {
	Generate(ctx context.Context, description string) (string, error)
}
