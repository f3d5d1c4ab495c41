package skills

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultModel is the OpenAI model used for extraction.
const DefaultModel = "gpt-4o-mini"

const temperature = 0.2

// Completer sends one prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLM adapts a langchaingo model to Completer, asking for JSON output.
type LLM struct {
	Model llms.Model
}

// NewOpenAI returns an OpenAI-backed completer.
func NewOpenAI(apiKey, model string) (*LLM, error) {
	if model == "" {
		model = DefaultModel
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &LLM{Model: llm}, nil
}

func (l *LLM) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, l.Model, prompt,
		llms.WithTemperature(temperature),
		llms.WithJSONMode(),
	)
}
