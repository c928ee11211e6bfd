package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// LangchainCompleter generates through langchaingo's Ollama client. It is an
// alternative to OllamaCompleter for deployments that already standardize on
// langchaingo; retries and JSON recovery stay in the Gateway.
type LangchainCompleter struct {
	model llms.Model
}

var _ Completer = (*LangchainCompleter)(nil)

// NewLangchainCompleter builds an Ollama-backed langchaingo model in JSON mode.
func NewLangchainCompleter(url, model string) (*LangchainCompleter, error) {
	m, err := ollama.New(
		ollama.WithServerURL(url),
		ollama.WithModel(model),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchaingo ollama client: %w", err)
	}
	return &LangchainCompleter{model: m}, nil
}

func (c *LangchainCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("langchaingo generate failed: %w", err)
	}
	return text, nil
}
