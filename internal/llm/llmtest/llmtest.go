// Package llmtest provides scripted model transports for tests.
package llmtest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AksChougule/lairn/internal/llm"
)

// ErrUnreachable is returned by Unreachable and by an exhausted script.
var ErrUnreachable = errors.New("model server unreachable")

// Completer replies with scripted texts in order and records every prompt.
// Once the script is exhausted each call fails with ErrUnreachable.
type Completer struct {
	mu      sync.Mutex
	replies []string
	prompts []string
}

var _ llm.Completer = (*Completer)(nil)

// Script returns a completer that answers with replies in order.
func Script(replies ...string) *Completer {
	return &Completer{replies: replies}
}

// Unreachable returns a completer whose every call fails.
func Unreachable() *Completer {
	return &Completer{}
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	if len(c.replies) == 0 {
		return "", ErrUnreachable
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

// Prompts returns the prompts received so far.
func (c *Completer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}

// Calls returns how many completions were requested.
func (c *Completer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// Gateway wraps c in a real llm.Gateway so retries, JSON recovery and shape
// validation run exactly as in production.
func Gateway(c *Completer) *llm.Gateway {
	return llm.NewGateway("http://model.invalid", "test-model", time.Second,
		slog.New(slog.DiscardHandler), llm.WithCompleter(c))
}
