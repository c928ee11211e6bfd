// Package llm talks to a local Ollama-compatible model server and turns its
// free-form replies into typed, validated values.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "llama3.1"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
)

// Shape is a result type the model is asked to produce. Validate reports
// whether a decoded value is structurally acceptable.
type Shape interface {
	Validate() error
}

// StructuredGenerator is the part of the gateway the generator and judge
// depend on.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, prompt string, out Shape, maxRetries int) Result
}

// FailureReason classifies why a single attempt did not produce a value.
type FailureReason string

const (
	FailureTransport FailureReason = "transport" // network error or timeout
	FailureStatus    FailureReason = "status"    // non-2xx reply
	FailureDecode    FailureReason = "decode"    // no parseable JSON in the reply
	FailureShape     FailureReason = "shape"     // JSON did not match the requested shape
)

// Attempt is the outcome of one call to the model. Reason is empty on success.
type Attempt struct {
	Number int
	Reason FailureReason
	Err    error
}

func (a Attempt) OK() bool { return a.Reason == "" }

// Result collects every attempt made by one GenerateStructured call.
type Result struct {
	Attempts []Attempt
}

// OK reports whether the last attempt succeeded and the output was filled.
func (r Result) OK() bool {
	return len(r.Attempts) > 0 && r.Attempts[len(r.Attempts)-1].OK()
}

// Gateway sends prompts to the model server with a per-attempt timeout and
// bounded sequential retries.
type Gateway struct {
	baseURL   string
	model     string
	timeout   time.Duration
	client    *http.Client
	completer Completer
	logger    *slog.Logger
}

// Compile-time check: *Gateway satisfies StructuredGenerator.
var _ StructuredGenerator = (*Gateway)(nil)

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the HTTP client used for reachability probes and
// the default completer.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithCompleter replaces the transport used for generation.
func WithCompleter(c Completer) Option {
	return func(g *Gateway) { g.completer = c }
}

// NewGateway creates a gateway for the given server and model. Without
// WithCompleter it generates through the native /api/generate endpoint.
func NewGateway(baseURL, model string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.completer == nil {
		g.completer = NewOllamaCompleter(g.baseURL, g.model, g.client)
	}
	return g
}

// Model returns the configured model name.
func (g *Gateway) Model() string { return g.model }

// ============================================================================
// Structured generation
// ============================================================================

// GenerateStructured asks the model for JSON matching out's type and decodes
// it into out. It makes at most maxRetries+1 sequential attempts and stops at
// the first success. out must be a non-nil pointer; it is written only when
// the returned Result is OK. No error escapes: failures are reported in the
// Result's attempts.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, out Shape, maxRetries int) Result {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var res Result
	for n := 1; n <= maxRetries+1; n++ {
		a := g.attempt(ctx, prompt, out)
		a.Number = n
		res.Attempts = append(res.Attempts, a)
		if a.OK() {
			return res
		}

		g.logger.Debug("model attempt failed",
			"attempt", n,
			"reason", a.Reason,
			"error", a.Err,
		)

		// Nothing left to retry with once the caller's context is gone.
		if ctx.Err() != nil {
			break
		}
	}
	return res
}

func (g *Gateway) attempt(ctx context.Context, prompt string, out Shape) Attempt {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return Attempt{Reason: FailureStatus, Err: err}
		}
		return Attempt{Reason: FailureTransport, Err: err}
	}

	raw, err := extractJSON(text)
	if err != nil {
		return Attempt{Reason: FailureDecode, Err: err}
	}

	// Decode into a fresh value so a failed attempt never leaves partial
	// fields behind in out.
	target := reflect.TypeOf(out)
	if target == nil || target.Kind() != reflect.Pointer {
		return Attempt{Reason: FailureShape, Err: fmt.Errorf("output must be a pointer, got %T", out)}
	}
	fresh := reflect.New(target.Elem())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		return Attempt{Reason: FailureShape, Err: err}
	}
	if err := fresh.Interface().(Shape).Validate(); err != nil {
		return Attempt{Reason: FailureShape, Err: err}
	}

	reflect.ValueOf(out).Elem().Set(fresh.Elem())
	return Attempt{}
}

// ============================================================================
// Reachability
// ============================================================================

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckReachability lists the models advertised by the server and reports
// whether the configured model is among them. It never fails; any error
// yields false.
func (g *Gateway) CheckReachability(ctx context.Context) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/tags", nil)
	if err != nil {
		return false, g.model
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("model server unreachable", "error", err)
		return false, g.model
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, g.model
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, g.model
	}
	for _, m := range tags.Models {
		if m.Name == g.model {
			return true, g.model
		}
	}
	return false, g.model
}
