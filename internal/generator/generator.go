// Package generator produces quiz questions from the model, falling back to
// a static bank, and guarantees prompts within a batch are distinct.
package generator

import (
	"context"
	"log/slog"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/llm"
)

const (
	// DefaultRetries is the number of extra gateway attempts per request.
	DefaultRetries = 2

	// DefaultAvoidLimit caps the prompts listed in a regeneration request.
	DefaultAvoidLimit = 50
)

// Generator builds question sets for new sessions.
type Generator struct {
	llm        llm.StructuredGenerator
	bank       *Bank
	logger     *slog.Logger
	avoidLimit int
	retries    int
}

// Option customizes a Generator.
type Option func(*Generator)

// WithBank replaces the embedded fallback bank.
func WithBank(b *Bank) Option {
	return func(g *Generator) { g.bank = b }
}

// WithAvoidLimit sets how many used prompts a regeneration request lists.
// Zero or less means no limit.
func WithAvoidLimit(n int) Option {
	return func(g *Generator) { g.avoidLimit = n }
}

// WithRetries sets the extra gateway attempts made per model request.
func WithRetries(n int) Option {
	return func(g *Generator) { g.retries = n }
}

// New creates a Generator that asks the given gateway for questions.
func New(gateway llm.StructuredGenerator, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		llm:        gateway,
		logger:     logger,
		avoidLimit: DefaultAvoidLimit,
		retries:    DefaultRetries,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.bank == nil {
		g.bank = DefaultBank()
	}
	return g
}

// Generate returns exactly cfg.NumQuestions valid questions with pairwise
// distinct normalized prompts. Model output is used only when the whole
// batch is valid; otherwise the fallback bank supplies the questions. The
// only error is an invalid cfg.
func (g *Generator) Generate(ctx context.Context, cfg quiz.Config) ([]quiz.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	questions, ok := g.fromModel(ctx, cfg)
	if !ok {
		g.logger.Info("using fallback question bank",
			"topics", len(cfg.Topics),
			"question_type", cfg.QuestionType,
			"num_questions", cfg.NumQuestions,
		)
		var err error
		questions, err = g.fallbackQuestions(cfg)
		if err != nil {
			return nil, err
		}
	}
	return g.dedupe(ctx, questions), nil
}

// fromModel makes one gateway request and accepts the batch only if the
// count matches and every question is structurally valid.
func (g *Generator) fromModel(ctx context.Context, cfg quiz.Config) ([]quiz.Question, bool) {
	var batch questionBatch
	res := g.llm.GenerateStructured(ctx, buildBatchPrompt(cfg), &batch, g.retries)
	if !res.OK() {
		g.logger.Warn("model produced no question batch", "attempts", len(res.Attempts))
		return nil, false
	}

	if len(batch.Questions) != cfg.NumQuestions {
		g.logger.Warn("model returned wrong number of questions",
			"want", cfg.NumQuestions,
			"got", len(batch.Questions),
		)
		return nil, false
	}

	out := make([]quiz.Question, 0, len(batch.Questions))
	for i, wq := range batch.Questions {
		q := wq.toQuestion()
		if err := q.Validate(); err != nil {
			g.logger.Warn("model returned invalid question", "index", i, "error", err)
			return nil, false
		}
		out = append(out, q)
	}
	return out, true
}
