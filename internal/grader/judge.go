package grader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/llm"
	"github.com/AksChougule/lairn/internal/normalize"
)

const (
	// DefaultRetries is the number of extra model attempts for one verdict.
	DefaultRetries = 2

	// PassingOverlap is the minimum token overlap the fallback accepts.
	PassingOverlap = 0.6
)

// ShortAnswerJudge grades short answers in a fixed order: containment,
// exact or variant match, the model judge, then token overlap.
type ShortAnswerJudge struct {
	llm     llm.StructuredGenerator
	logger  *slog.Logger
	retries int
}

// Compile-time check: *ShortAnswerJudge satisfies the Grader interface.
var _ Grader = (*ShortAnswerJudge)(nil)

// JudgeOption customizes a ShortAnswerJudge.
type JudgeOption func(*ShortAnswerJudge)

// WithRetries sets the extra model attempts made for one verdict.
func WithRetries(n int) JudgeOption {
	return func(j *ShortAnswerJudge) { j.retries = n }
}

// NewShortAnswerJudge creates a judge that consults the given model gateway.
func NewShortAnswerJudge(gateway llm.StructuredGenerator, logger *slog.Logger, opts ...JudgeOption) *ShortAnswerJudge {
	j := &ShortAnswerJudge{llm: gateway, logger: logger, retries: DefaultRetries}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// modelVerdict is the JSON shape the model judge must return.
type modelVerdict struct {
	IsCorrect *bool  `json:"is_correct" jsonschema:"description=Whether the answer satisfies the rubric"`
	Rationale string `json:"rationale" jsonschema:"description=One or two sentences explaining the decision"`
}

func (v *modelVerdict) Validate() error {
	if v.IsCorrect == nil {
		return errors.New("is_correct is required")
	}
	return nil
}

// ============================================================================
// Grader interface
// ============================================================================

// Grade returns a verdict for in. The first matching step wins.
func (j *ShortAnswerJudge) Grade(ctx context.Context, in ShortAnswer) quiz.Verdict {
	user := normalize.Answer(in.UserAnswer)
	expected := normalize.Answer(in.ExpectedAnswer)

	if user != "" && expected != "" && (strings.Contains(user, expected) || strings.Contains(expected, user)) {
		return quiz.Verdict{
			IsCorrect: true,
			Rationale: "Answer matches the expected answer by containment.",
			Trace:     quiz.Trace{Path: quiz.PathContains},
		}
	}

	if user == expected || matchesVariant(user, in.AcceptableVariants) {
		return quiz.Verdict{
			IsCorrect: true,
			Rationale: "Matched expected answer or acceptable variant.",
			Trace:     quiz.Trace{Path: quiz.PathExactOrVariant},
		}
	}

	var judged modelVerdict
	res := j.llm.GenerateStructured(ctx, buildJudgePrompt(in), &judged, j.retries)
	if res.OK() && strings.TrimSpace(judged.Rationale) != "" {
		return quiz.Verdict{
			IsCorrect: *judged.IsCorrect,
			Rationale: judged.Rationale,
			Trace:     quiz.Trace{Path: quiz.PathModelJudge, Attempts: len(res.Attempts)},
		}
	}

	j.logger.Info("model judge unavailable, using token overlap",
		"attempts", len(res.Attempts),
		"model_ok", res.OK(),
	)
	return fallbackVerdict(in)
}

func matchesVariant(user string, variants []string) bool {
	for _, v := range variants {
		if normalize.Answer(v) == user {
			return true
		}
	}
	return false
}

// ============================================================================
// Deterministic fallback
// ============================================================================

func fallbackVerdict(in ShortAnswer) quiz.Verdict {
	overlap := Overlap(in.ExpectedAnswer, in.AcceptableVariants, in.UserAnswer)
	rounded := math.Round(overlap*100) / 100

	return quiz.Verdict{
		IsCorrect: overlap >= PassingOverlap,
		Rationale: fmt.Sprintf("Model judge unavailable; graded by token overlap %.2f. Expected answer: %s", overlap, in.ExpectedAnswer),
		Trace:     quiz.Trace{Path: quiz.PathFallback, Overlap: &rounded},
	}
}

// Overlap is the best fraction of reference tokens found in the user's
// answer, taken over the expected answer and every variant. A reference with
// no tokens contributes zero.
func Overlap(expected string, variants []string, user string) float64 {
	userTokens := normalize.Tokenize(user)

	best := coverage(normalize.Tokenize(expected), userTokens)
	for _, v := range variants {
		if c := coverage(normalize.Tokenize(v), userTokens); c > best {
			best = c
		}
	}
	return best
}

func coverage(reference, user map[string]struct{}) float64 {
	if len(reference) == 0 {
		return 0
	}
	hits := 0
	for tok := range reference {
		if _, ok := user[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(reference))
}

// ============================================================================
// Prompt builder
// ============================================================================

func buildJudgePrompt(in ShortAnswer) string {
	variants := "(none)"
	if len(in.AcceptableVariants) > 0 {
		variants = "- " + strings.Join(in.AcceptableVariants, "\n- ")
	}

	return fmt.Sprintf(`You are a strict quiz grader. Judge the user's answer using ONLY the rubric below.

RULES:
- The answer is correct if it expresses the idea the rubric requires, even with different wording.
- Ignore spelling and grammar unless they change the meaning.
- Do not reward answers that are vague or that contradict the expected answer.

QUESTION:
%s

EXPECTED ANSWER:
%s

ACCEPTABLE VARIANTS:
%s

RUBRIC:
%s

USER'S ANSWER:
%s

Respond with ONLY a JSON object matching this schema, no markdown:
%s`,
		in.Prompt, in.ExpectedAnswer, variants, in.GradingRubric, in.UserAnswer,
		llm.SchemaJSON(&modelVerdict{}))
}
