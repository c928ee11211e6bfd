package grader_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/grader"
	"github.com/AksChougule/lairn/internal/llm/llmtest"
)

func overfitting(answer string) grader.ShortAnswer {
	return grader.ShortAnswer{
		Prompt:             "What is overfitting in machine learning?",
		ExpectedAnswer:     "A model learns training noise and fails to generalize.",
		AcceptableVariants: []string{"memorizes training data", "poor generalization on unseen data"},
		GradingRubric:      "Answer must mention training-fit with poor unseen/generalization performance.",
		UserAnswer:         answer,
	}
}

func newJudge(c *llmtest.Completer) *grader.ShortAnswerJudge {
	return grader.NewShortAnswerJudge(llmtest.Gateway(c), slog.New(slog.DiscardHandler))
}

func TestGrade_ContainmentMatch(t *testing.T) {
	model := llmtest.Unreachable()
	v := newJudge(model).Grade(context.Background(), overfitting("I think a model learns training noise and fails to generalize, basically."))

	if !v.IsCorrect || v.Trace.Path != quiz.PathContains {
		t.Errorf("expected correct containment verdict, got %+v", v)
	}
	if model.Calls() != 0 {
		t.Errorf("expected no model calls, got %d", model.Calls())
	}
}

func TestGrade_VariantMatch(t *testing.T) {
	model := llmtest.Unreachable()
	v := newJudge(model).Grade(context.Background(), overfitting("Memorizes training-data!"))

	if !v.IsCorrect || v.Trace.Path != quiz.PathExactOrVariant {
		t.Errorf("expected correct variant verdict, got %+v", v)
	}
	if model.Calls() != 0 {
		t.Errorf("expected no model calls, got %d", model.Calls())
	}
}

func TestGrade_NormalizedEqualIsAlwaysCorrect(t *testing.T) {
	v := newJudge(llmtest.Unreachable()).Grade(context.Background(), overfitting("a MODEL learns training noise, and fails to generalize"))

	if !v.IsCorrect {
		t.Fatalf("expected correct, got %+v", v)
	}
	if v.Trace.Path != quiz.PathContains && v.Trace.Path != quiz.PathExactOrVariant {
		t.Errorf("unexpected path %q", v.Trace.Path)
	}
}

func TestGrade_ModelJudge(t *testing.T) {
	model := llmtest.Script(`{"is_correct": false, "rationale": "Does not mention generalization."}`)
	v := newJudge(model).Grade(context.Background(), overfitting("It trains for too long."))

	if v.IsCorrect {
		t.Error("expected the model's incorrect verdict")
	}
	if v.Trace.Path != quiz.PathModelJudge || v.Trace.Attempts != 1 {
		t.Errorf("unexpected trace %+v", v.Trace)
	}
	if v.Rationale != "Does not mention generalization." {
		t.Errorf("unexpected rationale %q", v.Rationale)
	}

	prompt := model.Prompts()[0]
	for _, want := range []string{"What is overfitting", "memorizes training data", "Answer must mention", "It trains for too long.", "is_correct"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("judge prompt missing %q", want)
		}
	}
}

func TestGrade_ModelJudgeRetriesMalformedReply(t *testing.T) {
	model := llmtest.Script("oops", `{"is_correct": true, "rationale": "Mentions poor generalization."}`)
	v := newJudge(model).Grade(context.Background(), overfitting("Works on train, bad on new data."))

	if !v.IsCorrect || v.Trace.Path != quiz.PathModelJudge || v.Trace.Attempts != 2 {
		t.Errorf("expected model verdict after one retry, got %+v", v)
	}
}

func TestGrade_BlankRationaleFallsThrough(t *testing.T) {
	model := llmtest.Script(`{"is_correct": true, "rationale": "   "}`)
	v := newJudge(model).Grade(context.Background(), overfitting("Something about GPUs."))

	if v.Trace.Path != quiz.PathFallback {
		t.Fatalf("expected fallback path, got %q", v.Trace.Path)
	}
	if v.IsCorrect {
		t.Error("expected fallback to mark an unrelated answer incorrect")
	}
}

func TestGrade_FallbackCorrectByVariantOverlap(t *testing.T) {
	model := llmtest.Unreachable()
	v := newJudge(model).Grade(context.Background(), overfitting("The model memorizes training data and performs poorly on unseen examples."))

	if !v.IsCorrect || v.Trace.Path != quiz.PathFallback {
		t.Fatalf("expected correct fallback verdict, got %+v", v)
	}
	if !strings.Contains(v.Rationale, "Expected answer:") || !strings.Contains(v.Rationale, "1.00") {
		t.Errorf("rationale should state expected answer and overlap, got %q", v.Rationale)
	}
	if v.Trace.Overlap == nil || *v.Trace.Overlap != 1 {
		t.Errorf("expected overlap 1 in trace, got %v", v.Trace.Overlap)
	}
	if model.Calls() != 3 {
		t.Errorf("expected 3 model attempts before fallback, got %d", model.Calls())
	}
}

func TestGrade_FallbackIncorrectBelowThreshold(t *testing.T) {
	v := newJudge(llmtest.Unreachable()).Grade(context.Background(), overfitting("It is about GPUs."))

	if v.IsCorrect || v.Trace.Path != quiz.PathFallback {
		t.Errorf("expected incorrect fallback verdict, got %+v", v)
	}
	if v.Trace.Overlap == nil || *v.Trace.Overlap != 0 {
		t.Errorf("expected zero overlap, got %v", v.Trace.Overlap)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		variants []string
		user     string
		want     float64
	}{
		{"exact threshold", "alpha beta gamma delta epsilon", nil, "alpha beta gamma", 0.6},
		{"variant wins", "one two three four", []string{"five six"}, "five six seven", 1},
		{"empty expected tokens", "?!", nil, "anything", 0},
		{"empty variant tokens", "one two", []string{"..."}, "zero", 0},
		{"repeated user tokens count once", "a b c d", nil, "a a a a", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grader.Overlap(tt.expected, tt.variants, tt.user); got != tt.want {
				t.Errorf("Overlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlap_ThresholdIsInclusive(t *testing.T) {
	v := newJudge(llmtest.Unreachable()).Grade(context.Background(), grader.ShortAnswer{
		Prompt:             "Name five Greek letters.",
		ExpectedAnswer:     "alpha beta gamma delta epsilon",
		AcceptableVariants: []string{},
		GradingRubric:      "Five letters.",
		UserAnswer:         "gamma alpha beta",
	})
	if !v.IsCorrect {
		t.Errorf("expected overlap of exactly 0.6 to pass, got %+v", v)
	}
}
