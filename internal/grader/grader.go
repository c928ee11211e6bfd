package grader

import (
	"context"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

// ShortAnswer is everything needed to grade one short-answer submission.
type ShortAnswer struct {
	Prompt             string
	ExpectedAnswer     string
	AcceptableVariants []string
	GradingRubric      string
	UserAnswer         string
}

// Grader grades a user's answer against an expected answer.
// Implementations always return a verdict; there is no error path.
type Grader interface {
	Grade(ctx context.Context, in ShortAnswer) quiz.Verdict
}
