package generator

import (
	"errors"
	"fmt"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

// questionBatch is the JSON shape requested from the model for both batch
// generation and single-question regeneration.
type questionBatch struct {
	Questions []wireQuestion `json:"questions"`
}

type wireQuestion struct {
	Type               quiz.QuestionType `json:"type" jsonschema:"description=mcq or short-answer"`
	TopicTags          []quiz.Topic      `json:"topic_tags" jsonschema:"minItems=1,description=Allowed topic values only; the first is the primary topic"`
	Difficulty         quiz.Difficulty   `json:"difficulty" jsonschema:"description=easy or medium or hard"`
	Prompt             string            `json:"prompt"`
	Options            []string          `json:"options,omitempty" jsonschema:"description=Exactly 4 options for mcq; null otherwise"`
	CorrectOptionIndex *int              `json:"correct_option_index,omitempty" jsonschema:"description=0 to 3 for mcq; null otherwise"`
	ExpectedAnswer     *string           `json:"expected_answer,omitempty" jsonschema:"description=Required for short-answer"`
	AcceptableVariants []string          `json:"acceptable_variants,omitempty" jsonschema:"description=Required for short-answer; may be empty"`
	GradingRubric      *string           `json:"grading_rubric,omitempty" jsonschema:"description=Required for short-answer"`
	Explanation        string            `json:"explanation" jsonschema:"description=2 to 6 sentences"`
}

func (b *questionBatch) Validate() error {
	if b.Questions == nil {
		return errors.New("questions is required")
	}
	for i, q := range b.Questions {
		if err := q.validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// validate checks field types and enum values. Per-type structural rules are
// checked later on the converted question.
func (q wireQuestion) validate() error {
	if !q.Type.Concrete() {
		return fmt.Errorf("invalid type %q", q.Type)
	}
	if len(q.TopicTags) == 0 {
		return errors.New("topic_tags must not be empty")
	}
	for _, t := range q.TopicTags {
		if !t.Valid() {
			return fmt.Errorf("invalid topic %q", t)
		}
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if q.Prompt == "" {
		return errors.New("prompt is required")
	}
	if q.Explanation == "" {
		return errors.New("explanation is required")
	}
	return nil
}

// toQuestion keeps only the fields that belong to the question's type.
func (q wireQuestion) toQuestion() quiz.Question {
	out := quiz.Question{
		Type:        q.Type,
		TopicTags:   append([]quiz.Topic(nil), q.TopicTags...),
		Difficulty:  q.Difficulty,
		Prompt:      q.Prompt,
		Explanation: q.Explanation,
	}
	switch q.Type {
	case quiz.TypeMultipleChoice:
		out.Options = q.Options
		out.CorrectOptionIndex = q.CorrectOptionIndex
	case quiz.TypeShortAnswer, quiz.TypeMixed:
		if q.ExpectedAnswer != nil {
			out.ExpectedAnswer = *q.ExpectedAnswer
		}
		out.AcceptableVariants = q.AcceptableVariants
		if q.GradingRubric != nil {
			out.GradingRubric = *q.GradingRubric
		}
	}
	return out
}
