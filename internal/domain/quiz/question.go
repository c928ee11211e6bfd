package quiz

import (
	"errors"
	"fmt"
)

// MultipleChoiceOptions is the exact number of options a multiple-choice
// question carries.
const MultipleChoiceOptions = 4

// Question is a generated quiz question. Multiple-choice questions populate
// Options and CorrectOptionIndex; short-answer questions populate
// ExpectedAnswer, AcceptableVariants and GradingRubric.
type Question struct {
	Type               QuestionType `json:"type"`
	TopicTags          []Topic      `json:"topic_tags"`
	Difficulty         Difficulty   `json:"difficulty"`
	Prompt             string       `json:"prompt"`
	Options            []string     `json:"options,omitempty"`
	CorrectOptionIndex *int         `json:"correct_option_index,omitempty"`
	ExpectedAnswer     string       `json:"expected_answer,omitempty"`
	AcceptableVariants []string     `json:"acceptable_variants,omitempty"`
	GradingRubric      string       `json:"grading_rubric,omitempty"`
	Explanation        string       `json:"explanation"`
}

// PrimaryTopic is the first topic tag, used for scoring.
func (q Question) PrimaryTopic() Topic {
	if len(q.TopicTags) == 0 {
		return ""
	}
	return q.TopicTags[0]
}

// HasTopic reports whether t is among the question's tags.
func (q Question) HasTopic(t Topic) bool {
	for _, tag := range q.TopicTags {
		if tag == t {
			return true
		}
	}
	return false
}

// Validate checks the structural rules for the question's type.
func (q Question) Validate() error {
	if len(q.TopicTags) == 0 {
		return errors.New("question has no topic tags")
	}
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) != MultipleChoiceOptions {
			return fmt.Errorf("multiple-choice question needs %d options, got %d", MultipleChoiceOptions, len(q.Options))
		}
		if q.CorrectOptionIndex == nil {
			return errors.New("multiple-choice question has no correct option")
		}
		if i := *q.CorrectOptionIndex; i < 0 || i >= MultipleChoiceOptions {
			return fmt.Errorf("correct option index %d out of range", i)
		}
		return nil
	case TypeShortAnswer:
		if q.ExpectedAnswer == "" {
			return errors.New("short-answer question has no expected answer")
		}
		if q.AcceptableVariants == nil {
			return errors.New("short-answer question has no variants list")
		}
		if q.GradingRubric == "" {
			return errors.New("short-answer question has no grading rubric")
		}
		return nil
	case TypeMixed:
		return errors.New("question type cannot be mixed")
	}
	return fmt.Errorf("unknown question type %q", q.Type)
}

// CorrectAnswer is the text shown to the user after answering. It is empty
// for a question whose answer fields are missing.
func (q Question) CorrectAnswer() string {
	switch q.Type {
	case TypeMultipleChoice:
		if q.CorrectOptionIndex == nil {
			return ""
		}
		if i := *q.CorrectOptionIndex; i >= 0 && i < len(q.Options) {
			return q.Options[i]
		}
		return ""
	case TypeShortAnswer, TypeMixed:
		return q.ExpectedAnswer
	}
	return ""
}

// WithPrompt returns a copy of q with a different prompt.
func (q Question) WithPrompt(prompt string) Question {
	q.Prompt = prompt
	return q
}
