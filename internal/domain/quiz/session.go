package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/AksChougule/lairn/internal/id"
)

const (
	MinQuestions = 1
	MaxQuestions = 15
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid quiz config")

// Config holds the parameters a session was created with.
type Config struct {
	Topics       []Topic      `json:"topics"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
	NumQuestions int          `json:"num_questions"`
}

func (c Config) Validate() error {
	if len(c.Topics) == 0 {
		return fmt.Errorf("%w: at least one topic is required", ErrInvalidConfig)
	}
	for _, t := range c.Topics {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown topic %q", ErrInvalidConfig, t)
		}
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, c.Difficulty)
	}
	if !c.QuestionType.Valid() {
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidConfig, c.QuestionType)
	}
	if c.NumQuestions < MinQuestions || c.NumQuestions > MaxQuestions {
		return fmt.Errorf("%w: num_questions must be between %d and %d", ErrInvalidConfig, MinQuestions, MaxQuestions)
	}
	return nil
}

// Session is a persisted quiz session.
type Session struct {
	ID          string
	Config      Config
	CreatedAt   time.Time
	CompletedAt *time.Time // nil until every question has an answer
}

// NewSession creates a session with a generated ID.
func NewSession(cfg Config, now time.Time) *Session {
	return &Session{
		ID:        id.GenerateID(),
		Config:    cfg,
		CreatedAt: now.UTC(),
	}
}

// SessionQuestion is a generated question stored within a session.
type SessionQuestion struct {
	ID         string
	SessionID  string
	OrderIndex int // 1-based
	Question
}

// NewSessionQuestions assigns IDs and 1-based order indices to questions.
func NewSessionQuestions(sessionID string, questions []Question) []SessionQuestion {
	out := make([]SessionQuestion, len(questions))
	for i, q := range questions {
		out[i] = SessionQuestion{
			ID:         id.GenerateID(),
			SessionID:  sessionID,
			OrderIndex: i + 1,
			Question:   q,
		}
	}
	return out
}

// Answer is the single stored answer to a session question.
type Answer struct {
	ID                   string
	SessionID            string
	QuestionID           string
	UserAnswer           *string
	OptionIndex          *int
	NormalizedUserAnswer string
	IsCorrect            bool
	Feedback             string
	WhyOthersWrong       []string
	JudgeTrace           *Trace // short-answer only
	CreatedAt            time.Time
}
