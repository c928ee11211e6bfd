package store

import (
	"context"
	"errors"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// SessionScore pairs a session with its running tally of correct answers.
type SessionScore struct {
	Session *quiz.Session
	Correct int
}

// Store persists sessions, their generated questions and the single answer
// each question may receive.
type Store interface {
	// CreateSession stores the session and all its questions atomically.
	CreateSession(ctx context.Context, s *quiz.Session, questions []quiz.SessionQuestion) error
	GetSession(ctx context.Context, id string) (*quiz.Session, error)
	ListSessions(ctx context.Context, limit, offset int) ([]SessionScore, error)

	// ListQuestions returns a session's questions ordered by order index.
	ListQuestions(ctx context.Context, sessionID string) ([]quiz.SessionQuestion, error)
	GetQuestion(ctx context.Context, sessionID, questionID string) (*quiz.SessionQuestion, error)

	// SaveAnswer stores the first answer to a question and marks the session
	// complete when every question is answered. A second answer to the same
	// question returns ErrAlreadyAnswered and changes nothing.
	SaveAnswer(ctx context.Context, a *quiz.Answer) error
	GetAnswer(ctx context.Context, sessionID, questionID string) (*quiz.Answer, error)
	ListAnswers(ctx context.Context, sessionID string) ([]quiz.Answer, error)

	Ping(ctx context.Context) error
	Close() error
}
