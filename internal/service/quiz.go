package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/grader"
	"github.com/AksChougule/lairn/internal/id"
	"github.com/AksChougule/lairn/internal/normalize"
	"github.com/AksChougule/lairn/internal/store"
)

var (
	ErrAnswerRequired        = errors.New("answer is required for short-answer")
	ErrOptionRequired        = errors.New("option_index is required for MCQ")
	ErrOptionOutOfRange      = errors.New("option_index is out of range")
	ErrMisconfiguredQuestion = errors.New("question is misconfigured")

	ErrSessionNotFound  = fmt.Errorf("session %w", store.ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("question %w", store.ErrNotFound)
)

// QuestionGenerator produces the questions for a new session.
type QuestionGenerator interface {
	Generate(ctx context.Context, cfg quiz.Config) ([]quiz.Question, error)
}

// ModelProbe reports whether the model server can serve requests.
type ModelProbe interface {
	CheckReachability(ctx context.Context) (bool, string)
}

// QuizService runs quiz sessions: it generates questions on creation, grades
// submitted answers once, and tallies scores. Every call is a single
// sequential chain; the store is the only state shared between requests.
type QuizService struct {
	store     store.Store
	generator QuestionGenerator
	grader    grader.Grader
	probe     ModelProbe
	logger    *slog.Logger
	now       func() time.Time
}

// NewQuizService creates a QuizService.
func NewQuizService(s store.Store, gen QuestionGenerator, g grader.Grader, probe ModelProbe, logger *slog.Logger) *QuizService {
	return &QuizService{
		store:     s,
		generator: gen,
		grader:    g,
		probe:     probe,
		logger:    logger,
		now:       time.Now,
	}
}

// ============================================================================
// Sessions
// ============================================================================

// CreatedSession is a freshly stored session with its questions in order.
type CreatedSession struct {
	Session   *quiz.Session
	Questions []quiz.SessionQuestion
}

// CreateSession generates questions for cfg and stores them with the session
// in one transaction.
func (qs *QuizService) CreateSession(ctx context.Context, cfg quiz.Config) (*CreatedSession, error) {
	questions, err := qs.generator.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	session := quiz.NewSession(cfg, qs.now())
	stored := quiz.NewSessionQuestions(session.ID, questions)
	if err := qs.store.CreateSession(ctx, session, stored); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	qs.logger.Info("quiz session created",
		"session_id", session.ID,
		"num_questions", len(stored),
		"question_type", cfg.QuestionType,
	)
	return &CreatedSession{Session: session, Questions: stored}, nil
}

// SessionSummary is the score of one session, overall and per primary topic.
type SessionSummary struct {
	Session *quiz.Session
	Correct int
	Total   int
	ByTopic []TopicScore
}

// TopicScore tallies the questions whose primary topic is Topic.
type TopicScore struct {
	Topic   quiz.Topic
	Correct int
	Total   int
}

// Summary scores a session. Topics appear in the order their first question
// appears.
func (qs *QuizService) Summary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	session, err := qs.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	questions, err := qs.store.ListQuestions(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := qs.store.ListAnswers(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	correctByQuestion := lo.SliceToMap(answers, func(a quiz.Answer) (string, bool) {
		return a.QuestionID, a.IsCorrect
	})

	summary := &SessionSummary{Session: session, Total: len(questions)}
	index := make(map[quiz.Topic]int)
	for _, q := range questions {
		topic := q.PrimaryTopic()
		i, seen := index[topic]
		if !seen {
			i = len(summary.ByTopic)
			index[topic] = i
			summary.ByTopic = append(summary.ByTopic, TopicScore{Topic: topic})
		}
		summary.ByTopic[i].Total++
		if correctByQuestion[q.ID] {
			summary.ByTopic[i].Correct++
			summary.Correct++
		}
	}
	return summary, nil
}

func (qs *QuizService) getSession(ctx context.Context, id string) (*quiz.Session, error) {
	session, err := qs.store.GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return session, err
}

// ListSessions returns a page of sessions ordered by creation time.
func (qs *QuizService) ListSessions(ctx context.Context, limit, offset int) ([]store.SessionScore, error) {
	return qs.store.ListSessions(ctx, limit, offset)
}

// ============================================================================
// Answers
// ============================================================================

// AnswerInput is a submission. Multiple-choice questions read OptionIndex;
// short-answer questions read Answer.
type AnswerInput struct {
	Answer      *string
	OptionIndex *int
}

// AnswerResult is the stored answer together with the question's correct
// answer text.
type AnswerResult struct {
	Answer        *quiz.Answer
	CorrectAnswer string
}

// SubmitAnswer grades and stores the first answer to a question. Later
// submissions return the stored answer without grading again.
func (qs *QuizService) SubmitAnswer(ctx context.Context, sessionID, questionID string, in AnswerInput) (*AnswerResult, error) {
	if _, err := qs.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	question, err := qs.store.GetQuestion(ctx, sessionID, questionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	if prior, err := qs.store.GetAnswer(ctx, sessionID, questionID); err == nil {
		return &AnswerResult{Answer: prior, CorrectAnswer: question.CorrectAnswer()}, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	answer := &quiz.Answer{
		ID:          id.GenerateID(),
		SessionID:   sessionID,
		QuestionID:  questionID,
		UserAnswer:  in.Answer,
		OptionIndex: in.OptionIndex,
		CreatedAt:   qs.now().UTC(),
	}

	switch question.Type {
	case quiz.TypeMultipleChoice:
		err = gradeMultipleChoice(question, in, answer)
	case quiz.TypeShortAnswer:
		err = qs.gradeShortAnswer(ctx, question, in, answer)
	default:
		err = fmt.Errorf("%w: unknown type %q", ErrMisconfiguredQuestion, question.Type)
	}
	if err != nil {
		return nil, err
	}

	err = qs.store.SaveAnswer(ctx, answer)
	if errors.Is(err, store.ErrAlreadyAnswered) {
		// A concurrent submission got there first; its answer stands.
		prior, err := qs.store.GetAnswer(ctx, sessionID, questionID)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{Answer: prior, CorrectAnswer: question.CorrectAnswer()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store answer: %w", err)
	}

	qs.logger.Info("answer graded",
		"session_id", sessionID,
		"question_id", questionID,
		"type", question.Type,
		"is_correct", answer.IsCorrect,
	)
	return &AnswerResult{Answer: answer, CorrectAnswer: question.CorrectAnswer()}, nil
}

func gradeMultipleChoice(q *quiz.SessionQuestion, in AnswerInput, a *quiz.Answer) error {
	if in.OptionIndex == nil {
		return ErrOptionRequired
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMisconfiguredQuestion, err)
	}
	selected := *in.OptionIndex
	if selected < 0 || selected >= len(q.Options) {
		return fmt.Errorf("%w: must be between 0 and %d", ErrOptionOutOfRange, len(q.Options)-1)
	}

	correct := *q.CorrectOptionIndex
	a.IsCorrect = selected == correct
	a.NormalizedUserAnswer = normalize.Answer(q.Options[selected])
	a.Feedback = q.Explanation
	a.WhyOthersWrong = lo.FilterMap(q.Options, func(option string, i int) (string, bool) {
		return fmt.Sprintf("'%s' is incorrect because it does not satisfy the prompt constraints.", option), i != correct
	})
	return nil
}

func (qs *QuizService) gradeShortAnswer(ctx context.Context, q *quiz.SessionQuestion, in AnswerInput, a *quiz.Answer) error {
	if in.Answer == nil || strings.TrimSpace(*in.Answer) == "" {
		return ErrAnswerRequired
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMisconfiguredQuestion, err)
	}

	verdict := qs.grader.Grade(ctx, grader.ShortAnswer{
		Prompt:             q.Prompt,
		ExpectedAnswer:     q.ExpectedAnswer,
		AcceptableVariants: q.AcceptableVariants,
		GradingRubric:      q.GradingRubric,
		UserAnswer:         *in.Answer,
	})
	trace := verdict.Trace

	a.IsCorrect = verdict.IsCorrect
	a.NormalizedUserAnswer = normalize.Answer(*in.Answer)
	a.Feedback = verdict.Rationale
	a.WhyOthersWrong = []string{}
	a.JudgeTrace = &trace
	return nil
}

// ============================================================================
// Health
// ============================================================================

// ModelHealth reports model server reachability.
type ModelHealth struct {
	Reachable bool
	Model     string
}

// Health probes the model server. It never fails.
func (qs *QuizService) Health(ctx context.Context) ModelHealth {
	reachable, model := qs.probe.CheckReachability(ctx)
	return ModelHealth{Reachable: reachable, Model: model}
}
