package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/store"
)

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func sampleQuestions() []quiz.Question {
	return []quiz.Question{
		{
			Type:               quiz.TypeMultipleChoice,
			TopicTags:          []quiz.Topic{quiz.TopicAPI},
			Difficulty:         quiz.DifficultyEasy,
			Prompt:             "Which method is idempotent?",
			Options:            []string{"POST", "PUT", "PATCH", "CONNECT"},
			CorrectOptionIndex: intPtr(1),
			Explanation:        "PUT replaces the resource.",
		},
		{
			Type:               quiz.TypeShortAnswer,
			TopicTags:          []quiz.Topic{quiz.TopicStatistics},
			Difficulty:         quiz.DifficultyEasy,
			Prompt:             "What is a median?",
			ExpectedAnswer:     "The middle value.",
			AcceptableVariants: []string{},
			GradingRubric:      "Mentions middle.",
			Explanation:        "Half the values lie on either side.",
		},
	}
}

func createSession(t *testing.T, s store.Store, created time.Time) (*quiz.Session, []quiz.SessionQuestion) {
	t.Helper()
	cfg := quiz.Config{
		Topics:       []quiz.Topic{quiz.TopicAPI, quiz.TopicStatistics},
		Difficulty:   quiz.DifficultyEasy,
		QuestionType: quiz.TypeMixed,
		NumQuestions: 2,
	}
	session := quiz.NewSession(cfg, created)
	questions := quiz.NewSessionQuestions(session.ID, sampleQuestions())
	if err := s.CreateSession(context.Background(), session, questions); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session, questions
}

func TestSQLStore_SessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC)
	session, questions := createSession(t, s, created)

	got, err := s.GetSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, got.CreatedAt)
	}
	if got.CompletedAt != nil {
		t.Error("expected new session to be incomplete")
	}
	if len(got.Config.Topics) != 2 || got.Config.Topics[1] != quiz.TopicStatistics || got.Config.QuestionType != quiz.TypeMixed {
		t.Errorf("unexpected config %+v", got.Config)
	}

	stored, err := s.ListQuestions(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(stored))
	}
	for i, q := range stored {
		if q.ID != questions[i].ID || q.OrderIndex != i+1 {
			t.Errorf("question %d: unexpected id/order %s/%d", i, q.ID, q.OrderIndex)
		}
		if err := q.Validate(); err != nil {
			t.Errorf("question %d no longer valid after round trip: %v", i, err)
		}
	}
	if *stored[0].CorrectOptionIndex != 1 {
		t.Errorf("expected correct option 1, got %d", *stored[0].CorrectOptionIndex)
	}
}

func TestSQLStore_NotFound(t *testing.T) {
	s := newTestStore(t)
	session, questions := createSession(t, s, time.Now())

	if _, err := s.GetSession(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for session, got %v", err)
	}
	if _, err := s.GetQuestion(context.Background(), "other-session", questions[0].ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for question of another session, got %v", err)
	}
	if _, err := s.GetAnswer(context.Background(), session.ID, questions[0].ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unanswered question, got %v", err)
	}
}

func TestSQLStore_FirstAnswerWinsAndCompletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	session, questions := createSession(t, s, time.Now())

	first := &quiz.Answer{
		ID:                   "a1",
		SessionID:            session.ID,
		QuestionID:           questions[0].ID,
		OptionIndex:          intPtr(1),
		NormalizedUserAnswer: "put",
		IsCorrect:            true,
		Feedback:             "PUT replaces the resource.",
		WhyOthersWrong:       []string{"'POST' is incorrect because it does not satisfy the prompt constraints."},
		CreatedAt:            time.Now(),
	}
	if err := s.SaveAnswer(ctx, first); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	second := *first
	second.ID = "a2"
	second.OptionIndex = intPtr(0)
	second.IsCorrect = false
	if err := s.SaveAnswer(ctx, &second); !errors.Is(err, store.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}

	got, err := s.GetAnswer(ctx, session.ID, questions[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "a1" || !got.IsCorrect || *got.OptionIndex != 1 || got.UserAnswer != nil {
		t.Errorf("expected first answer to be kept, got %+v", got)
	}

	sess, _ := s.GetSession(ctx, session.ID)
	if sess.CompletedAt != nil {
		t.Fatal("session should not be complete after one of two answers")
	}

	overlap := 0.25
	shortAnswer := &quiz.Answer{
		ID:                   "a3",
		SessionID:            session.ID,
		QuestionID:           questions[1].ID,
		UserAnswer:           strPtr("no idea"),
		NormalizedUserAnswer: "no idea",
		Feedback:             "Model judge unavailable.",
		JudgeTrace:           &quiz.Trace{Path: quiz.PathFallback, Overlap: &overlap},
		CreatedAt:            time.Now(),
	}
	if err := s.SaveAnswer(ctx, shortAnswer); err != nil {
		t.Fatalf("save short answer: %v", err)
	}

	sess, _ = s.GetSession(ctx, session.ID)
	if sess.CompletedAt == nil {
		t.Fatal("expected session to be complete")
	}

	answers, err := s.ListAnswers(ctx, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	for _, a := range answers {
		if a.ID == "a3" {
			if a.JudgeTrace == nil || a.JudgeTrace.Path != quiz.PathFallback || *a.JudgeTrace.Overlap != 0.25 {
				t.Errorf("judge trace not preserved: %+v", a.JudgeTrace)
			}
			if a.WhyOthersWrong == nil || len(a.WhyOthersWrong) != 0 {
				t.Errorf("expected empty why_others_wrong, got %v", a.WhyOthersWrong)
			}
		}
	}
}

func TestSQLStore_ListSessionsOrderAndScore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	later, laterQs := createSession(t, s, base.Add(time.Hour))
	earlier, _ := createSession(t, s, base)

	err := s.SaveAnswer(ctx, &quiz.Answer{
		ID: "a1", SessionID: later.ID, QuestionID: laterQs[0].ID,
		OptionIndex: intPtr(1), NormalizedUserAnswer: "put", IsCorrect: true, CreatedAt: base,
	})
	if err != nil {
		t.Fatal(err)
	}

	list, err := s.ListSessions(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].Session.ID != earlier.ID || list[1].Session.ID != later.ID {
		t.Error("expected sessions ordered by creation time")
	}
	if list[0].Correct != 0 || list[1].Correct != 1 {
		t.Errorf("unexpected scores %d, %d", list[0].Correct, list[1].Correct)
	}

	page, err := s.ListSessions(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].Session.ID != later.ID {
		t.Errorf("expected second page to hold the later session, got %+v", page)
	}
}

func TestParseDriver(t *testing.T) {
	if d, err := store.ParseDriver("postgres"); err != nil || d != store.DriverPostgres {
		t.Errorf("expected postgres driver, got %q, %v", d, err)
	}
	if _, err := store.ParseDriver("mysql"); err == nil {
		t.Error("expected unsupported driver error")
	}
}
