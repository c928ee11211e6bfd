package quiz_test

import (
	"errors"
	"testing"
	"time"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

func intPtr(i int) *int { return &i }

func validMCQ() quiz.Question {
	return quiz.Question{
		Type:               quiz.TypeMultipleChoice,
		TopicTags:          []quiz.Topic{quiz.TopicAPI},
		Difficulty:         quiz.DifficultyEasy,
		Prompt:             "Which HTTP method is typically used for idempotent partial updates?",
		Options:            []string{"GET", "POST", "PATCH", "CONNECT"},
		CorrectOptionIndex: intPtr(2),
		Explanation:        "PATCH applies partial updates.",
	}
}

func validShortAnswer() quiz.Question {
	return quiz.Question{
		Type:               quiz.TypeShortAnswer,
		TopicTags:          []quiz.Topic{quiz.TopicStatistics},
		Difficulty:         quiz.DifficultyMedium,
		Prompt:             "What is the difference between variance and standard deviation?",
		ExpectedAnswer:     "Standard deviation is the square root of variance.",
		AcceptableVariants: []string{},
		GradingRubric:      "Must mention the sqrt relationship.",
		Explanation:        "Variance is in squared units.",
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *quiz.Question)
		base    func() quiz.Question
		wantErr bool
	}{
		{"valid mcq", func(q *quiz.Question) {}, validMCQ, false},
		{"mcq three options", func(q *quiz.Question) { q.Options = q.Options[:3] }, validMCQ, true},
		{"mcq missing index", func(q *quiz.Question) { q.CorrectOptionIndex = nil }, validMCQ, true},
		{"mcq index too high", func(q *quiz.Question) { q.CorrectOptionIndex = intPtr(4) }, validMCQ, true},
		{"mcq negative index", func(q *quiz.Question) { q.CorrectOptionIndex = intPtr(-1) }, validMCQ, true},
		{"valid short answer with empty variants", func(q *quiz.Question) {}, validShortAnswer, false},
		{"short answer nil variants", func(q *quiz.Question) { q.AcceptableVariants = nil }, validShortAnswer, true},
		{"short answer no expected", func(q *quiz.Question) { q.ExpectedAnswer = "" }, validShortAnswer, true},
		{"short answer no rubric", func(q *quiz.Question) { q.GradingRubric = "" }, validShortAnswer, true},
		{"mixed type", func(q *quiz.Question) { q.Type = quiz.TypeMixed }, validShortAnswer, true},
		{"no topics", func(q *quiz.Question) { q.TopicTags = nil }, validMCQ, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.base()
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionCorrectAnswer(t *testing.T) {
	if got := validMCQ().CorrectAnswer(); got != "PATCH" {
		t.Errorf("expected PATCH, got %q", got)
	}
	sa := validShortAnswer()
	if got := sa.CorrectAnswer(); got != sa.ExpectedAnswer {
		t.Errorf("expected %q, got %q", sa.ExpectedAnswer, got)
	}
}

func TestQuestionPrimaryTopic(t *testing.T) {
	q := validMCQ()
	q.TopicTags = []quiz.Topic{quiz.TopicMLOps, quiz.TopicAPI}
	if q.PrimaryTopic() != quiz.TopicMLOps {
		t.Errorf("expected primary topic %q, got %q", quiz.TopicMLOps, q.PrimaryTopic())
	}
	if !q.HasTopic(quiz.TopicAPI) {
		t.Error("expected HasTopic to find the secondary tag")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := quiz.Config{
		Topics:       []quiz.Topic{quiz.TopicMachineLearning},
		Difficulty:   quiz.DifficultyMedium,
		QuestionType: quiz.TypeMixed,
		NumQuestions: 4,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(c *quiz.Config){
		"no topics":      func(c *quiz.Config) { c.Topics = nil },
		"bad topic":      func(c *quiz.Config) { c.Topics = []quiz.Topic{"Astrology"} },
		"bad difficulty": func(c *quiz.Config) { c.Difficulty = "insane" },
		"bad type":       func(c *quiz.Config) { c.QuestionType = "essay" },
		"zero questions": func(c *quiz.Config) { c.NumQuestions = 0 },
		"too many":       func(c *quiz.Config) { c.NumQuestions = 16 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			c.Topics = append([]quiz.Topic(nil), valid.Topics...)
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, quiz.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestResolveTopic(t *testing.T) {
	tests := []struct {
		in     string
		want   quiz.Topic
		wantOK bool
	}{
		{"Statistics", quiz.TopicStatistics, true},
		{"MLOps technical concepts", quiz.TopicMLOps, true},
		{"mlops", quiz.TopicMLOps, true},
		{"statistics", quiz.TopicStatistics, true},
		{"zzz", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := quiz.ResolveTopic(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveTopic(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEnumsAreClosed(t *testing.T) {
	if len(quiz.Topics()) != 8 {
		t.Errorf("expected 8 topics, got %d", len(quiz.Topics()))
	}
	for _, topic := range quiz.Topics() {
		if !topic.Valid() {
			t.Errorf("listed topic %q is not valid", topic)
		}
	}
	if quiz.TypeMixed.Concrete() {
		t.Error("mixed must not be a concrete question type")
	}
	if !quiz.TypeMultipleChoice.Concrete() || !quiz.TypeShortAnswer.Concrete() {
		t.Error("mcq and short-answer must be concrete")
	}
}

func TestNewSessionQuestions_AssignsOrder(t *testing.T) {
	session := quiz.NewSession(quiz.Config{}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	qs := quiz.NewSessionQuestions(session.ID, []quiz.Question{validMCQ(), validShortAnswer()})

	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.OrderIndex != i+1 {
			t.Errorf("question %d: expected order index %d, got %d", i, i+1, q.OrderIndex)
		}
		if q.SessionID != session.ID {
			t.Errorf("question %d: expected session id %q, got %q", i, session.ID, q.SessionID)
		}
		if q.ID == "" {
			t.Errorf("question %d: expected non-empty id", i)
		}
	}
	if qs[0].ID == qs[1].ID {
		t.Error("expected distinct question ids")
	}
}
