package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/service"
	"github.com/AksChougule/lairn/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Topics       []string `json:"topics" example:"Statistics,MLOps technical concepts"`
	Difficulty   string   `json:"difficulty" example:"medium"`
	QuestionType string   `json:"question_type" example:"mixed"`
	NumQuestions int      `json:"num_questions" example:"5"`

	config quiz.Config
}

// Validate resolves topic aliases and checks every field. On success the
// resolved configuration is available from Config.
func (r *CreateSessionRequest) Validate() error {
	if len(r.Topics) == 0 {
		return errors.New("topics must contain at least one topic")
	}
	topics := make([]quiz.Topic, 0, len(r.Topics))
	for _, raw := range r.Topics {
		t, ok := quiz.ResolveTopic(raw)
		if !ok {
			return fmt.Errorf("unknown topic %q", raw)
		}
		topics = append(topics, t)
	}

	cfg := quiz.Config{
		Topics:       topics,
		Difficulty:   quiz.Difficulty(r.Difficulty),
		QuestionType: quiz.QuestionType(r.QuestionType),
		NumQuestions: r.NumQuestions,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.config = cfg
	return nil
}

func (r *CreateSessionRequest) Config() quiz.Config { return r.config }

// SessionConfig echoes the parameters a session was created with.
type SessionConfig struct {
	Topics       []string `json:"topics" example:"Statistics"`
	Difficulty   string   `json:"difficulty" example:"medium"`
	QuestionType string   `json:"question_type" example:"mixed"`
	NumQuestions int      `json:"num_questions" example:"5"`
}

// PublicQuestion never carries the answer, rubric or explanation.
type PublicQuestion struct {
	ID         string   `json:"id" example:"3f0e3c52-6f0e-4a57-9d8b-0c1f0e6f3b11"`
	OrderIndex int      `json:"order_index" example:"1"`
	Type       string   `json:"type" example:"mcq"`
	TopicTags  []string `json:"topic_tags" example:"Statistics"`
	Difficulty string   `json:"difficulty" example:"medium"`
	Prompt     string   `json:"prompt" example:"What does a p-value represent in hypothesis testing?"`
	Options    []string `json:"options"`
}

type CreateSessionResponse struct {
	SessionID string           `json:"session_id" example:"9b2d3c1e-7a44-4f6b-8d7e-2a1b3c4d5e6f"`
	CreatedAt string           `json:"created_at" example:"2026-01-01T12:00:00Z"`
	Config    SessionConfig    `json:"config"`
	Questions []PublicQuestion `json:"questions"`
}

type SubmitAnswerRequest struct {
	Answer      *string `json:"answer,omitempty" example:"The square root of variance."`
	OptionIndex *int    `json:"option_index,omitempty" example:"1"`
}

type SubmitAnswerResponse struct {
	IsCorrect            bool     `json:"is_correct" example:"true"`
	CorrectAnswer        string   `json:"correct_answer" example:"Validation set"`
	Explanation          string   `json:"explanation"`
	WhyOthersWrong       []string `json:"why_others_wrong"`
	NormalizedUserAnswer string   `json:"normalized_user_answer" example:"validation set"`
}

type ScoreResponse struct {
	Correct int `json:"correct" example:"3"`
	Total   int `json:"total" example:"5"`
}

type TopicScoreResponse struct {
	Topic   string `json:"topic" example:"Statistics"`
	Correct int    `json:"correct" example:"1"`
	Total   int    `json:"total" example:"2"`
}

type SummaryResponse struct {
	SessionID   string               `json:"session_id"`
	Score       ScoreResponse        `json:"score"`
	ByTopic     []TopicScoreResponse `json:"by_topic"`
	CreatedAt   string               `json:"created_at" example:"2026-01-01T12:00:00Z"`
	CompletedAt *string              `json:"completed_at" example:"2026-01-01T12:05:00Z"`
}

type SessionListItem struct {
	SessionID   string        `json:"session_id"`
	CreatedAt   string        `json:"created_at" example:"2026-01-01T12:00:00Z"`
	CompletedAt *string       `json:"completed_at"`
	Score       ScoreResponse `json:"score"`
	Config      SessionConfig `json:"config"`
}

type SessionListResponse struct {
	Limit  int               `json:"limit" example:"20"`
	Offset int               `json:"offset" example:"0"`
	Items  []SessionListItem `json:"items"`
}

type TopicsResponse struct {
	Topics        []string `json:"topics"`
	Difficulties  []string `json:"difficulties"`
	QuestionTypes []string `json:"question_types"`
}

func toSessionConfig(cfg quiz.Config) SessionConfig {
	return SessionConfig{
		Topics:       lo.Map(cfg.Topics, func(t quiz.Topic, _ int) string { return string(t) }),
		Difficulty:   string(cfg.Difficulty),
		QuestionType: string(cfg.QuestionType),
		NumQuestions: cfg.NumQuestions,
	}
}

func toPublicQuestion(q quiz.SessionQuestion) PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		OrderIndex: q.OrderIndex,
		Type:       string(q.Type),
		TopicTags:  lo.Map(q.TopicTags, func(t quiz.Topic, _ int) string { return string(t) }),
		Difficulty: string(q.Difficulty),
		Prompt:     q.Prompt,
		Options:    q.Options,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession generates a new quiz session.
// @Summary      Create a quiz session
// @Description  Generates questions for the requested topics and stores them. Topic names may be given approximately when they resolve to a single topic.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Session parameters"
// @Success      201   {object}  CreateSessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/v1/quiz/sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.quiz.CreateSession(r.Context(), req.Config())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: created.Session.ID,
		CreatedAt: isoTime(created.Session.CreatedAt),
		Config:    toSessionConfig(created.Session.Config),
		Questions: lo.Map(created.Questions, func(q quiz.SessionQuestion, _ int) PublicQuestion {
			return toPublicQuestion(q)
		}),
	})
}

// submitAnswer grades the first answer to a question.
// @Summary      Answer a question
// @Description  Grades and stores the first answer to a question. Repeated submissions return the stored verdict.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        sessionID   path      string               true  "Session ID"
// @Param        questionID  path      string               true  "Question ID"
// @Param        body        body      SubmitAnswerRequest  true  "Answer text or option index"
// @Success      200         {object}  SubmitAnswerResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      422         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/quiz/sessions/{sessionID}/questions/{questionID}/answer [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.quiz.SubmitAnswer(r.Context(),
		chi.URLParam(r, "sessionID"),
		chi.URLParam(r, "questionID"),
		service.AnswerInput{Answer: req.Answer, OptionIndex: req.OptionIndex},
	)
	if h.handleServiceError(w, err) {
		return
	}

	why := res.Answer.WhyOthersWrong
	if why == nil {
		why = []string{}
	}
	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		IsCorrect:            res.Answer.IsCorrect,
		CorrectAnswer:        res.CorrectAnswer,
		Explanation:          res.Answer.Feedback,
		WhyOthersWrong:       why,
		NormalizedUserAnswer: res.Answer.NormalizedUserAnswer,
	})
}

// getSummary scores a session.
// @Summary      Session summary
// @Description  Overall and per-topic score of a session.
// @Tags         Quiz
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SummaryResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /api/v1/quiz/sessions/{sessionID}/summary [get]
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quiz.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		SessionID: summary.Session.ID,
		Score:     ScoreResponse{Correct: summary.Correct, Total: summary.Total},
		ByTopic: lo.Map(summary.ByTopic, func(t service.TopicScore, _ int) TopicScoreResponse {
			return TopicScoreResponse{Topic: string(t.Topic), Correct: t.Correct, Total: t.Total}
		}),
		CreatedAt:   isoTime(summary.Session.CreatedAt),
		CompletedAt: isoTimePtr(summary.Session.CompletedAt),
	})
}

// listSessions pages through past sessions.
// @Summary      List sessions
// @Description  Sessions ordered by creation time with their running score.
// @Tags         Quiz
// @Produce      json
// @Param        limit   query     int  false  "Page size (1-100)"  default(20)
// @Param        offset  query     int  false  "Items to skip"      default(0)
// @Success      200     {object}  SessionListResponse
// @Failure      422     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/quiz/sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("limit must be an integer between 1 and %d", maxListLimit))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		respondError(w, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
		return
	}

	sessions, err := h.quiz.ListSessions(r.Context(), limit, offset)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SessionListResponse{
		Limit:  limit,
		Offset: offset,
		Items: lo.Map(sessions, func(s store.SessionScore, _ int) SessionListItem {
			return SessionListItem{
				SessionID:   s.Session.ID,
				CreatedAt:   isoTime(s.Session.CreatedAt),
				CompletedAt: isoTimePtr(s.Session.CompletedAt),
				Score:       ScoreResponse{Correct: s.Correct, Total: s.Session.Config.NumQuestions},
				Config:      toSessionConfig(s.Session.Config),
			}
		}),
	})
}

// listTopics returns the accepted enum values.
// @Summary      Quiz options
// @Description  Topics, difficulties and question types accepted when creating a session.
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  TopicsResponse
// @Router       /api/v1/quiz/topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, TopicsResponse{
		Topics:        lo.Map(quiz.Topics(), func(t quiz.Topic, _ int) string { return string(t) }),
		Difficulties:  lo.Map(quiz.Difficulties(), func(d quiz.Difficulty, _ int) string { return string(d) }),
		QuestionTypes: lo.Map(quiz.QuestionTypes(), func(q quiz.QuestionType, _ int) string { return string(q) }),
	})
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
