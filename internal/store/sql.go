package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

// SQLStore implements Store over database/sql for sqlite and postgres.
// Queries use $n placeholders, which both drivers accept.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLStore) CreateSession(ctx context.Context, session *quiz.Session, questions []quiz.SessionQuestion) error {
	topics, err := json.Marshal(session.Config.Topics)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO quiz_sessions
			(id, topics_json, difficulty, question_type, num_questions, created_at, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			session.ID, string(topics), string(session.Config.Difficulty), string(session.Config.QuestionType),
			session.Config.NumQuestions, session.CreatedAt.UnixNano(), nullTime(session.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		for _, q := range questions {
			payload, err := json.Marshal(q.Question)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO quiz_questions
				(id, session_id, order_index, question_type, prompt, question_json)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				q.ID, session.ID, q.OrderIndex, string(q.Type), q.Prompt, string(payload),
			)
			if err != nil {
				return fmt.Errorf("insert question %d: %w", q.OrderIndex, err)
			}
		}
		return nil
	})
}

const sessionColumns = `id, topics_json, difficulty, question_type, num_questions, created_at, completed_at`

func (s *SQLStore) GetSession(ctx context.Context, id string) (*quiz.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM quiz_sessions WHERE id = $1`, id)
	session, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SQLStore) ListSessions(ctx context.Context, limit, offset int) ([]SessionScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.topics_json, s.difficulty, s.question_type, s.num_questions, s.created_at, s.completed_at,
		       COALESCE(SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END), 0)
		FROM quiz_sessions s
		LEFT JOIN quiz_answers a ON a.session_id = s.id
		GROUP BY s.id, s.topics_json, s.difficulty, s.question_type, s.num_questions, s.created_at, s.completed_at
		ORDER BY s.created_at ASC, s.id ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionScore
	for rows.Next() {
		var correct int
		session, err := scanSession(func(dest ...any) error {
			return rows.Scan(append(dest, &correct)...)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, SessionScore{Session: session, Correct: correct})
	}
	return out, rows.Err()
}

func scanSession(scan func(dest ...any) error) (*quiz.Session, error) {
	var (
		session     quiz.Session
		topicsJSON  string
		difficulty  string
		qtype       string
		createdAt   int64
		completedAt sql.NullInt64
	)
	if err := scan(&session.ID, &topicsJSON, &difficulty, &qtype, &session.Config.NumQuestions, &createdAt, &completedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(topicsJSON), &session.Config.Topics); err != nil {
		return nil, fmt.Errorf("decode session topics: %w", err)
	}
	session.Config.Difficulty = quiz.Difficulty(difficulty)
	session.Config.QuestionType = quiz.QuestionType(qtype)
	session.CreatedAt = time.Unix(0, createdAt).UTC()
	session.CompletedAt = timeFromNull(completedAt)
	return &session, nil
}

// ============================================================================
// Questions
// ============================================================================

const questionColumns = `id, session_id, order_index, question_json`

func (s *SQLStore) ListQuestions(ctx context.Context, sessionID string) ([]quiz.SessionQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM quiz_questions WHERE session_id = $1 ORDER BY order_index`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quiz.SessionQuestion
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetQuestion(ctx context.Context, sessionID, questionID string) (*quiz.SessionQuestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM quiz_questions WHERE session_id = $1 AND id = $2`,
		sessionID, questionID,
	)
	q, err := scanQuestion(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func scanQuestion(scan func(dest ...any) error) (*quiz.SessionQuestion, error) {
	var (
		q       quiz.SessionQuestion
		payload string
	)
	if err := scan(&q.ID, &q.SessionID, &q.OrderIndex, &payload); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &q.Question); err != nil {
		return nil, fmt.Errorf("decode question %s: %w", q.ID, err)
	}
	// An empty variant list is omitted from the payload.
	if q.Type == quiz.TypeShortAnswer && q.AcceptableVariants == nil {
		q.AcceptableVariants = []string{}
	}
	return &q, nil
}

// ============================================================================
// Answers
// ============================================================================

func (s *SQLStore) SaveAnswer(ctx context.Context, a *quiz.Answer) error {
	whyJSON, err := json.Marshal(nonNil(a.WhyOthersWrong))
	if err != nil {
		return err
	}
	var trace sql.NullString
	if a.JudgeTrace != nil {
		b, err := json.Marshal(a.JudgeTrace)
		if err != nil {
			return err
		}
		trace = sql.NullString{String: string(b), Valid: true}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `INSERT INTO quiz_answers
			(id, session_id, question_id, user_answer, option_index, normalized_user_answer,
			 is_correct, feedback, why_others_wrong_json, judge_trace_json, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (session_id, question_id) DO NOTHING`,
			a.ID, a.SessionID, a.QuestionID, nullString(a.UserAnswer), nullInt(a.OptionIndex),
			a.NormalizedUserAnswer, a.IsCorrect, a.Feedback, string(whyJSON), trace, a.CreatedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrAlreadyAnswered
		}

		var answered, total int
		err = tx.QueryRowContext(ctx, `
			SELECT (SELECT COUNT(*) FROM quiz_answers WHERE session_id = $1), num_questions
			FROM quiz_sessions WHERE id = $1`, a.SessionID,
		).Scan(&answered, &total)
		if err != nil {
			return fmt.Errorf("count answers: %w", err)
		}
		if answered < total {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE quiz_sessions SET completed_at = $1 WHERE id = $2 AND completed_at IS NULL`,
			a.CreatedAt.UnixNano(), a.SessionID,
		)
		return err
	})
}

const answerColumns = `id, session_id, question_id, user_answer, option_index, normalized_user_answer,
	is_correct, feedback, why_others_wrong_json, judge_trace_json, created_at`

func (s *SQLStore) GetAnswer(ctx context.Context, sessionID, questionID string) (*quiz.Answer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+answerColumns+` FROM quiz_answers WHERE session_id = $1 AND question_id = $2`,
		sessionID, questionID,
	)
	a, err := scanAnswer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SQLStore) ListAnswers(ctx context.Context, sessionID string) ([]quiz.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+answerColumns+` FROM quiz_answers WHERE session_id = $1 ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quiz.Answer
	for rows.Next() {
		a, err := scanAnswer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAnswer(scan func(dest ...any) error) (*quiz.Answer, error) {
	var (
		a          quiz.Answer
		userAnswer sql.NullString
		option     sql.NullInt64
		whyJSON    string
		traceJSON  sql.NullString
		createdAt  int64
	)
	err := scan(&a.ID, &a.SessionID, &a.QuestionID, &userAnswer, &option, &a.NormalizedUserAnswer,
		&a.IsCorrect, &a.Feedback, &whyJSON, &traceJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	if userAnswer.Valid {
		a.UserAnswer = &userAnswer.String
	}
	if option.Valid {
		idx := int(option.Int64)
		a.OptionIndex = &idx
	}
	if err := json.Unmarshal([]byte(whyJSON), &a.WhyOthersWrong); err != nil {
		return nil, fmt.Errorf("decode why_others_wrong: %w", err)
	}
	if traceJSON.Valid {
		var t quiz.Trace
		if err := json.Unmarshal([]byte(traceJSON.String), &t); err != nil {
			return nil, fmt.Errorf("decode judge trace: %w", err)
		}
		a.JudgeTrace = &t
	}
	a.CreatedAt = time.Unix(0, createdAt).UTC()
	return &a, nil
}

// ============================================================================
// Nullable helpers
// ============================================================================

func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func timeFromNull(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(0, n.Int64).UTC()
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
