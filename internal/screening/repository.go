package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

// NewRepository returns the Postgres-backed repository. Nested aggregates
// are stored as JSON columns; scalar fields that history and report
// queries filter on get their own columns.
func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal session field: %w", err)
	}
	return data, nil
}

func unmarshalJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (r *postgresRepo) SaveSession(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	fields := []any{s.Answers, s.Questions, s.AnswerTexts, s.Suggestions, s.KeyIndicators,
		s.SecondaryDomains, s.RiskFactors, s.DetailedResponses, s.QuestionsAnswers,
		s.Categorized, s.Risk, s.Severity, s.Prescription}
	encoded := make([][]byte, len(fields))
	for i, f := range fields {
		data, err := marshalJSON(f)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	query := `
		INSERT INTO screening_sessions (
			id, user_id, domain, phq_score, phq_answers, questions, answers,
			depression_level, suggestions, confidence, key_indicators,
			secondary_domains, risk_factors, detailed_responses, qa_responses,
			categorized_suggestions, risk_assessment, severity_interpretation,
			prescription_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.Domain, s.Score,
		encoded[0], encoded[1], encoded[2],
		s.DepressionLevel, encoded[3], s.Confidence, encoded[4],
		encoded[5], encoded[6], encoded[7], encoded[8],
		encoded[9], encoded[10], encoded[11], encoded[12],
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert screening session: %w", err)
	}
	return nil
}

func (r *postgresRepo) FindSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]SessionSummary, error) {
	query := `
		SELECT id, domain, depression_level, phq_score, suggestions, created_at
		FROM screening_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query screening history: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		var suggestionsJSON []byte
		if err := rows.Scan(&sum.ID, &sum.Domain, &sum.DepressionLevel, &sum.Score, &suggestionsJSON, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan screening summary: %w", err)
		}
		if err := unmarshalJSON(suggestionsJSON, &sum.Suggestions); err != nil {
			return nil, fmt.Errorf("unmarshal suggestions: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

const sessionColumns = `
	id, user_id, domain, phq_score, phq_answers, questions, answers,
	depression_level, suggestions, confidence, key_indicators,
	secondary_domains, risk_factors, detailed_responses, qa_responses,
	categorized_suggestions, risk_assessment, severity_interpretation,
	prescription_data, created_at
`

func (r *postgresRepo) scanSession(row *sql.Row) (*Session, error) {
	var s Session
	var answersJSON, questionsJSON, answerTextsJSON, suggestionsJSON, indicatorsJSON []byte
	var secondaryJSON, riskFactorsJSON, detailedJSON, qaJSON []byte
	var categorizedJSON, riskJSON, severityJSON, prescriptionJSON []byte

	err := row.Scan(
		&s.ID, &s.UserID, &s.Domain, &s.Score,
		&answersJSON, &questionsJSON, &answerTextsJSON,
		&s.DepressionLevel, &suggestionsJSON, &s.Confidence, &indicatorsJSON,
		&secondaryJSON, &riskFactorsJSON, &detailedJSON, &qaJSON,
		&categorizedJSON, &riskJSON, &severityJSON, &prescriptionJSON,
		&s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("screening session %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan screening session: %w", err)
	}

	for _, pair := range []struct {
		data []byte
		dst  any
	}{
		{answersJSON, &s.Answers},
		{questionsJSON, &s.Questions},
		{answerTextsJSON, &s.AnswerTexts},
		{suggestionsJSON, &s.Suggestions},
		{indicatorsJSON, &s.KeyIndicators},
		{secondaryJSON, &s.SecondaryDomains},
		{riskFactorsJSON, &s.RiskFactors},
		{detailedJSON, &s.DetailedResponses},
		{qaJSON, &s.QuestionsAnswers},
		{categorizedJSON, &s.Categorized},
		{riskJSON, &s.Risk},
		{severityJSON, &s.Severity},
		{prescriptionJSON, &s.Prescription},
	} {
		if err := unmarshalJSON(pair.data, pair.dst); err != nil {
			return nil, fmt.Errorf("unmarshal session field: %w", err)
		}
	}
	return &s, nil
}

func (r *postgresRepo) FindSessionByID(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM screening_sessions WHERE id = $1 AND user_id = $2`
	return r.scanSession(r.db.QueryRowContext(ctx, query, sessionID, userID))
}

func (r *postgresRepo) LatestSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM screening_sessions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresRepo) SavePHQTest(ctx context.Context, t *PHQTest) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	answersJSON, err := marshalJSON(t.Answers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO phq_tests (id, user_id, answers, score, domain, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.UserID, answersJSON, t.Score, t.Domain, t.CreatedAt); err != nil {
		return fmt.Errorf("insert phq test: %w", err)
	}
	return nil
}

func (r *postgresRepo) FindPHQTestsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]PHQTest, error) {
	query := `
		SELECT id, user_id, answers, score, domain, created_at
		FROM phq_tests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query phq history: %w", err)
	}
	defer rows.Close()

	tests := []PHQTest{}
	for rows.Next() {
		var t PHQTest
		var answersJSON []byte
		if err := rows.Scan(&t.ID, &t.UserID, &answersJSON, &t.Score, &t.Domain, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan phq test: %w", err)
		}
		if err := unmarshalJSON(answersJSON, &t.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal phq answers: %w", err)
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *postgresRepo) LatestPHQTest(ctx context.Context, userID uuid.UUID) (*PHQTest, error) {
	query := `
		SELECT id, user_id, answers, score, domain, created_at
		FROM phq_tests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var t PHQTest
	var answersJSON []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.ID, &t.UserID, &answersJSON, &t.Score, &t.Domain, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phq test %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan phq test: %w", err)
	}
	if err := unmarshalJSON(answersJSON, &t.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal phq answers: %w", err)
	}
	return &t, nil
}

func (r *postgresRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT username, email, age, gender, occupation, location, mental_health_history
		FROM users
		WHERE id = $1
	`
	var p Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Username, &p.Email, &p.Age, &p.Gender, &p.Occupation, &p.Location, &p.MentalHealthHistory,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan user profile: %w", err)
	}
	return &p, nil
}
