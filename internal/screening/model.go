package screening

import (
	"time"

	"github.com/google/uuid"
)

// QA pairs one AI-generated follow-up question with the patient's answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is the aggregate root: one immutable record per screening
// submission, denormalized for reporting. Sessions are created once by the
// assembly pipeline and never mutated afterwards; per-user history is an
// append-only sequence of these records.
type Session struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Domain string    `json:"domain" db:"domain"`

	// PHQ-9 input and locally recomputed score.
	Answers Answers `json:"phq_answers" db:"phq_answers"`
	Score   int     `json:"phq_score" db:"phq_score"`

	// AI collaborator inputs, stored verbatim.
	Questions       []string `json:"questions" db:"questions"`
	AnswerTexts     []string `json:"answers" db:"answers"`
	DepressionLevel string   `json:"depression_level" db:"depression_level"`
	Suggestions     []string `json:"suggestions" db:"suggestions"`
	Confidence      float64  `json:"confidence" db:"confidence"`
	KeyIndicators   []string `json:"key_indicators" db:"key_indicators"`

	// Reserved for future use; always empty today.
	SecondaryDomains []string `json:"secondary_domains" db:"secondary_domains"`
	// Mirrors Risk.RiskFactors for report queries.
	RiskFactors []string `json:"risk_factors" db:"risk_factors"`

	// Derived analysis.
	DetailedResponses []DetailedResponse     `json:"phq9_detailed_responses" db:"detailed_responses"`
	QuestionsAnswers  []QA                   `json:"ai_questions_responses" db:"qa_responses"`
	Categorized       CategorizedSuggestions `json:"categorized_suggestions" db:"categorized_suggestions"`
	Risk              RiskAssessment         `json:"risk_assessment" db:"risk_assessment"`
	Severity          SeverityInterpretation `json:"severity_interpretation" db:"severity_interpretation"`
	Prescription      Prescription           `json:"prescription_data" db:"prescription_data"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Analysis is the summary view of a session returned to callers and used
// for report rendering.
type Analysis struct {
	DepressionLevel string                 `json:"depression_level"`
	Confidence      float64                `json:"confidence"`
	KeyIndicators   []string               `json:"key_indicators"`
	Suggestions     []string               `json:"suggestions"`
	Domain          string                 `json:"domain"`
	PHQ9Score       int                    `json:"phq9_score"`
	Severity        SeverityInterpretation `json:"severity_interpretation"`
	Risk            RiskAssessment         `json:"risk_assessment"`
	Categorized     CategorizedSuggestions `json:"categorized_suggestions"`
	Prescription    Prescription           `json:"prescription_data"`
}

// Analysis projects the session's summary view.
func (s *Session) Analysis() Analysis {
	return Analysis{
		DepressionLevel: s.DepressionLevel,
		Confidence:      s.Confidence,
		KeyIndicators:   s.KeyIndicators,
		Suggestions:     s.Suggestions,
		Domain:          s.Domain,
		PHQ9Score:       s.Score,
		Severity:        s.Severity,
		Risk:            s.Risk,
		Categorized:     s.Categorized,
		Prescription:    s.Prescription,
	}
}

// SessionSummary is the trimmed listing row for screening history.
type SessionSummary struct {
	ID              uuid.UUID `json:"id"`
	Domain          string    `json:"domain"`
	DepressionLevel string    `json:"depression_level"`
	Score           int       `json:"phq_score"`
	Suggestions     []string  `json:"suggestions"`
	CreatedAt       time.Time `json:"created_at"`
}

// PHQTest records a standalone PHQ-9 submission ahead of the AI screening.
type PHQTest struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Answers   Answers   `json:"answers" db:"answers"`
	Score     int       `json:"score" db:"score"`
	Domain    string    `json:"domain" db:"domain"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Profile is the slice of the user record that feeds engine calls and the
// report header. A missing profile degrades to the zero value.
type Profile struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	Age                 int    `json:"age"`
	Gender              string `json:"gender"`
	Occupation          string `json:"occupation"`
	Location            string `json:"location"`
	MentalHealthHistory string `json:"past_mental_health_history"`
}
