package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultConfidence substitutes for an engine analysis that reports no
// confidence value.
const DefaultConfidence = 0.8

// historyLimit caps PHQ and screening history listings.
const historyLimit = 10

// ErrEngineUnavailable marks a failed AI engine call. The domain-prediction
// step degrades gracefully on it; every other engine call propagates it.
var ErrEngineUnavailable = errors.New("AI engine unavailable")

// ErrPersistence marks a failed repository write. CompleteScreening returns
// the assembled session alongside it so the caller may retry the save.
var ErrPersistence = errors.New("screening not saved")

// ErrNotFound is returned by repositories for missing records.
var ErrNotFound = errors.New("not found")

// ErrCacheMiss is returned by history caches when no entry exists.
var ErrCacheMiss = errors.New("history cache miss")

// EngineAnalysis mirrors the engine's complete-screening response. The
// reported score, when present, is cross-checked against the local sum but
// never trusted over it.
type EngineAnalysis struct {
	DepressionLevel string   `json:"depression_level"`
	Confidence      float64  `json:"confidence"`
	KeyIndicators   []string `json:"key_indicators"`
	Suggestions     []string `json:"suggestions"`
	PHQ9Score       *int     `json:"phq9_score,omitempty"`
}

// EngineClient is the AI inference collaborator. Defined here to decouple
// the screening flow from the concrete engine transport.
type EngineClient interface {
	PredictDomain(ctx context.Context, answers Answers, history, occupation string, age int) (string, error)
	GenerateQuestions(ctx context.Context, answers Answers, domain, history string, previousAnswers []string, followup bool) ([]string, error)
	CompleteScreening(ctx context.Context, answers Answers, domain, history string, followUpAnswers []string) (*EngineAnalysis, error)
	GenerateSuggestions(ctx context.Context, depressionLevel, domain, history string, answers Answers) ([]string, error)
}

// Repository persists PHQ tests, screening sessions, and user profiles.
type Repository interface {
	SaveSession(ctx context.Context, s *Session) error
	FindSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]SessionSummary, error)
	FindSessionByID(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error)
	LatestSession(ctx context.Context, userID uuid.UUID) (*Session, error)
	SavePHQTest(ctx context.Context, t *PHQTest) error
	FindPHQTestsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]PHQTest, error)
	LatestPHQTest(ctx context.Context, userID uuid.UUID) (*PHQTest, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

// HistoryCache caches per-user screening history summaries.
type HistoryCache interface {
	GetHistory(ctx context.Context, userID uuid.UUID) ([]SessionSummary, error)
	SetHistory(ctx context.Context, userID uuid.UUID, summaries []SessionSummary) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// PHQResult is returned from a PHQ-9 submission.
type PHQResult struct {
	TestID            uuid.UUID              `json:"testId"`
	Score             int                    `json:"score"`
	Severity          SeverityInterpretation `json:"severity"`
	Domain            string                 `json:"domain"`
	CanStartScreening bool                   `json:"canStartScreening"`
}

// QuestionRequest carries the inputs for follow-up question generation.
type QuestionRequest struct {
	PHQAnswers      []int
	Domain          string
	PreviousAnswers []string
	Followup        bool
}

// Submission carries the raw inputs of a completed screening.
type Submission struct {
	Domain     string
	PHQAnswers []int
	Questions  []string
	Answers    []string
}

// Service drives the screening workflow end to end.
type Service interface {
	SubmitPHQ(ctx context.Context, userID uuid.UUID, answers []int) (*PHQResult, error)
	PHQHistory(ctx context.Context, userID uuid.UUID) ([]PHQTest, error)
	LatestPHQ(ctx context.Context, userID uuid.UUID) (*PHQTest, error)
	GenerateQuestions(ctx context.Context, userID uuid.UUID, req QuestionRequest) ([]string, error)
	CompleteScreening(ctx context.Context, userID uuid.UUID, in Submission) (*Session, error)
	Suggestions(ctx context.Context, userID uuid.UUID, depressionLevel, domain string, phqAnswers []int) ([]string, error)
	History(ctx context.Context, userID uuid.UUID) ([]SessionSummary, error)
	SessionByID(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error)
}

type service struct {
	repo   Repository
	engine EngineClient
	cache  HistoryCache
	logger *zap.Logger
}

// NewService wires the screening service. cache may be nil when no redis
// is configured.
func NewService(repo Repository, engine EngineClient, cache HistoryCache, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// profileOrEmpty loads the user profile, degrading to zero values when the
// user has no stored profile.
func (s *service) profileOrEmpty(ctx context.Context, userID uuid.UUID) Profile {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("failed to load user profile",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
		return Profile{}
	}
	return *p
}

// SubmitPHQ validates and scores a PHQ-9 submission, asks the engine for a
// domain label, and persists the test. An unavailable engine degrades to an
// empty domain instead of failing the submission.
func (s *service) SubmitPHQ(ctx context.Context, userID uuid.UUID, raw []int) (*PHQResult, error) {
	answers, err := ParseAnswers(raw)
	if err != nil {
		return nil, err
	}

	profile := s.profileOrEmpty(ctx, userID)

	domain, err := s.engine.PredictDomain(ctx, answers, profile.MentalHealthHistory, profile.Occupation, profile.Age)
	if err != nil {
		s.logger.Warn("domain prediction unavailable, continuing without domain",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		domain = ""
	}

	test := &PHQTest{
		ID:        uuid.New(),
		UserID:    userID,
		Answers:   answers,
		Score:     answers.Score(),
		Domain:    domain,
		CreatedAt: time.Now(),
	}
	if err := s.repo.SavePHQTest(ctx, test); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &PHQResult{
		TestID:            test.ID,
		Score:             test.Score,
		Severity:          ClassifySeverity(test.Score).Interpretation(),
		Domain:            domain,
		CanStartScreening: true,
	}, nil
}

func (s *service) PHQHistory(ctx context.Context, userID uuid.UUID) ([]PHQTest, error) {
	return s.repo.FindPHQTestsByUser(ctx, userID, historyLimit)
}

func (s *service) LatestPHQ(ctx context.Context, userID uuid.UUID) (*PHQTest, error) {
	return s.repo.LatestPHQTest(ctx, userID)
}

// GenerateQuestions asks the engine for personalized follow-up questions.
// Engine failure is fatal for this request: there is no useful fallback.
func (s *service) GenerateQuestions(ctx context.Context, userID uuid.UUID, req QuestionRequest) ([]string, error) {
	answers, err := ParseAnswers(req.PHQAnswers)
	if err != nil {
		return nil, err
	}

	profile := s.profileOrEmpty(ctx, userID)
	questions, err := s.engine.GenerateQuestions(ctx, answers, req.Domain, profile.MentalHealthHistory, req.PreviousAnswers, req.Followup)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return questions, nil
}

// CompleteScreening runs the full analysis pipeline over a submission:
// score, classify, stratify, categorize, synthesize, assemble, persist.
// Validation failure aborts before anything else runs; persistence failure
// still returns the assembled session so the caller can retry the write.
func (s *service) CompleteScreening(ctx context.Context, userID uuid.UUID, in Submission) (*Session, error) {
	answers, err := ParseAnswers(in.PHQAnswers)
	if err != nil {
		return nil, err
	}

	profile := s.profileOrEmpty(ctx, userID)

	analysis, err := s.engine.CompleteScreening(ctx, answers, in.Domain, profile.MentalHealthHistory, in.Answers)
	if err != nil {
		return nil, fmt.Errorf("complete screening: %w", err)
	}

	score := answers.Score()
	if analysis.PHQ9Score != nil && *analysis.PHQ9Score != score {
		// The local sum is authoritative; the engine's number is only a
		// cross-check.
		s.logger.Warn("engine-reported PHQ-9 score differs from local sum",
			zap.String("user_id", userID.String()),
			zap.Int("engine_score", *analysis.PHQ9Score),
			zap.Int("local_score", score),
		)
	}

	severity := ClassifySeverity(score)
	risk := StratifyRisk(answers)
	categorized := CategorizeSuggestions(analysis.Suggestions)
	prescription := SynthesizePrescription(score, severity, risk, categorized, in.Domain, analysis.Suggestions)

	confidence := analysis.Confidence
	if confidence == 0 {
		confidence = DefaultConfidence
	}

	session := &Session{
		ID:                uuid.New(),
		UserID:            userID,
		Domain:            in.Domain,
		Answers:           answers,
		Score:             score,
		Questions:         in.Questions,
		AnswerTexts:       in.Answers,
		DepressionLevel:   analysis.DepressionLevel,
		Suggestions:       analysis.Suggestions,
		Confidence:        confidence,
		KeyIndicators:     analysis.KeyIndicators,
		SecondaryDomains:  []string{},
		RiskFactors:       risk.RiskFactors,
		DetailedResponses: answers.DetailedResponses(),
		QuestionsAnswers:  zipQA(in.Questions, in.Answers),
		Categorized:       categorized,
		Risk:              risk,
		Severity:          severity.Interpretation(),
		Prescription:      prescription,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.SaveSession(ctx, session); err != nil {
		s.logger.Error("failed to save screening session",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return session, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate history cache",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	return session, nil
}

// Suggestions fetches engine suggestions for an already-known depression
// level. Engine failure is fatal for this request.
func (s *service) Suggestions(ctx context.Context, userID uuid.UUID, depressionLevel, domain string, phqAnswers []int) ([]string, error) {
	answers, err := ParseAnswers(phqAnswers)
	if err != nil {
		return nil, err
	}

	profile := s.profileOrEmpty(ctx, userID)
	suggestions, err := s.engine.GenerateSuggestions(ctx, depressionLevel, domain, profile.MentalHealthHistory, answers)
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}
	return suggestions, nil
}

// History lists recent session summaries, served from the cache when warm.
func (s *service) History(ctx context.Context, userID uuid.UUID) ([]SessionSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetHistory(ctx, userID); err == nil {
			return cached, nil
		} else if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("history cache read failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	summaries, err := s.repo.FindSessionsByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetHistory(ctx, userID, summaries); err != nil {
			s.logger.Warn("history cache write failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
	return summaries, nil
}

func (s *service) SessionByID(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	return s.repo.FindSessionByID(ctx, userID, sessionID)
}

// zipQA pairs questions with their answers, tolerating ragged input.
func zipQA(questions, answers []string) []QA {
	out := make([]QA, len(questions))
	for i, q := range questions {
		qa := QA{Question: q}
		if i < len(answers) {
			qa.Answer = answers[i]
		}
		out[i] = qa
	}
	return out
}
