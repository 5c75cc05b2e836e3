// Package engine provides the HTTP client for the external AI inference
// service: domain prediction, follow-up question generation, and the
// complete-screening analysis. The service's output is treated as opaque
// text; all classification happens in the screening package.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"mindscreen/internal/screening"
)

// Client talks to the AI engine over JSON HTTP. It satisfies
// screening.EngineClient.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds the engine client. Calls carry a timeout and a single
// retry; a call that still fails surfaces screening.ErrEngineUnavailable.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		c.logger.Error("AI engine call failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", screening.ErrEngineUnavailable, err)
	}
	if resp.IsError() {
		c.logger.Error("AI engine returned error status",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("%w: %s returned %d", screening.ErrEngineUnavailable, path, resp.StatusCode())
	}
	return nil
}

type domainRequest struct {
	PHQ9Answers []int  `json:"phq9_answers"`
	History     string `json:"history"`
	Occupation  string `json:"occupation"`
	Age         int    `json:"age"`
}

type domainResponse struct {
	Domain string `json:"domain"`
}

// PredictDomain asks the engine which life-area domain the PHQ-9 answers
// point at.
func (c *Client) PredictDomain(ctx context.Context, answers screening.Answers, history, occupation string, age int) (string, error) {
	var out domainResponse
	err := c.post(ctx, "/api/phq9-submit", domainRequest{
		PHQ9Answers: answers.Slice(),
		History:     history,
		Occupation:  occupation,
		Age:         age,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Domain, nil
}

type questionsRequest struct {
	PHQ9Answers     []int    `json:"phq9_answers"`
	Domain          string   `json:"domain"`
	History         string   `json:"history"`
	PreviousAnswers []string `json:"previous_answers,omitempty"`
	IsFollowup      bool     `json:"is_followup"`
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

// GenerateQuestions fetches personalized follow-up questions for a domain.
func (c *Client) GenerateQuestions(ctx context.Context, answers screening.Answers, domain, history string, previousAnswers []string, followup bool) ([]string, error) {
	var out questionsResponse
	err := c.post(ctx, "/api/generate-questions", questionsRequest{
		PHQ9Answers:     answers.Slice(),
		Domain:          domain,
		History:         history,
		PreviousAnswers: previousAnswers,
		IsFollowup:      followup,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

type completeScreeningRequest struct {
	PHQ9Answers     []int    `json:"phq9_answers"`
	Domain          string   `json:"domain"`
	History         string   `json:"history"`
	FollowUpAnswers []string `json:"follow_up_answers"`
}

// CompleteScreening fetches the full analysis: depression level,
// confidence, key indicators, and suggestions.
func (c *Client) CompleteScreening(ctx context.Context, answers screening.Answers, domain, history string, followUpAnswers []string) (*screening.EngineAnalysis, error) {
	var out screening.EngineAnalysis
	err := c.post(ctx, "/api/complete-screening", completeScreeningRequest{
		PHQ9Answers:     answers.Slice(),
		Domain:          domain,
		History:         history,
		FollowUpAnswers: followUpAnswers,
	}, &out)
	if err != nil {
		return nil, err
	}

	c.logger.Info("complete screening analysis received",
		zap.String("depression_level", out.DepressionLevel),
		zap.Float64("confidence", out.Confidence),
		zap.Int("suggestion_count", len(out.Suggestions)),
	)
	return &out, nil
}

type suggestionsRequest struct {
	DepressionLevel string `json:"depression_level"`
	Domain          string `json:"domain"`
	History         string `json:"history"`
	PHQ9Answers     []int  `json:"phq9_answers"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// GenerateSuggestions fetches suggestions for an already-known depression
// level.
func (c *Client) GenerateSuggestions(ctx context.Context, depressionLevel, domain, history string, answers screening.Answers) ([]string, error) {
	var out suggestionsResponse
	err := c.post(ctx, "/api/generate-suggestions", suggestionsRequest{
		DepressionLevel: depressionLevel,
		Domain:          domain,
		History:         history,
		PHQ9Answers:     answers.Slice(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}
