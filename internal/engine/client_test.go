package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindscreen/internal/screening"
)

func testAnswers(t *testing.T, raw []int) screening.Answers {
	t.Helper()
	a, err := screening.ParseAnswers(raw)
	require.NoError(t, err)
	return a
}

func TestPredictDomain(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/phq9-submit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"domain": "work"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	domain, err := client.PredictDomain(context.Background(), testAnswers(t, []int{1, 1, 1, 1, 1, 0, 0, 0, 0}), "history text", "teacher", 34)
	require.NoError(t, err)
	assert.Equal(t, "work", domain)

	assert.Equal(t, "history text", gotBody["history"])
	assert.Equal(t, "teacher", gotBody["occupation"])
	assert.Equal(t, float64(34), gotBody["age"])
	assert.Len(t, gotBody["phq9_answers"], screening.AnswerCount)
}

func TestGenerateQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate-questions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"questions": []string{"q1", "q2"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	questions, err := client.GenerateQuestions(context.Background(), testAnswers(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0}), "social", "", nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, questions)
}

func TestCompleteScreening(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/complete-screening", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"depression_level": "Moderate",
			"confidence":       0.87,
			"key_indicators":   []string{"fatigue"},
			"suggestions":      []string{"daily exercise"},
			"phq9_score":       12,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	analysis, err := client.CompleteScreening(context.Background(), testAnswers(t, []int{2, 2, 2, 2, 2, 1, 1, 0, 0}), "work", "", []string{"fine"})
	require.NoError(t, err)
	assert.Equal(t, "Moderate", analysis.DepressionLevel)
	assert.Equal(t, 0.87, analysis.Confidence)
	assert.Equal(t, []string{"daily exercise"}, analysis.Suggestions)
	require.NotNil(t, analysis.PHQ9Score)
	assert.Equal(t, 12, *analysis.PHQ9Score)
}

func TestEngineError_WrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.PredictDomain(context.Background(), testAnswers(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0}), "", "", 25)
	assert.ErrorIs(t, err, screening.ErrEngineUnavailable)

	_, err = client.GenerateSuggestions(context.Background(), "Mild", "work", "", testAnswers(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0}))
	assert.ErrorIs(t, err, screening.ErrEngineUnavailable)
}

func TestEngineUnreachable(t *testing.T) {
	// closed server: transport-level failure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := client.CompleteScreening(context.Background(), testAnswers(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0}), "", "", nil)
	assert.ErrorIs(t, err, screening.ErrEngineUnavailable)
}
