package screening

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// userIDHeader carries the caller identity. Authentication itself is the
// gateway's concern; this layer only requires a well-formed UUID.
const userIDHeader = "X-User-ID"

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func userID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.Header.Get(userIDHeader))
}

// handleServiceError maps the error taxonomy onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEngineUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type submitPHQRequest struct {
	Answers []int `json:"answers"`
}

func (h *Handler) SubmitPHQ(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req submitPHQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitPHQ(r.Context(), uid, req.Answers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":               "PHQ-9 submitted successfully",
		"testId":            result.TestID,
		"score":             result.Score,
		"severity":          result.Severity,
		"domain":            result.Domain,
		"canStartScreening": result.CanStartScreening,
	})
}

func (h *Handler) PHQHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	tests, err := h.svc.PHQHistory(r.Context(), uid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	type phqHistoryEntry struct {
		ID        uuid.UUID `json:"id"`
		Score     int       `json:"score"`
		Domain    string    `json:"domain"`
		Severity  string    `json:"severity"`
		CreatedAt time.Time `json:"createdAt"`
	}
	entries := make([]phqHistoryEntry, len(tests))
	for i, t := range tests {
		entries[i] = phqHistoryEntry{
			ID:        t.ID,
			Score:     t.Score,
			Domain:    t.Domain,
			Severity:  ClassifySeverity(t.Score).Level(),
			CreatedAt: t.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) LatestPHQ(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	test, err := h.svc.LatestPHQ(r.Context(), uid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":                test.ID,
		"answers":           test.Answers.Slice(),
		"score":             test.Score,
		"domain":            test.Domain,
		"createdAt":         test.CreatedAt,
		"canStartScreening": true,
	})
}

type runScreeningRequest struct {
	LatestPHQAnswers []int    `json:"latestPHQAnswers"`
	Domain           string   `json:"domain"`
	PreviousAnswers  []string `json:"previousAnswers"`
	IsFollowup       bool     `json:"isFollowup"`
}

func (h *Handler) RunScreening(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req runScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Domain == "" {
		writeError(w, http.StatusBadRequest, "PHQ-9 answers and domain are required")
		return
	}

	questions, err := h.svc.GenerateQuestions(r.Context(), uid, QuestionRequest{
		PHQAnswers:      req.LatestPHQAnswers,
		Domain:          req.Domain,
		PreviousAnswers: req.PreviousAnswers,
		Followup:        req.IsFollowup,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"questions":  questions,
		"domain":     req.Domain,
		"isFollowup": req.IsFollowup,
	})
}

type completeScreeningRequest struct {
	Domain           string   `json:"domain"`
	LatestPHQAnswers []int    `json:"latestPHQAnswers"`
	Questions        []string `json:"questions"`
	Answers          []string `json:"answers"`
}

func (h *Handler) CompleteScreening(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req completeScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.CompleteScreening(r.Context(), uid, Submission{
		Domain:     req.Domain,
		PHQAnswers: req.LatestPHQAnswers,
		Questions:  req.Questions,
		Answers:    req.Answers,
	})
	if err != nil {
		// A persistence failure still carries the computed analysis so the
		// caller can show results and retry the save.
		if session != nil && errors.Is(err, ErrPersistence) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":    "Failed to save screening",
				"saved":    false,
				"analysis": session.Analysis(),
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"msg":       "Screening completed and saved successfully",
		"analysis":  session.Analysis(),
		"sessionId": session.ID,
	})
}

type suggestionsRequest struct {
	DepressionLevel string `json:"depression_level"`
	Domain          string `json:"domain"`
	PHQAnswers      []int  `json:"phqAnswers"`
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DepressionLevel == "" {
		writeError(w, http.StatusBadRequest, "Depression level and PHQ-9 answers are required")
		return
	}

	suggestions, err := h.svc.Suggestions(r.Context(), uid, req.DepressionLevel, req.Domain, req.PHQAnswers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	summaries, err := h.svc.History(r.Context(), uid)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) SessionDetails(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.SessionByID(r.Context(), uid, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/phq", h.SubmitPHQ)
	r.Get("/phq/history", h.PHQHistory)
	r.Get("/phq/latest", h.LatestPHQ)
	r.Post("/screening/run", h.RunScreening)
	r.Post("/screening/complete", h.CompleteScreening)
	r.Post("/screening/suggestions", h.Suggestions)
	r.Get("/screening/history", h.History)
	r.Get("/screening/{sessionID}", h.SessionDetails)
}
