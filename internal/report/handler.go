package report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mindscreen/internal/screening"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// DownloadPrescription streams the latest session's prescription PDF.
func (h *Handler) DownloadPrescription(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		http.Error(w, "missing or invalid user id", http.StatusUnauthorized)
		return
	}

	data, err := h.svc.BuildPrescription(r.Context(), uid)
	if err != nil {
		if errors.Is(err, screening.ErrNotFound) {
			http.Error(w, "No assessment data found. Please complete a mental health assessment first.", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to generate prescription: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=prescription_%s.pdf", uid.String()[:8]))
	w.Write(data)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/report/prescription", h.DownloadPrescription)
}
