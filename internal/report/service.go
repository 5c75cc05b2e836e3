package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"mindscreen/internal/screening"
)

// SessionSource is the slice of the repository this service needs.
type SessionSource interface {
	LatestSession(ctx context.Context, userID uuid.UUID) (*screening.Session, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*screening.Profile, error)
}

type Service struct {
	source SessionSource
	logger *zap.Logger
}

func NewService(source SessionSource, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// Common font locations, checked in order.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

func loadFont(pdf *gopdf.GoPdf) error {
	var lastErr error
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("failed to load PDF font, ensure DejaVu fonts are installed: %w", lastErr)
}

// BuildPrescription renders the user's most recent screening session as a
// downloadable prescription report.
func (s *Service) BuildPrescription(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	session, err := s.source.LatestSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load latest session: %w", err)
	}

	profile := screening.Profile{}
	if p, err := s.source.GetProfile(ctx, userID); err == nil {
		profile = *p
	} else {
		s.logger.Warn("rendering report without user profile",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := loadFont(&pdf); err != nil {
		return nil, err
	}

	w := writer{pdf: &pdf}
	w.heading(18, "Mental Health Prescription Report")
	w.br(25)

	w.setFont(11)
	if profile.Username != "" {
		w.line(fmt.Sprintf("Patient: %s", profile.Username))
	}
	if profile.Age > 0 {
		w.line(fmt.Sprintf("Age: %d    Gender: %s", profile.Age, profile.Gender))
	}
	if profile.Occupation != "" {
		w.line(fmt.Sprintf("Occupation: %s", profile.Occupation))
	}
	w.line(fmt.Sprintf("Patient ID: MH-%s", strings.ToUpper(userID.String()[:6])))
	w.line(fmt.Sprintf("Assessment date: %s", session.CreatedAt.Format("02 Jan 2006")))
	w.br(10)

	w.heading(14, "PHQ-9 Assessment")
	w.setFont(11)
	w.line(fmt.Sprintf("Total score: %d / %d", session.Score, screening.MaxScore))
	w.line(fmt.Sprintf("Severity: %s — %s", session.Severity.Level, session.Severity.Description))
	w.br(5)
	w.setFont(9)
	for _, item := range session.DetailedResponses {
		w.wrapped(fmt.Sprintf("%d. %s: %s (%d)", item.QuestionIndex+1, item.QuestionText, item.ResponseText, item.ResponseValue))
	}
	w.br(10)

	w.heading(14, "Risk Assessment")
	w.setFont(11)
	w.line(fmt.Sprintf("Level: %s    Follow-up: %s", session.Risk.Level, session.Risk.FollowUp))
	if session.Risk.SafetyPlan != "" {
		w.wrapped("Safety plan: " + session.Risk.SafetyPlan)
	}
	for _, factor := range session.Risk.RiskFactors {
		w.wrapped("- " + factor)
	}
	w.br(5)
	w.line("Emergency contacts:")
	for _, contact := range session.Risk.EmergencyContacts {
		w.wrapped("- " + contact)
	}
	w.br(10)

	w.heading(14, "Suggestions")
	w.setFont(10)
	w.suggestionGroup("Immediate Actions", session.Categorized.ImmediateActions)
	w.suggestionGroup("Lifestyle Modifications", session.Categorized.LifestyleModifications)
	w.suggestionGroup("Professional Support", session.Categorized.ProfessionalSupport)
	w.suggestionGroup("Social & Emotional Support", session.Categorized.SocialEmotionalSupport)
	w.suggestionGroup("Therapeutic Techniques", session.Categorized.TherapeuticTechniques)
	w.suggestionGroup("Medication Considerations", session.Categorized.MedicationConsiderations)
	w.br(10)

	w.heading(14, "Treatment Plan")
	w.setFont(10)
	for _, goal := range session.Prescription.TreatmentGoals {
		w.wrapped("- " + goal)
	}
	w.wrapped("Monitoring: " + session.Prescription.MonitoringPlan)
	w.wrapped("Follow-up schedule: " + session.Prescription.FollowUpSchedule)
	for _, c := range session.Prescription.Contraindications {
		w.wrapped("Warning: " + c)
	}

	if w.err != nil {
		return nil, fmt.Errorf("render prescription: %w", w.err)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write PDF: %w", err)
	}

	s.logger.Info("prescription report rendered",
		zap.String("user_id", userID.String()),
		zap.String("session_id", session.ID.String()),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// writer wraps gopdf with line-oriented helpers and sticky error handling.
type writer struct {
	pdf *gopdf.GoPdf
	err error
}

func (w *writer) setFont(size float64) {
	if w.err != nil {
		return
	}
	w.err = w.pdf.SetFont("DejaVu", "", size)
}

func (w *writer) heading(size float64, text string) {
	w.setFont(size)
	if w.err != nil {
		return
	}
	w.pdf.Cell(nil, text)
	w.pdf.Br(18)
}

func (w *writer) line(text string) {
	if w.err != nil {
		return
	}
	w.pdf.Cell(nil, text)
	w.pdf.Br(14)
}

func (w *writer) wrapped(text string) {
	if w.err != nil {
		return
	}
	lines, _ := w.pdf.SplitText(text, 500)
	for _, l := range lines {
		w.pdf.Cell(nil, l)
		w.pdf.Br(12)
	}
}

func (w *writer) br(h float64) {
	if w.err != nil {
		return
	}
	w.pdf.Br(h)
}

func (w *writer) suggestionGroup(title string, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	w.line(title + ":")
	for _, s := range suggestions {
		w.wrapped("- " + s)
	}
	w.br(4)
}
