package screening

// Severity is a depression-severity band derived from the PHQ-9 total.
// Bands are ordered by increasing severity.
type Severity int

const (
	SeverityMinimal Severity = iota
	SeverityMild
	SeverityModerate
	SeverityModeratelySevere
	SeveritySevere
)

type severityBand struct {
	max         int // upper bound, inclusive
	level       string
	description string
}

// severityBands is the single source of truth for the PHQ-9 breakpoints.
// Every caller (live screening, PHQ submit, history rendering) classifies
// through this table.
var severityBands = [...]severityBand{
	SeverityMinimal:          {4, "Minimal Depression", "Little to no depression symptoms"},
	SeverityMild:             {9, "Mild Depression", "Some depression symptoms that may affect daily life"},
	SeverityModerate:         {14, "Moderate Depression", "Moderate depression symptoms requiring attention"},
	SeverityModeratelySevere: {19, "Moderately Severe Depression", "Significant symptoms requiring professional help"},
	SeveritySevere:           {MaxScore, "Severe Depression", "Severe symptoms requiring immediate professional intervention"},
}

// ClassifySeverity maps a PHQ-9 total onto its severity band. Scores above
// MaxScore cannot occur for validated answers; they clamp to Severe.
func ClassifySeverity(score int) Severity {
	for band, b := range severityBands {
		if score <= b.max {
			return Severity(band)
		}
	}
	return SeveritySevere
}

// Level returns the band's display label.
func (s Severity) Level() string {
	return severityBands[s].level
}

// Description returns the band's one-line interpretation.
func (s Severity) Description() string {
	return severityBands[s].description
}

func (s Severity) String() string {
	return s.Level()
}

// SeverityInterpretation is the denormalized severity view stored on a
// session and returned to callers.
type SeverityInterpretation struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Interpretation materializes the band for storage.
func (s Severity) Interpretation() SeverityInterpretation {
	return SeverityInterpretation{Level: s.Level(), Description: s.Description()}
}
