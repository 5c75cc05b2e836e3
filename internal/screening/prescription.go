package screening

import (
	"fmt"
	"strings"
)

// treatmentScoreTarget is the PHQ-9 total the first treatment goal aims for.
const treatmentScoreTarget = 10

// severeContraindications is appended exactly when the severity band is
// Severe, and never otherwise.
var severeContraindications = [...]string{
	"Avoid alcohol and recreational drugs",
	"Do not discontinue medications without medical supervision",
}

// Prescription is the structured recommendation artifact attached to a
// session and rendered on the downloadable report.
type Prescription struct {
	Recommendations          []string `json:"personalized_recommendations"`
	TreatmentGoals           []string `json:"treatment_goals"`
	MonitoringPlan           string   `json:"monitoring_plan"`
	FollowUpSchedule         string   `json:"follow_up_schedule"`
	Contraindications        []string `json:"contraindications"`
	LifestyleRecommendations []string `json:"lifestyle_recommendations"`
}

// SynthesizePrescription combines severity, risk, and the categorized
// suggestions into a prescription. Deterministic: no clock, no randomness,
// no external calls. The raw suggestion list passes through unmodified as
// the recommendations; the lifestyle bucket is shared by reference.
func SynthesizePrescription(score int, severity Severity, risk RiskAssessment, categorized CategorizedSuggestions, domain string, suggestions []string) Prescription {
	recommendations := suggestions
	if recommendations == nil {
		recommendations = []string{}
	}

	contraindications := []string{}
	if severity == SeveritySevere {
		contraindications = append(contraindications, severeContraindications[:]...)
	}

	return Prescription{
		Recommendations: recommendations,
		TreatmentGoals: []string{
			fmt.Sprintf("Reduce PHQ-9 score from %d to below %d", score, treatmentScoreTarget),
			fmt.Sprintf("Improve daily functioning in %s domain", domain),
			"Develop healthy coping mechanisms",
			"Establish regular support system",
		},
		MonitoringPlan:           fmt.Sprintf("Track PHQ-9 symptoms weekly. Reassess in %s.", strings.ToLower(risk.FollowUp)),
		FollowUpSchedule:         risk.FollowUp,
		Contraindications:        contraindications,
		LifestyleRecommendations: categorized.LifestyleModifications,
	}
}
