package screening

// Risk levels, highest urgency last.
const (
	RiskLow         = "Low"
	RiskLowModerate = "Low-Moderate"
	RiskModerate    = "Moderate"
	RiskHigh        = "High"
)

// Follow-up timelines attached to each risk tier.
const (
	FollowUpImmediate = "Immediately"
	FollowUpOneWeek   = "Within 1 week"
	FollowUpTwoWeeks  = "Within 2 weeks"
	FollowUpOneMonth  = "Within 1 month"
)

// Risk tier thresholds on the PHQ-9 total, plus the item-9 value that
// triggers the high-risk override regardless of total.
const (
	highRiskScore             = 20
	moderateRiskScore         = 15
	lowModerateRiskScore      = 10
	suicidalIdeationThreshold = 2
)

// Safety-plan messages per tier. Lower tiers carry no plan.
const (
	safetyPlanHigh     = "Immediate professional intervention required. Do not leave patient alone."
	safetyPlanModerate = "Regular monitoring and professional support recommended."
)

// defaultEmergencyContacts is safety-critical: it is attached to every
// risk assessment on every tier and must never be empty.
var defaultEmergencyContacts = [...]string{
	"National Suicide Prevention Lifeline: 988",
	"Crisis Text Line: Text HOME to 741741",
	"Emergency Services: 911",
}

// EmergencyContacts returns a fresh copy of the crisis contact list.
func EmergencyContacts() []string {
	out := make([]string, len(defaultEmergencyContacts))
	copy(out, defaultEmergencyContacts[:])
	return out
}

// RiskAssessment is the urgency tier derived from a PHQ-9 response,
// including the follow-up timeline and safety messaging.
type RiskAssessment struct {
	Level             string   `json:"level"`
	FollowUp          string   `json:"follow_up_recommended"`
	RiskFactors       []string `json:"risk_factors_detailed"`
	SafetyPlan        string   `json:"safety_plan"`
	EmergencyContacts []string `json:"emergency_contacts"`
}

// StratifyRisk assigns a risk tier from the PHQ-9 total and the ninth item.
// Tiers are checked highest first; the first match wins. A small total does
// not dampen the suicidal-ideation override. The function is total: it never
// fails for validated answers.
func StratifyRisk(a Answers) RiskAssessment {
	score := a.Score()

	switch {
	case score >= highRiskScore || a.SuicidalIdeation() >= suicidalIdeationThreshold:
		factors := make([]string, 0, 2)
		if score >= highRiskScore {
			factors = append(factors, "High PHQ-9 score")
		}
		if a.SuicidalIdeation() >= suicidalIdeationThreshold {
			factors = append(factors, "Suicidal ideation present")
		}
		return RiskAssessment{
			Level:             RiskHigh,
			FollowUp:          FollowUpImmediate,
			RiskFactors:       factors,
			SafetyPlan:        safetyPlanHigh,
			EmergencyContacts: EmergencyContacts(),
		}
	case score >= moderateRiskScore:
		return RiskAssessment{
			Level:             RiskModerate,
			FollowUp:          FollowUpOneWeek,
			RiskFactors:       []string{"Moderate depression symptoms"},
			SafetyPlan:        safetyPlanModerate,
			EmergencyContacts: EmergencyContacts(),
		}
	case score >= lowModerateRiskScore:
		return RiskAssessment{
			Level:             RiskLowModerate,
			FollowUp:          FollowUpTwoWeeks,
			RiskFactors:       []string{"Mild depression symptoms"},
			EmergencyContacts: EmergencyContacts(),
		}
	default:
		return RiskAssessment{
			Level:             RiskLow,
			FollowUp:          FollowUpOneMonth,
			RiskFactors:       []string{},
			EmergencyContacts: EmergencyContacts(),
		}
	}
}
