package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersWithScore(t *testing.T, raw []int) Answers {
	t.Helper()
	a, err := ParseAnswers(raw)
	require.NoError(t, err)
	return a
}

func TestStratifyRisk_HighByScore(t *testing.T) {
	// score 20, item 9 = 0: high tier on total alone
	a := answersWithScore(t, []int{3, 3, 3, 3, 3, 3, 1, 1, 0})
	require.Equal(t, 20, a.Score())

	risk := StratifyRisk(a)
	assert.Equal(t, RiskHigh, risk.Level)
	assert.Equal(t, FollowUpImmediate, risk.FollowUp)
	assert.Equal(t, []string{"High PHQ-9 score"}, risk.RiskFactors)
	assert.Contains(t, risk.SafetyPlan, "Do not leave patient alone")
}

func TestStratifyRisk_HighBySuicidalIdeationOverride(t *testing.T) {
	// score 14 (< 15) but item 9 = 3: the override must win
	a := answersWithScore(t, []int{2, 2, 1, 1, 1, 2, 1, 1, 3})
	require.Equal(t, 14, a.Score())

	risk := StratifyRisk(a)
	assert.Equal(t, RiskHigh, risk.Level)
	assert.Equal(t, FollowUpImmediate, risk.FollowUp)
	assert.Equal(t, []string{"Suicidal ideation present"}, risk.RiskFactors)
}

func TestStratifyRisk_HighBothFactors(t *testing.T) {
	a := answersWithScore(t, []int{3, 3, 3, 3, 3, 3, 3, 3, 3})

	risk := StratifyRisk(a)
	assert.Equal(t, RiskHigh, risk.Level)
	assert.Equal(t, []string{"High PHQ-9 score", "Suicidal ideation present"}, risk.RiskFactors)
}

func TestStratifyRisk_ModerateBoundary(t *testing.T) {
	// score 15, item 9 below the override threshold
	a := answersWithScore(t, []int{3, 3, 3, 3, 1, 1, 0, 0, 1})
	require.Equal(t, 15, a.Score())

	risk := StratifyRisk(a)
	assert.Equal(t, RiskModerate, risk.Level)
	assert.Equal(t, FollowUpOneWeek, risk.FollowUp)
	assert.Equal(t, []string{"Moderate depression symptoms"}, risk.RiskFactors)
	assert.NotEmpty(t, risk.SafetyPlan)
}

func TestStratifyRisk_JustUnderModerate(t *testing.T) {
	// score 14, item 9 = 0: stays below the moderate tier
	a := answersWithScore(t, []int{2, 2, 2, 2, 2, 2, 1, 1, 0})
	require.Equal(t, 14, a.Score())

	risk := StratifyRisk(a)
	assert.Equal(t, RiskLowModerate, risk.Level)
	assert.Equal(t, FollowUpTwoWeeks, risk.FollowUp)
	assert.Empty(t, risk.SafetyPlan)
}

func TestStratifyRisk_Low(t *testing.T) {
	a := answersWithScore(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0})

	risk := StratifyRisk(a)
	assert.Equal(t, RiskLow, risk.Level)
	assert.Equal(t, FollowUpOneMonth, risk.FollowUp)
	assert.Empty(t, risk.RiskFactors)
	assert.Empty(t, risk.SafetyPlan)
}

func TestStratifyRisk_EmergencyContactsAlwaysPresent(t *testing.T) {
	inputs := [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{2, 2, 2, 2, 2, 2, 1, 1, 0},
		{3, 3, 3, 3, 1, 1, 0, 0, 1},
		{3, 3, 3, 3, 3, 3, 3, 3, 3},
		{0, 0, 0, 0, 0, 0, 0, 0, 2},
	}
	for _, raw := range inputs {
		risk := StratifyRisk(answersWithScore(t, raw))
		require.NotEmpty(t, risk.EmergencyContacts, "input %v", raw)
		assert.Equal(t, EmergencyContacts(), risk.EmergencyContacts)
	}
}

func TestStratifyRisk_OverrideIndependentOfTotal(t *testing.T) {
	// item 9 = 2 with an otherwise zero questionnaire
	a := answersWithScore(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 2})
	require.Equal(t, 2, a.Score())

	risk := StratifyRisk(a)
	assert.Equal(t, RiskHigh, risk.Level)
	assert.Equal(t, FollowUpImmediate, risk.FollowUp)
}

func TestEmergencyContacts_CopyIsIndependent(t *testing.T) {
	contacts := EmergencyContacts()
	contacts[0] = "mutated"
	assert.NotEqual(t, contacts[0], EmergencyContacts()[0])
}
