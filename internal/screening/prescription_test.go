package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizePrescription_Goals(t *testing.T) {
	a := answersWithScore(t, []int{2, 2, 1, 1, 1, 2, 1, 1, 0})
	score := a.Score()
	risk := StratifyRisk(a)
	categorized := CategorizeSuggestions(nil)

	p := SynthesizePrescription(score, ClassifySeverity(score), risk, categorized, "work", nil)

	require.Len(t, p.TreatmentGoals, 4)
	assert.Equal(t, "Reduce PHQ-9 score from 11 to below 10", p.TreatmentGoals[0])
	assert.Equal(t, "Improve daily functioning in work domain", p.TreatmentGoals[1])
	assert.Equal(t, "Develop healthy coping mechanisms", p.TreatmentGoals[2])
	assert.Equal(t, "Establish regular support system", p.TreatmentGoals[3])
}

func TestSynthesizePrescription_MonitoringPlanEmbedsFollowUp(t *testing.T) {
	a := answersWithScore(t, []int{2, 2, 2, 2, 2, 2, 1, 1, 0})
	risk := StratifyRisk(a)
	require.Equal(t, FollowUpTwoWeeks, risk.FollowUp)

	p := SynthesizePrescription(a.Score(), ClassifySeverity(a.Score()), risk, CategorizeSuggestions(nil), "social", nil)
	assert.Equal(t, "Track PHQ-9 symptoms weekly. Reassess in within 2 weeks.", p.MonitoringPlan)
	assert.Equal(t, FollowUpTwoWeeks, p.FollowUpSchedule)
}

func TestSynthesizePrescription_ContraindicationsOnlyWhenSevere(t *testing.T) {
	severe := answersWithScore(t, []int{3, 3, 3, 3, 3, 3, 1, 1, 0})
	require.GreaterOrEqual(t, severe.Score(), 20)

	p := SynthesizePrescription(severe.Score(), ClassifySeverity(severe.Score()), StratifyRisk(severe), CategorizeSuggestions(nil), "family", nil)
	require.Len(t, p.Contraindications, 2)
	assert.Equal(t, "Avoid alcohol and recreational drugs", p.Contraindications[0])
	assert.Equal(t, "Do not discontinue medications without medical supervision", p.Contraindications[1])

	for _, raw := range [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{2, 2, 2, 2, 2, 2, 1, 1, 0},
		{3, 3, 3, 3, 3, 2, 1, 1, 0}, // score 19: highest non-severe
	} {
		a := answersWithScore(t, raw)
		p := SynthesizePrescription(a.Score(), ClassifySeverity(a.Score()), StratifyRisk(a), CategorizeSuggestions(nil), "family", nil)
		assert.Empty(t, p.Contraindications, "score %d", a.Score())
	}
}

func TestSynthesizePrescription_PassThroughAndLifestyle(t *testing.T) {
	suggestions := []string{
		"improve your sleep routine",
		"call a friend",
	}
	a := answersWithScore(t, []int{1, 1, 1, 1, 0, 0, 0, 0, 0})
	categorized := CategorizeSuggestions(suggestions)

	p := SynthesizePrescription(a.Score(), ClassifySeverity(a.Score()), StratifyRisk(a), categorized, "social", suggestions)
	assert.Equal(t, suggestions, p.Recommendations)
	assert.Equal(t, categorized.LifestyleModifications, p.LifestyleRecommendations)
	assert.Equal(t, []string{"improve your sleep routine"}, p.LifestyleRecommendations)
}

func TestSynthesizePrescription_Deterministic(t *testing.T) {
	a := answersWithScore(t, []int{2, 1, 2, 1, 2, 1, 2, 1, 0})
	risk := StratifyRisk(a)
	categorized := CategorizeSuggestions([]string{"daily exercise"})

	first := SynthesizePrescription(a.Score(), ClassifySeverity(a.Score()), risk, categorized, "work", []string{"daily exercise"})
	second := SynthesizePrescription(a.Score(), ClassifySeverity(a.Score()), risk, categorized, "work", []string{"daily exercise"})
	assert.Equal(t, first, second)
}
