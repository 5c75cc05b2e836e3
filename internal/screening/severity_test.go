package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Severity
	}{
		{0, SeverityMinimal},
		{4, SeverityMinimal},
		{5, SeverityMild},
		{9, SeverityMild},
		{10, SeverityModerate},
		{14, SeverityModerate},
		{15, SeverityModeratelySevere},
		{19, SeverityModeratelySevere},
		{20, SeveritySevere},
		{27, SeveritySevere},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifySeverity(tc.score), "score %d", tc.score)
	}
}

func TestClassifySeverity_EveryScoreMapsToOneBand(t *testing.T) {
	for score := 0; score <= MaxScore; score++ {
		band := ClassifySeverity(score)
		assert.GreaterOrEqual(t, band, SeverityMinimal)
		assert.LessOrEqual(t, band, SeveritySevere)
		assert.NotEmpty(t, band.Level())
		assert.NotEmpty(t, band.Description())
	}
}

func TestSeverityLabels(t *testing.T) {
	assert.Equal(t, "Minimal Depression", SeverityMinimal.Level())
	assert.Equal(t, "Severe Depression", SeveritySevere.Level())
	assert.Equal(t, "Moderately Severe Depression", SeverityModeratelySevere.String())
}

func TestSeverityInterpretation(t *testing.T) {
	interp := ClassifySeverity(12).Interpretation()
	assert.Equal(t, "Moderate Depression", interp.Level)
	assert.Equal(t, "Moderate depression symptoms requiring attention", interp.Description)
}
