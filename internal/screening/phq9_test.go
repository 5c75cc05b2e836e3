package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers_WrongLength(t *testing.T) {
	_, err := ParseAnswers([]int{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseAnswers(nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseAnswers([]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseAnswers_OutOfRange(t *testing.T) {
	_, err := ParseAnswers([]int{0, 0, 0, 0, 4, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseAnswers([]int{0, 0, 0, 0, 0, 0, 0, 0, -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScore_SumsAndBounds(t *testing.T) {
	cases := []struct {
		raw  []int
		want int
	}{
		{[]int{0, 0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{[]int{3, 3, 3, 3, 3, 3, 3, 3, 3}, 27},
		{[]int{2, 2, 1, 1, 1, 2, 1, 1, 3}, 14},
		{[]int{1, 0, 2, 0, 1, 0, 3, 0, 1}, 8},
	}
	for _, tc := range cases {
		a, err := ParseAnswers(tc.raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, a.Score())
		assert.GreaterOrEqual(t, a.Score(), 0)
		assert.LessOrEqual(t, a.Score(), MaxScore)
	}
}

func TestScore_Idempotent(t *testing.T) {
	a, err := ParseAnswers([]int{2, 1, 0, 3, 1, 2, 0, 1, 2})
	require.NoError(t, err)
	first := a.Score()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Score())
	}
}

func TestDetailedResponses(t *testing.T) {
	a, err := ParseAnswers([]int{0, 1, 2, 3, 0, 1, 2, 3, 0})
	require.NoError(t, err)

	detailed := a.DetailedResponses()
	require.Len(t, detailed, AnswerCount)

	assert.Equal(t, 0, detailed[0].QuestionIndex)
	assert.Equal(t, "Not at all", detailed[0].ResponseText)
	assert.Equal(t, "Several days", detailed[1].ResponseText)
	assert.Equal(t, "More than half the days", detailed[2].ResponseText)
	assert.Equal(t, "Nearly every day", detailed[3].ResponseText)
	assert.Equal(t, QuestionText(8), detailed[8].QuestionText)
}

func TestSuicidalIdeation(t *testing.T) {
	a, err := ParseAnswers([]int{0, 0, 0, 0, 0, 0, 0, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, a.SuicidalIdeation())
}
