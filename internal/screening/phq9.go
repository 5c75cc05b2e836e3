package screening

import (
	"errors"
	"fmt"
)

// AnswerCount is the number of items on the PHQ-9 questionnaire.
const AnswerCount = 9

// suicidalIdeationIndex is the ninth PHQ-9 item (thoughts of self-harm).
// Its value drives the high-risk override in StratifyRisk.
const suicidalIdeationIndex = 8

const (
	// MinAnswerValue and MaxAnswerValue bound a single item response.
	MinAnswerValue = 0
	MaxAnswerValue = 3

	// MaxScore is the largest possible PHQ-9 total.
	MaxScore = AnswerCount * MaxAnswerValue
)

// ErrValidation marks a malformed PHQ-9 submission. Handlers map it to a
// 400 response; nothing is persisted when it is returned.
var ErrValidation = errors.New("invalid PHQ-9 submission")

// Answers is a validated PHQ-9 response: exactly nine values, each 0-3.
// The zero value is a valid all-"Not at all" response.
type Answers [AnswerCount]int

// ParseAnswers validates a raw answer slice as submitted over the wire.
func ParseAnswers(raw []int) (Answers, error) {
	var a Answers
	if len(raw) != AnswerCount {
		return a, fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, AnswerCount, len(raw))
	}
	for i, v := range raw {
		if v < MinAnswerValue || v > MaxAnswerValue {
			return a, fmt.Errorf("%w: answer %d out of range: %d", ErrValidation, i+1, v)
		}
		a[i] = v
	}
	return a, nil
}

// Score returns the PHQ-9 total, always within [0, MaxScore].
func (a Answers) Score() int {
	total := 0
	for _, v := range a {
		total += v
	}
	return total
}

// SuicidalIdeation returns the response to the ninth item.
func (a Answers) SuicidalIdeation() int {
	return a[suicidalIdeationIndex]
}

// Slice returns the answers as a fresh slice for serialization.
func (a Answers) Slice() []int {
	out := make([]int, AnswerCount)
	copy(out, a[:])
	return out
}

// phq9Questions holds the standard PHQ-9 item wording.
var phq9Questions = [AnswerCount]string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself — or that you are a failure or have let yourself or your family down",
	"Trouble concentrating on things, such as reading the newspaper or watching television",
	"Moving or speaking so slowly that other people could have noticed. Or the opposite — being so fidgety or restless that you have been moving around a lot more than usual",
	"Thoughts that you would be better off dead, or of hurting yourself",
}

// QuestionText returns the wording of a PHQ-9 item by zero-based index.
func QuestionText(index int) string {
	if index < 0 || index >= AnswerCount {
		return fmt.Sprintf("Question %d", index+1)
	}
	return phq9Questions[index]
}

// ResponseText returns the answer-scale label for a single item value.
func ResponseText(value int) string {
	switch value {
	case 0:
		return "Not at all"
	case 1:
		return "Several days"
	case 2:
		return "More than half the days"
	case 3:
		return "Nearly every day"
	default:
		return "Not specified"
	}
}

// DetailedResponse pairs one PHQ-9 item with the patient's answer, in the
// denormalized form stored on a session and printed on reports.
type DetailedResponse struct {
	QuestionIndex int    `json:"question_index"`
	QuestionText  string `json:"question_text"`
	ResponseValue int    `json:"response_value"`
	ResponseText  string `json:"response_text"`
}

// DetailedResponses expands the answers into per-item records.
func (a Answers) DetailedResponses() []DetailedResponse {
	out := make([]DetailedResponse, AnswerCount)
	for i, v := range a {
		out[i] = DetailedResponse{
			QuestionIndex: i,
			QuestionText:  QuestionText(i),
			ResponseValue: v,
			ResponseText:  ResponseText(v),
		}
	}
	return out
}
