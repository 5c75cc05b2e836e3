package screening

import "strings"

// Suggestion category keys. They double as JSON/document field names.
const (
	CategoryImmediateActions         = "immediate_actions"
	CategoryLifestyleModifications   = "lifestyle_modifications"
	CategoryProfessionalSupport      = "professional_support"
	CategorySocialEmotionalSupport   = "social_emotional_support"
	CategoryTherapeuticTechniques    = "therapeutic_techniques"
	CategoryMedicationConsiderations = "medication_considerations"
)

type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is evaluated top to bottom with first-match-wins semantics.
// The order is behavior, not style: a suggestion mentioning both "exercise"
// and "therapy" lands in lifestyle_modifications because that rule is
// checked earlier. Keep the order stable.
var categoryRules = []categoryRule{
	{CategoryImmediateActions, []string{"immediate", "urgent", "emergency"}},
	{CategoryLifestyleModifications, []string{"exercise", "sleep", "diet", "routine"}},
	{CategoryProfessionalSupport, []string{"professional", "therapist", "counselor", "psychiatrist"}},
	{CategorySocialEmotionalSupport, []string{"social", "family", "friend", "support"}},
	{CategoryTherapeuticTechniques, []string{"therapy", "cbt", "meditation", "technique"}},
	{CategoryMedicationConsiderations, []string{"medication", "antidepressant", "prescription"}},
}

// CategorizedSuggestions partitions free-text suggestions into the six
// fixed buckets. Insertion order within a bucket follows input order.
type CategorizedSuggestions struct {
	ImmediateActions         []string `json:"immediate_actions"`
	LifestyleModifications   []string `json:"lifestyle_modifications"`
	ProfessionalSupport      []string `json:"professional_support"`
	SocialEmotionalSupport   []string `json:"social_emotional_support"`
	TherapeuticTechniques    []string `json:"therapeutic_techniques"`
	MedicationConsiderations []string `json:"medication_considerations"`
}

func (c *CategorizedSuggestions) bucket(category string) *[]string {
	switch category {
	case CategoryImmediateActions:
		return &c.ImmediateActions
	case CategoryLifestyleModifications:
		return &c.LifestyleModifications
	case CategoryProfessionalSupport:
		return &c.ProfessionalSupport
	case CategorySocialEmotionalSupport:
		return &c.SocialEmotionalSupport
	case CategoryTherapeuticTechniques:
		return &c.TherapeuticTechniques
	case CategoryMedicationConsiderations:
		return &c.MedicationConsiderations
	default:
		return &c.SocialEmotionalSupport
	}
}

// Total counts suggestions across all buckets. For any input list the
// total equals the input length: the partition conserves count.
func (c CategorizedSuggestions) Total() int {
	return len(c.ImmediateActions) +
		len(c.LifestyleModifications) +
		len(c.ProfessionalSupport) +
		len(c.SocialEmotionalSupport) +
		len(c.TherapeuticTechniques) +
		len(c.MedicationConsiderations)
}

// CategorizeSuggestions assigns each suggestion to exactly one bucket by
// case-insensitive keyword matching over categoryRules. Suggestions that
// match no rule default to social/emotional support. An empty input yields
// all buckets empty.
func CategorizeSuggestions(suggestions []string) CategorizedSuggestions {
	c := CategorizedSuggestions{
		ImmediateActions:         []string{},
		LifestyleModifications:   []string{},
		ProfessionalSupport:      []string{},
		SocialEmotionalSupport:   []string{},
		TherapeuticTechniques:    []string{},
		MedicationConsiderations: []string{},
	}
	for _, suggestion := range suggestions {
		lower := strings.ToLower(suggestion)
		target := &c.SocialEmotionalSupport
	rules:
		for _, rule := range categoryRules {
			for _, keyword := range rule.keywords {
				if strings.Contains(lower, keyword) {
					target = c.bucket(rule.category)
					break rules
				}
			}
		}
		*target = append(*target, suggestion)
	}
	return c
}
