package narrative

import "strings"

// ConditionType is the injury/medical axis used to pick a narrative template.
type ConditionType string

const (
	ConditionInjury  ConditionType = "injury"
	ConditionMedical ConditionType = "medical"
)

// ClassifyType scores the text as more likely an injury or a medical
// complaint. Each keyword counts once when present (membership, not
// frequency), and any work-context term adds a fixed bonus to the injury
// side. The comparison is strict greater-than: equal scores resolve to
// medical.
func ClassifyType(text string) ConditionType {
	lowered := strings.ToLower(text)

	injuryScore := countPresent(lowered, injuryKeywords)
	medicalScore := countPresent(lowered, medicalKeywords)

	for _, term := range workContextKeywords {
		if strings.Contains(lowered, term) {
			injuryScore += workContextBonus
			break
		}
	}

	if injuryScore > medicalScore {
		return ConditionInjury
	}
	return ConditionMedical
}

func countPresent(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}
