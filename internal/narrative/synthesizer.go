package narrative

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxInjuryPhrases caps how many symptom phrases the injury opening cites.
const maxInjuryPhrases = 4

// Normalize applies Unicode NFKC normalization, strips control characters
// and lower-cases the text. Every synthesis pass starts here so that cache
// keys and templates see one canonical form.
func Normalize(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.ToLower(strings.TrimSpace(normed))
}

// Synthesize rewrites arbitrary user phrasing into the fixed narrative
// register the classifier was trained on: a third-person incident report
// for injuries, a first-person complaint for medical conditions. The
// function is total and deterministic; any non-empty input produces a
// non-empty narrative.
func Synthesize(text string, conditionType ConditionType) string {
	expanded := expandShorthand(Normalize(text))
	phrases := extractPhrases(expanded)

	if conditionType == ConditionInjury {
		return synthesizeInjury(expanded, phrases)
	}
	return synthesizeMedical(expanded, phrases)
}

// expandShorthand applies the substitution table as a single left-to-right
// pass. A rule fires only when its short form is present and its long form
// is not, so already-clinical input is left alone. Rules may chain: a later
// rule can match text produced by an earlier one.
func expandShorthand(text string) string {
	for _, sub := range substitutions {
		if strings.Contains(text, sub.short) && !strings.Contains(text, sub.long) {
			text = strings.ReplaceAll(text, sub.short, sub.long)
		}
	}
	return text
}

// extractPhrases splits on runs of comma, semicolon, period and newline,
// keeping trimmed phrases longer than 2 characters in appearance order.
// Duplicates are preserved. Falls back to the whole string when nothing
// survives the filter.
func extractPhrases(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '.' || r == '\n'
	})

	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 2 {
			phrases = append(phrases, p)
		}
	}
	if len(phrases) == 0 {
		phrases = []string{text}
	}
	return phrases
}

func synthesizeInjury(expanded string, phrases []string) string {
	context := injuryDefaultContext
	for _, group := range injuryContexts {
		if matchesAny(expanded, group.triggers) {
			context = group.sentence
			break
		}
	}

	cited := phrases
	if len(cited) > maxInjuryPhrases {
		cited = cited[:maxInjuryPhrases]
	}

	parts := []string{
		fmt.Sprintf("%s. the person is experiencing %s.", context, strings.Join(cited, ", ")),
	}
	for _, group := range injuryDetails {
		if matchesAny(expanded, group.triggers) {
			parts = append(parts, group.sentence)
		}
	}
	return strings.Join(parts, " ")
}

func synthesizeMedical(expanded string, phrases []string) string {
	var opening string
	switch len(phrases) {
	case 1:
		opening = fmt.Sprintf("i have been experiencing %s. this has been bothering me significantly.", phrases[0])
	case 2:
		opening = fmt.Sprintf("i have been experiencing %s. i also have %s. these symptoms are affecting my daily life.", phrases[0], phrases[1])
	default:
		head := strings.Join(phrases[:len(phrases)-1], ", ")
		last := phrases[len(phrases)-1]
		opening = fmt.Sprintf("i have been experiencing %s, and %s. these symptoms have been persistent.", head, last)
	}

	parts := []string{opening}
	for _, group := range medicalDetails {
		if matchesAny(expanded, group.triggers) {
			parts = append(parts, group.sentence)
		}
	}
	return strings.Join(parts, " ")
}

func matchesAny(text string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
