package narrative

import "strings"

// InputStyle describes the narrative register of free-text symptom input.
type InputStyle string

const (
	StyleFirstPerson InputStyle = "first"
	StyleThirdPerson InputStyle = "third"
	StyleClinical    InputStyle = "clinical"
	StyleUnknown     InputStyle = "unknown"
)

// DetectStyle classifies the narrative style of the given text by phrase
// matching. The marker lists are not mutually exclusive; first-person is
// checked before third-person before clinical, and the first list with any
// matching substring wins. Always returns a value.
//
// The result is a diagnostic signal: synthesis does not branch on it today,
// but it is computed per request and surfaced so per-style templates can be
// added without changing observable plumbing.
func DetectStyle(text string) InputStyle {
	lowered := strings.ToLower(text)

	for _, marker := range firstPersonMarkers {
		if strings.Contains(lowered, marker) {
			return StyleFirstPerson
		}
	}
	for _, marker := range thirdPersonMarkers {
		if strings.Contains(lowered, marker) {
			return StyleThirdPerson
		}
	}
	for _, marker := range clinicalMarkers {
		if strings.Contains(lowered, marker) {
			return StyleClinical
		}
	}
	return StyleUnknown
}
