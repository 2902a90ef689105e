package triage

import (
	"time"

	"github.com/lifeline-aid/platform/internal/classifier"
	"github.com/lifeline-aid/platform/internal/knowledge"
	"github.com/lifeline-aid/platform/internal/narrative"
)

// Assessment is the terminal output of one pipeline invocation. It is
// created fresh per request, immutable once produced, and never persisted
// by the pipeline itself (history recording is a separate, optional
// concern).
type Assessment struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Condition is the predicted label; the knowledge-base fields below are
	// resolved from it, falling back to fixed defaults for unknown labels.
	Condition     string                    `json:"condition"`
	ConditionType narrative.ConditionType   `json:"condition_type"`
	InputStyle    narrative.InputStyle      `json:"input_style"`
	Narrative     string                    `json:"narrative"`
	Tier          classifier.ConfidenceTier `json:"confidence_tier,omitempty"`

	Priority          knowledge.Priority    `json:"priority"`
	TriageColor       knowledge.TriageColor `json:"triage_color"`
	Description       string                `json:"description"`
	Precautions       []string              `json:"precautions"`
	ImmediateSupplies []string              `json:"immediate_supplies"`
	Equipment         []string              `json:"equipment"`
	Notes             string                `json:"notes"`

	Backend   string `json:"backend"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// AssessRequest is the POST /assess payload.
type AssessRequest struct {
	Symptoms string `json:"symptoms"`
}
