package history

import "time"

// Entry is one recorded triage assessment. Only the decision is stored:
// raw symptom text and narratives never leave the request that produced
// them.
type Entry struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Condition     string    `json:"condition"`
	ConditionType string    `json:"condition_type"`
	Tier          string    `json:"confidence_tier"`
	Priority      string    `json:"priority"`
	TriageColor   string    `json:"triage_color"`
	InputStyle    string    `json:"input_style"`
	Backend       string    `json:"backend"`
	ElapsedMs     int64     `json:"elapsed_ms"`
}

// ListFilter narrows and pages history listings.
type ListFilter struct {
	Condition string
	Tier      string
	Priority  string
	Limit     int
	Offset    int
}

// Stats aggregates recorded assessments for the dashboard endpoints.
type Stats struct {
	Total      int            `json:"total"`
	ByTier     map[string]int `json:"by_tier"`
	ByPriority map[string]int `json:"by_priority"`
	ByType     map[string]int `json:"by_type"`
}
