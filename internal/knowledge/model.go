package knowledge

// Priority is the treatment urgency bucket for a condition.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// TriageColor is the RED/YELLOW/GREEN visual urgency encoding tied to priority.
type TriageColor string

const (
	ColorRed    TriageColor = "RED"
	ColorYellow TriageColor = "YELLOW"
	ColorGreen  TriageColor = "GREEN"
)

// ConditionRecord describes a condition and its recommended precautions.
type ConditionRecord struct {
	Description string   `json:"description"`
	Precautions []string `json:"precautions"`
}

// SupplyRecord carries the supply-chain and triage guidance for a condition.
type SupplyRecord struct {
	Priority          Priority    `json:"priority"`
	TriageColor       TriageColor `json:"triage_color"`
	ImmediateSupplies []string    `json:"immediate_supplies"`
	Equipment         []string    `json:"equipment"`
	Notes             string      `json:"notes"`
}
