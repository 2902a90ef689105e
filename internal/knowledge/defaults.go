package knowledge

// Fallback records served when a predicted label has no knowledge-base
// entry. Returned as fresh values so callers can never mutate shared state.

// DefaultCondition returns the fallback description/precautions record.
func DefaultCondition() ConditionRecord {
	return ConditionRecord{
		Description: "Medical condition requiring professional evaluation.",
		Precautions: []string{
			"Consult healthcare provider",
			"Monitor symptoms",
			"Rest",
			"Stay hydrated",
		},
	}
}

// DefaultSupply returns the fallback supply-chain record.
func DefaultSupply() SupplyRecord {
	return SupplyRecord{
		Priority:    PriorityMedium,
		TriageColor: ColorYellow,
		ImmediateSupplies: []string{
			"First aid kit",
			"Pain medication",
			"Bandages",
			"Antiseptic",
		},
		Equipment: []string{
			"Vital signs monitor",
			"Basic diagnostic tools",
		},
		Notes: "Assess patient condition. Provide supportive care. Monitor vital signs.",
	}
}
