package classifier

import "sort"

// ConfidenceTier buckets prediction certainty into three coarse levels
// derived from the top-two probability margin.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "HIGH"
	TierMedium ConfidenceTier = "MEDIUM"
	TierLow    ConfidenceTier = "LOW"

	// TierUnknown marks predictions from backends that cannot produce a
	// probability distribution, where tiering is inapplicable.
	TierUnknown ConfidenceTier = ""
)

// soloRatio is the sentinel confidence ratio used when there is no
// competing class (fewer than two labels, or a zero runner-up).
const soloRatio = 10.0

// Tier thresholds. Each tier requires BOTH its ratio and its absolute
// top-probability floor: a narrow margin with low absolute probability must
// not qualify, and vice versa.
const (
	highRatio   = 2.0
	highTop1    = 0.15
	mediumRatio = 1.3
	mediumTop1  = 0.10
)

// ScoreConfidence picks the top label from a probability distribution and
// derives its confidence tier from the ratio of the top two probabilities.
//
// Ties for the top probability resolve to the lexicographically smallest
// label, so the reported label is deterministic regardless of map iteration
// order. An empty distribution yields ("", TierLow).
func ScoreConfidence(dist Distribution) (string, ConfidenceTier) {
	if len(dist) == 0 {
		return "", TierLow
	}

	labels := make([]string, 0, len(dist))
	for label := range dist {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var topLabel string
	var top1, top2 float64
	for i, label := range labels {
		p := dist[label]
		if i == 0 {
			topLabel, top1 = label, p
			continue
		}
		// Strict greater-than: on a tie the earlier, smaller label stays.
		if p > top1 {
			top2 = top1
			topLabel, top1 = label, p
		} else if p > top2 {
			top2 = p
		}
	}

	ratio := soloRatio
	if top2 > 0 {
		ratio = top1 / top2
	}

	switch {
	case ratio >= highRatio && top1 >= highTop1:
		return topLabel, TierHigh
	case ratio >= mediumRatio && top1 >= mediumTop1:
		return topLabel, TierMedium
	default:
		return topLabel, TierLow
	}
}
