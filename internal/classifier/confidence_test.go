package classifier

import "testing"

func TestScoreConfidenceHigh(t *testing.T) {
	label, tier := ScoreConfidence(Distribution{"A": 0.9, "B": 0.05, "C": 0.05})
	if label != "A" {
		t.Errorf("Expected label A, got %s", label)
	}
	if tier != TierHigh {
		t.Errorf("Expected HIGH, got %s", tier)
	}
}

func TestScoreConfidenceNarrowMarginIsLow(t *testing.T) {
	// Ratio 1.2 fails the MEDIUM ratio threshold despite top1 >= 0.10.
	label, tier := ScoreConfidence(Distribution{"A": 0.12, "B": 0.10})
	if label != "A" {
		t.Errorf("Expected label A, got %s", label)
	}
	if tier != TierLow {
		t.Errorf("Expected LOW, got %s", tier)
	}
}

func TestScoreConfidenceSingleLabelSentinel(t *testing.T) {
	// No competing class: sentinel ratio 10 with top1 1.0 gives HIGH.
	label, tier := ScoreConfidence(Distribution{"A": 1.0})
	if label != "A" {
		t.Errorf("Expected label A, got %s", label)
	}
	if tier != TierHigh {
		t.Errorf("Expected HIGH, got %s", tier)
	}
}

func TestScoreConfidenceRatioBoundary(t *testing.T) {
	// 0.25/0.125 is exactly 2.0 and both floats are exact in binary.
	_, tier := ScoreConfidence(Distribution{"A": 0.25, "B": 0.125})
	if tier != TierHigh {
		t.Errorf("Expected ratio exactly 2.0 with top1 0.25 to be HIGH, got %s", tier)
	}

	// Ratio just under 2.0 must not be HIGH; it still satisfies MEDIUM.
	_, tier = ScoreConfidence(Distribution{"A": 0.199, "B": 0.10})
	if tier != TierMedium {
		t.Errorf("Expected ratio 1.99 to be MEDIUM, got %s", tier)
	}
}

func TestScoreConfidenceTop1Boundary(t *testing.T) {
	// Exact top1 floor with a comfortable ratio qualifies as HIGH.
	_, tier := ScoreConfidence(Distribution{"A": 0.15, "B": 0.05})
	if tier != TierHigh {
		t.Errorf("Expected top1 exactly 0.15 to be HIGH, got %s", tier)
	}

	// Wide ratio but top1 below the HIGH floor drops to MEDIUM.
	_, tier = ScoreConfidence(Distribution{"A": 0.14, "B": 0.05})
	if tier != TierMedium {
		t.Errorf("Expected top1 0.14 to be MEDIUM, got %s", tier)
	}

	// Wide ratio but top1 below both floors drops to LOW.
	_, tier = ScoreConfidence(Distribution{"A": 0.09, "B": 0.04})
	if tier != TierLow {
		t.Errorf("Expected top1 0.09 to be LOW, got %s", tier)
	}
}

// Ties for the top probability resolve to the lexicographically smallest
// label regardless of map iteration order.
func TestScoreConfidenceTieBreak(t *testing.T) {
	for i := 0; i < 50; i++ {
		label, tier := ScoreConfidence(Distribution{"B": 0.4, "A": 0.4, "C": 0.2})
		if label != "A" {
			t.Fatalf("Expected tie to resolve to A, got %s", label)
		}
		if tier != TierLow {
			t.Fatalf("Expected tied top probabilities to be LOW, got %s", tier)
		}
	}
}

func TestScoreConfidenceAlwaysReturnsOneTier(t *testing.T) {
	dists := []Distribution{
		{"A": 0.9, "B": 0.1},
		{"A": 0.5, "B": 0.5},
		{"A": 0.34, "B": 0.33, "C": 0.33},
		{"A": 1.0},
		{"A": 0.02, "B": 0.01, "C": 0.97},
	}
	for _, dist := range dists {
		_, tier := ScoreConfidence(dist)
		switch tier {
		case TierHigh, TierMedium, TierLow:
		default:
			t.Errorf("ScoreConfidence(%v) returned invalid tier %q", dist, tier)
		}
		// HIGH implies the MEDIUM thresholds also hold (monotonic tiers).
		if tier == TierHigh {
			_, again := ScoreConfidence(dist)
			if again != TierHigh {
				t.Errorf("ScoreConfidence(%v) not stable", dist)
			}
		}
	}
}

func TestScoreConfidenceEmptyDistribution(t *testing.T) {
	label, tier := ScoreConfidence(Distribution{})
	if label != "" || tier != TierLow {
		t.Errorf("Expected empty distribution to yield (\"\", LOW), got (%q, %s)", label, tier)
	}
}
