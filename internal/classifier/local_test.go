package classifier

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lifeline-aid/platform/internal/shared/config"
	"github.com/lifeline-aid/platform/internal/shared/errors"
)

// writeTestArtifacts exports a two-label model: "fever" votes for Flu,
// "cut" votes for Laceration.
func writeTestArtifacts(t *testing.T) config.ModelConfig {
	t.Helper()
	dir := t.TempDir()

	vec := map[string]any{
		"vocabulary": map[string]int{"fever": 0, "cut": 1},
		"idf":        []float64{1.0, 1.0},
	}
	model := map[string]any{
		"labels":       []string{"Flu", "Laceration"},
		"coefficients": [][]float64{{2.0, -2.0}, {-2.0, 2.0}},
		"intercepts":   []float64{0.0, 0.0},
	}

	cfg := config.ModelConfig{
		VectorizerPath: filepath.Join(dir, "vectorizer.json"),
		ClassifierPath: filepath.Join(dir, "classifier.json"),
	}
	writeJSON(t, cfg.VectorizerPath, vec)
	writeJSON(t, cfg.ClassifierPath, model)
	return cfg
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
}

func TestLocalPredict(t *testing.T) {
	local, err := NewLocal(writeTestArtifacts(t))
	if err != nil {
		t.Fatalf("Expected artifacts to load, got: %v", err)
	}
	if !local.Ready() {
		t.Fatal("Expected loaded backend to be ready")
	}

	pred, err := local.Predict(context.Background(), "i have a fever and chills")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.Label != "Flu" {
		t.Errorf("Expected Flu, got %s", pred.Label)
	}
	if pred.Distribution == nil {
		t.Fatal("Local backend must return a full distribution")
	}
	if pred.Distribution["Flu"] <= pred.Distribution["Laceration"] {
		t.Errorf("Expected Flu to dominate: %v", pred.Distribution)
	}

	var sum float64
	for _, p := range pred.Distribution {
		if p < 0 || p > 1 {
			t.Errorf("Probability out of range: %v", pred.Distribution)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Distribution sums to %f, expected 1", sum)
	}
}

func TestLocalPredictUnknownTokens(t *testing.T) {
	local, err := NewLocal(writeTestArtifacts(t))
	if err != nil {
		t.Fatalf("Expected artifacts to load, got: %v", err)
	}

	// Nothing in vocabulary: scores reduce to the intercepts, the softmax
	// is uniform, and the tie resolves to the lexicographically smallest label.
	pred, err := local.Predict(context.Background(), "zzz qqq")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.Label != "Flu" {
		t.Errorf("Expected uniform tie to resolve to Flu, got %s", pred.Label)
	}
}

func TestLocalMissingArtifacts(t *testing.T) {
	_, err := NewLocal(config.ModelConfig{
		VectorizerPath: "does/not/exist.json",
		ClassifierPath: "does/not/exist.json",
	})
	if err == nil {
		t.Fatal("Expected error for missing artifacts")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != "MODEL_UNAVAILABLE" {
		t.Errorf("Expected MODEL_UNAVAILABLE, got %s", appErr.Code)
	}
}

func TestLocalMismatchedArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.ModelConfig{
		VectorizerPath: filepath.Join(dir, "vectorizer.json"),
		ClassifierPath: filepath.Join(dir, "classifier.json"),
	}
	writeJSON(t, cfg.VectorizerPath, map[string]any{
		"vocabulary": map[string]int{"fever": 0},
		"idf":        []float64{1.0},
	})
	// Coefficient row has two features but the vectorizer has one.
	writeJSON(t, cfg.ClassifierPath, map[string]any{
		"labels":       []string{"Flu"},
		"coefficients": [][]float64{{1.0, 2.0}},
		"intercepts":   []float64{0.0},
	})

	if _, err := NewLocal(cfg); err == nil {
		t.Fatal("Expected error for mismatched artifacts")
	}
}
