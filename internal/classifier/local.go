package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lifeline-aid/platform/internal/shared/config"
	"github.com/lifeline-aid/platform/internal/shared/errors"
)

// vectorizerArtifact is the exported TF-IDF vocabulary and IDF weights.
type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// modelArtifact is the exported linear classifier: one coefficient row and
// one intercept per condition label.
type modelArtifact struct {
	Labels       []string    `json:"labels"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// Local runs the condition classifier in-process from model artifacts
// exported by the training pipeline. It vectorizes the narrative with
// TF-IDF and applies a softmax over the linear scores.
type Local struct {
	vectorizer *vectorizerArtifact
	model      *modelArtifact
}

// NewLocal loads the vectorizer and classifier artifacts from disk. Both
// files must exist and be mutually consistent; any problem leaves the
// backend unavailable rather than partially loaded.
func NewLocal(cfg config.ModelConfig) (*Local, error) {
	var vec vectorizerArtifact
	if err := readJSON(cfg.VectorizerPath, &vec); err != nil {
		return nil, errors.ModelUnavailable(fmt.Errorf("load vectorizer: %w", err))
	}
	var model modelArtifact
	if err := readJSON(cfg.ClassifierPath, &model); err != nil {
		return nil, errors.ModelUnavailable(fmt.Errorf("load classifier: %w", err))
	}

	if len(vec.Vocabulary) == 0 || len(vec.IDF) == 0 {
		return nil, errors.ModelUnavailable(fmt.Errorf("vectorizer artifact %s is empty", cfg.VectorizerPath))
	}
	for term, idx := range vec.Vocabulary {
		if idx < 0 || idx >= len(vec.IDF) {
			return nil, errors.ModelUnavailable(fmt.Errorf("vocabulary term %q has index %d outside idf table", term, idx))
		}
	}
	if len(model.Labels) == 0 {
		return nil, errors.ModelUnavailable(fmt.Errorf("classifier artifact %s has no labels", cfg.ClassifierPath))
	}
	if len(model.Coefficients) != len(model.Labels) || len(model.Intercepts) != len(model.Labels) {
		return nil, errors.ModelUnavailable(fmt.Errorf("classifier artifact %s has mismatched label/coefficient counts", cfg.ClassifierPath))
	}
	for i, row := range model.Coefficients {
		if len(row) != len(vec.IDF) {
			return nil, errors.ModelUnavailable(fmt.Errorf("coefficient row %d has %d features, vectorizer has %d", i, len(row), len(vec.IDF)))
		}
	}

	return &Local{vectorizer: &vec, model: &model}, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Name implements Classifier.
func (l *Local) Name() string {
	return "local"
}

// Ready implements Classifier.
func (l *Local) Ready() bool {
	return l != nil && l.vectorizer != nil && l.model != nil
}

// Predict implements Classifier and always returns a full distribution.
func (l *Local) Predict(_ context.Context, narrative string) (Prediction, error) {
	if !l.Ready() {
		return Prediction{}, errors.ModelUnavailable(nil)
	}

	features := l.transform(narrative)
	dist := l.predictProba(features)
	label, _ := ScoreConfidence(dist)

	return Prediction{Label: label, Distribution: dist}, nil
}

// transform converts a narrative into an L2-normalized TF-IDF vector,
// mirroring how the training pipeline vectorized its corpus: lower-cased
// alphanumeric tokens of at least two characters.
func (l *Local) transform(narrative string) []float64 {
	counts := make(map[int]float64)
	for _, token := range tokenize(narrative) {
		if idx, ok := l.vectorizer.Vocabulary[token]; ok {
			counts[idx]++
		}
	}

	vec := make([]float64, len(l.vectorizer.IDF))
	var norm float64
	for idx, tf := range counts {
		v := tf * l.vectorizer.IDF[idx]
		vec[idx] = v
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func (l *Local) predictProba(features []float64) Distribution {
	scores := make([]float64, len(l.model.Labels))
	maxScore := math.Inf(-1)
	for i, row := range l.model.Coefficients {
		s := l.model.Intercepts[i]
		for j, c := range row {
			if features[j] != 0 {
				s += c * features[j]
			}
		}
		scores[i] = s
		if s > maxScore {
			maxScore = s
		}
	}

	// Softmax, shifted by the max score for numerical stability.
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
		sum += scores[i]
	}

	dist := make(Distribution, len(scores))
	for i, label := range l.model.Labels {
		dist[label] = scores[i] / sum
	}
	return dist
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
