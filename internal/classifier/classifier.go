package classifier

import "context"

// Distribution maps condition labels to probabilities in [0,1] summing to 1.
type Distribution map[string]float64

// Prediction is the output of a classifier backend. Distribution is nil for
// backends that can only produce a bare label; Label is always set.
type Prediction struct {
	Label        string
	Distribution Distribution
}

// Classifier is the external probability-producing collaborator behind the
// triage pipeline. The in-process model and the remote serving endpoint are
// alternative implementations selected by configuration.
type Classifier interface {
	// Predict classifies a synthesized narrative. Backends that expose the
	// full probability distribution set Prediction.Distribution; the remote
	// serving endpoint returns a bare label and leaves it nil, which makes
	// confidence tiering inapplicable for that backend.
	Predict(ctx context.Context, narrative string) (Prediction, error)

	// Ready reports whether the backend can serve predictions. Checked once
	// at startup and again before every request.
	Ready() bool

	// Name identifies the backend in results, logs and metrics.
	Name() string
}
