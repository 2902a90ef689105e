package triage

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lifeline-aid/platform/internal/classifier"
	"github.com/lifeline-aid/platform/internal/knowledge"
	"github.com/lifeline-aid/platform/internal/shared/errors"
)

// stubClassifier is a deterministic in-memory backend for pipeline tests.
type stubClassifier struct {
	prediction    classifier.Prediction
	err           error
	unready       bool
	calls         int
	lastNarrative string
}

func (s *stubClassifier) Predict(_ context.Context, narrative string) (classifier.Prediction, error) {
	s.calls++
	s.lastNarrative = narrative
	if s.err != nil {
		return classifier.Prediction{}, s.err
	}
	return s.prediction, nil
}

func (s *stubClassifier) Ready() bool { return !s.unready }

func (s *stubClassifier) Name() string { return "stub" }

type capturingRecorder struct {
	recorded []*Assessment
	err      error
}

func (c *capturingRecorder) Record(_ context.Context, a *Assessment) error {
	c.recorded = append(c.recorded, a)
	return c.err
}

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.json")
	contents := `{
	  "condition_info": {
	    "Fracture": {"description": "A break in the bone.", "precautions": ["Immobilize"]}
	  },
	  "supply_chain": {
	    "Fracture": {"priority": "HIGH", "triage_color": "YELLOW", "immediate_supplies": ["Splint"], "equipment": ["X-ray machine"], "notes": "Immobilize before transport."}
	  }
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write knowledge file: %v", err)
	}
	store, err := knowledge.Load(path)
	if err != nil {
		t.Fatalf("load knowledge: %v", err)
	}
	return store
}

func TestAssessEmptyInput(t *testing.T) {
	svc := NewService(&stubClassifier{}, knowledge.Empty(), 0, nil, nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.Assess(context.Background(), input)
		if err == nil {
			t.Fatalf("Expected error for input %q", input)
		}
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("Expected EmptyInput error, got: %v", err)
		}
	}
}

func TestAssessModelUnavailable(t *testing.T) {
	svc := NewService(&stubClassifier{unready: true}, knowledge.Empty(), 0, nil, nil)

	_, err := svc.Assess(context.Background(), "fever and chills")
	if err == nil {
		t.Fatal("Expected error for unready backend")
	}
	if !stderrors.Is(err, errors.ErrModelUnavailable) {
		t.Errorf("Expected ModelUnavailable error, got: %v", err)
	}
}

func TestAssessFullPipeline(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{
			Label:        "Fracture",
			Distribution: classifier.Distribution{"Fracture": 0.9, "Sprain": 0.1},
		},
	}
	svc := NewService(stub, testStore(t), 0, nil, nil)

	a, err := svc.Assess(context.Background(), "fell from ladder, leg pain, swelling")
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if a.ID == "" {
		t.Error("Expected a generated assessment ID")
	}
	if a.Condition != "Fracture" {
		t.Errorf("Expected Fracture, got %s", a.Condition)
	}
	if a.Tier != classifier.TierHigh {
		t.Errorf("Expected HIGH tier, got %s", a.Tier)
	}
	if a.ConditionType != "injury" {
		t.Errorf("Expected injury condition type, got %s", a.ConditionType)
	}
	if a.Priority != knowledge.PriorityHigh || a.TriageColor != knowledge.ColorYellow {
		t.Errorf("Unexpected triage values: %s/%s", a.Priority, a.TriageColor)
	}
	if a.Description != "A break in the bone." {
		t.Errorf("Unexpected description: %s", a.Description)
	}
	if a.Backend != "stub" {
		t.Errorf("Unexpected backend name: %s", a.Backend)
	}
	if !strings.HasPrefix(a.Narrative, "a person fell.") {
		t.Errorf("Expected synthesized injury narrative, got: %s", a.Narrative)
	}
	if !strings.HasPrefix(stub.lastNarrative, "a person fell.") {
		t.Errorf("Backend must receive the synthesized narrative, got: %s", stub.lastNarrative)
	}
}

func TestAssessUnknownLabelFallsBack(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{
			Label:        "Rare Syndrome",
			Distribution: classifier.Distribution{"Rare Syndrome": 1.0},
		},
	}
	svc := NewService(stub, testStore(t), 0, nil, nil)

	a, err := svc.Assess(context.Background(), "fever")
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if a.Priority != knowledge.PriorityMedium || a.TriageColor != knowledge.ColorYellow {
		t.Errorf("Expected default supply record, got %s/%s", a.Priority, a.TriageColor)
	}
	if a.Description != knowledge.DefaultCondition().Description {
		t.Errorf("Expected default description, got %s", a.Description)
	}
}

func TestAssessBareLabelBackendSkipsTier(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{Label: "Fracture"},
	}
	svc := NewService(stub, testStore(t), 0, nil, nil)

	a, err := svc.Assess(context.Background(), "fell off a roof")
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if a.Condition != "Fracture" {
		t.Errorf("Expected backend label, got %s", a.Condition)
	}
	if a.Tier != classifier.TierUnknown {
		t.Errorf("Expected tier to be inapplicable for bare-label backend, got %q", a.Tier)
	}
}

func TestAssessCachesIdenticalNarratives(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{
			Label:        "Flu",
			Distribution: classifier.Distribution{"Flu": 1.0},
		},
	}
	svc := NewService(stub, knowledge.Empty(), 8, nil, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.Assess(context.Background(), "fever, chills"); err != nil {
			t.Fatalf("Assess failed: %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 backend call for identical input, got %d", stub.calls)
	}

	if _, err := svc.Assess(context.Background(), "rash and itching"); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("Expected a second backend call for new input, got %d", stub.calls)
	}
}

func TestAssessRecorderFailureDoesNotFailRequest(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{
			Label:        "Flu",
			Distribution: classifier.Distribution{"Flu": 1.0},
		},
	}
	recorder := &capturingRecorder{err: stderrors.New("database down")}
	svc := NewService(stub, knowledge.Empty(), 0, recorder, nil)

	a, err := svc.Assess(context.Background(), "fever")
	if err != nil {
		t.Fatalf("Expected recording failure to be swallowed, got: %v", err)
	}
	if len(recorder.recorded) != 1 || recorder.recorded[0].ID != a.ID {
		t.Error("Expected the assessment to reach the recorder")
	}
}

func TestAssessPropagatesBackendError(t *testing.T) {
	stub := &stubClassifier{err: errors.RemoteCall("endpoint unreachable", nil)}
	svc := NewService(stub, knowledge.Empty(), 0, nil, nil)

	_, err := svc.Assess(context.Background(), "fever")
	if err == nil {
		t.Fatal("Expected backend error to propagate")
	}
	if !stderrors.Is(err, errors.ErrRemoteCall) {
		t.Errorf("Expected RemoteCall error, got: %v", err)
	}
}
