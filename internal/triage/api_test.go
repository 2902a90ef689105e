package triage

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lifeline-aid/platform/internal/classifier"
	"github.com/lifeline-aid/platform/internal/knowledge"
)

func newTestHandler(t *testing.T, stub *stubClassifier) *Handler {
	t.Helper()
	return NewHandler(NewService(stub, testStore(t), 0, nil, nil))
}

func postAssess(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/assess", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestAssessEndpoint(t *testing.T) {
	stub := &stubClassifier{
		prediction: classifier.Prediction{
			Label:        "Fracture",
			Distribution: classifier.Distribution{"Fracture": 0.9, "Sprain": 0.1},
		},
	}
	h := newTestHandler(t, stub)

	rec := postAssess(t, h, `{"symptoms": "fell from ladder, leg pain, swelling"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var a Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Condition != "Fracture" {
		t.Errorf("Expected Fracture, got %s", a.Condition)
	}
	if a.Tier != classifier.TierHigh {
		t.Errorf("Expected HIGH tier, got %s", a.Tier)
	}
	if a.Priority != knowledge.PriorityHigh {
		t.Errorf("Expected HIGH priority, got %s", a.Priority)
	}
}

func TestAssessEndpointEmptySymptoms(t *testing.T) {
	h := newTestHandler(t, &stubClassifier{})

	rec := postAssess(t, h, `{"symptoms": "   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank symptoms, got %d", rec.Code)
	}
}

func TestAssessEndpointInvalidBody(t *testing.T) {
	h := newTestHandler(t, &stubClassifier{})

	rec := postAssess(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid body, got %d", rec.Code)
	}
}

func TestAssessEndpointModelUnavailable(t *testing.T) {
	h := newTestHandler(t, &stubClassifier{unready: true})

	rec := postAssess(t, h, `{"symptoms": "fever"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for unready backend, got %d", rec.Code)
	}
}

func TestConditionsEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/conditions", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Conditions []string `json:"conditions"`
		Count      int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Conditions) != 1 || resp.Conditions[0] != "Fracture" {
		t.Errorf("Unexpected conditions payload: %+v", resp)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from healthy backend, got %d", rec.Code)
	}

	h = newTestHandler(t, &stubClassifier{unready: true})
	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 from unready backend, got %d", rec.Code)
	}
}
