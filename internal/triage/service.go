package triage

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lifeline-aid/platform/internal/classifier"
	"github.com/lifeline-aid/platform/internal/knowledge"
	"github.com/lifeline-aid/platform/internal/narrative"
	"github.com/lifeline-aid/platform/internal/shared/errors"
	"github.com/lifeline-aid/platform/internal/shared/metrics"
)

// Recorder persists completed assessments. Implementations must tolerate
// being skipped; recording is best-effort and never fails a request.
type Recorder interface {
	Record(ctx context.Context, a *Assessment) error
}

// Service runs the full triage pipeline: condition-type classification,
// narrative synthesis, backend prediction, confidence scoring and
// knowledge-base resolution. All collaborators are read-only after
// construction, so one Service serves unlimited concurrent requests.
type Service struct {
	backend  classifier.Classifier
	store    *knowledge.Store
	cache    *lru.Cache[string, classifier.Prediction]
	recorder Recorder
	logger   *log.Logger
}

// NewService builds the pipeline. cacheSize <= 0 disables prediction
// caching; recorder and logger may be nil.
func NewService(backend classifier.Classifier, store *knowledge.Store, cacheSize int, recorder Recorder, logger *log.Logger) *Service {
	s := &Service{
		backend:  backend,
		store:    store,
		recorder: recorder,
		logger:   logger,
	}
	if cacheSize > 0 {
		// Only errors on non-positive size, which is guarded above.
		s.cache, _ = lru.New[string, classifier.Prediction](cacheSize)
	}
	return s
}

// Backend exposes the active classifier for health reporting.
func (s *Service) Backend() classifier.Classifier {
	return s.backend
}

// Store exposes the knowledge base for the conditions listing.
func (s *Service) Store() *knowledge.Store {
	return s.store
}

// Assess runs one pipeline invocation over raw symptom text.
//
// Blank input and an unavailable backend are the only failure modes before
// the external call: detection, synthesis and scoring are total over any
// string. The input style is computed as a diagnostic value and attached to
// the result without influencing synthesis.
func (s *Service) Assess(ctx context.Context, rawText string) (*Assessment, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.EmptyInput()
	}
	if s.backend == nil || !s.backend.Ready() {
		return nil, errors.ModelUnavailable(nil)
	}

	start := time.Now()

	style := narrative.DetectStyle(rawText)
	conditionType := narrative.ClassifyType(rawText)
	synthesized := narrative.Synthesize(rawText, conditionType)

	prediction, err := s.predict(ctx, synthesized)
	if err != nil {
		return nil, err
	}

	label := prediction.Label
	tier := classifier.TierUnknown
	if prediction.Distribution != nil {
		label, tier = classifier.ScoreConfidence(prediction.Distribution)
	}

	condition, supply := s.store.Resolve(label)

	a := &Assessment{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		Condition:         label,
		ConditionType:     conditionType,
		InputStyle:        style,
		Narrative:         synthesized,
		Tier:              tier,
		Priority:          supply.Priority,
		TriageColor:       supply.TriageColor,
		Description:       condition.Description,
		Precautions:       condition.Precautions,
		ImmediateSupplies: supply.ImmediateSupplies,
		Equipment:         supply.Equipment,
		Notes:             supply.Notes,
		Backend:           s.backend.Name(),
		ElapsedMs:         time.Since(start).Milliseconds(),
	}

	metrics.RecordAssessment(string(conditionType), metricTier(tier), string(supply.Priority))

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, a); err != nil {
			s.logf("failed to record assessment %s: %v", a.ID, err)
		}
	}

	return a, nil
}

// predict serves the backend call, short-circuiting through the narrative
// cache when an identical narrative was classified before. Valid because
// both backends are deterministic functions of the narrative.
func (s *Service) predict(ctx context.Context, synthesized string) (classifier.Prediction, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(synthesized); ok {
			metrics.RecordPredictionCacheHit()
			return cached, nil
		}
	}

	start := time.Now()
	prediction, err := s.backend.Predict(ctx, synthesized)
	if err != nil {
		return classifier.Prediction{}, err
	}
	metrics.RecordPrediction(s.backend.Name(), time.Since(start))

	if s.cache != nil {
		s.cache.Add(synthesized, prediction)
	}
	return prediction, nil
}

func metricTier(tier classifier.ConfidenceTier) string {
	if tier == classifier.TierUnknown {
		return "NA"
	}
	return string(tier)
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
