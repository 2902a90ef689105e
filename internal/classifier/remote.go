package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lifeline-aid/platform/internal/shared/config"
	"github.com/lifeline-aid/platform/internal/shared/errors"
	"github.com/lifeline-aid/platform/internal/shared/metrics"
)

// Remote calls a deployed model-serving endpoint instead of running the
// model in-process. The endpoint returns a bare label, not a probability
// distribution, so confidence tiering does not apply to this backend.
type Remote struct {
	host       string
	token      string
	endpoint   string
	httpClient *http.Client
}

type remoteRequest struct {
	Inputs []string `json:"inputs"`
}

type remoteResponse struct {
	Predictions []string `json:"predictions"`
}

// NewRemote builds the remote backend. All three serving parameters must be
// present; a partially configured remote path fails here, at startup, so a
// malformed request is never sent.
func NewRemote(cfg config.RemoteConfig) (*Remote, error) {
	if !cfg.Configured() {
		return nil, errors.Validation("remote serving endpoint is not fully configured", map[string]string{
			"host":     presence(cfg.Host),
			"token":    presence(cfg.Token),
			"endpoint": presence(cfg.Endpoint),
		})
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Remote{
		host:     cfg.Host,
		token:    cfg.Token,
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}

// Name implements Classifier.
func (r *Remote) Name() string {
	return "remote"
}

// Ready implements Classifier. Construction already validated the
// configuration, so a built client is always ready.
func (r *Remote) Ready() bool {
	return r != nil && r.httpClient != nil
}

// Predict implements Classifier. Failures surface immediately with their
// cause; there is no retry.
func (r *Remote) Predict(ctx context.Context, narrative string) (Prediction, error) {
	body, err := json.Marshal(remoteRequest{Inputs: []string{narrative}})
	if err != nil {
		return Prediction{}, errors.RemoteCall("failed to encode serving request", err)
	}

	base := r.host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	url := fmt.Sprintf("%s/v1/endpoints/%s/predict", base, r.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, errors.RemoteCall("failed to build serving request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		metrics.RecordRemoteCallFailure("transport")
		return Prediction{}, errors.RemoteCall("serving endpoint unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordRemoteCallFailure(fmt.Sprintf("status_%d", resp.StatusCode))
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Prediction{}, errors.RemoteCall(
			fmt.Sprintf("serving endpoint returned status %d: %s", resp.StatusCode, string(payload)), nil)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.RecordRemoteCallFailure("decode")
		return Prediction{}, errors.RemoteCall("failed to decode serving response", err)
	}
	if len(parsed.Predictions) == 0 {
		metrics.RecordRemoteCallFailure("empty")
		return Prediction{}, errors.RemoteCall("serving endpoint returned no predictions", nil)
	}

	// Bare label only: Distribution stays nil.
	return Prediction{Label: parsed.Predictions[0]}, nil
}
