// Package suggest implements the reorder-quantity suggestion flow: a single
// opaque call to a generative text-completion collaborator, constrained on
// both sides by a schema. Nothing non-conforming ever reaches the caller.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/pos_frontend/config"
	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

// ErrSuggestionUnavailable is the only failure the flow surfaces for a call
// that went wrong: transport error, non-2xx status, or a payload that does
// not conform to the output schema. The raw cause is logged, never shown.
var ErrSuggestionUnavailable = errors.New("suggestion unavailable")

type Suggester struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewSuggester() *Suggester {
	return &Suggester{
		endpoint:   config.SuggestionEndpoint(),
		apiKey:     config.SuggestionAPIKey(),
		model:      config.SuggestionModel(),
		httpClient: &http.Client{Timeout: config.SuggestionTimeout()},
		logger:     config.GetLogger(),
	}
}

func NewSuggesterWith(endpoint string, httpClient *http.Client, logger *logrus.Logger) *Suggester {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.SuggestionTimeout()}
	}
	if logger == nil {
		logger = config.GetLogger()
	}
	return &Suggester{endpoint: endpoint, model: config.SuggestionModel(), httpClient: httpClient, logger: logger}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Suggest validates the input schema, calls the completion endpoint and
// returns a schema-conforming result. Invalid input is the caller's error
// and is reported as such; everything that goes wrong on the wire or in the
// model's output collapses to ErrSuggestionUnavailable.
func (s *Suggester) Suggest(ctx context.Context, input models.SuggestionInput) (*models.SuggestionResult, error) {
	if err := models.Validate(&input); err != nil {
		return nil, fmt.Errorf("invalid suggestion input: %w", err)
	}
	if s.endpoint == "" {
		return nil, ErrSuggestionUnavailable
	}

	raw, err := json.Marshal(completionRequest{Model: s.model, Prompt: buildPrompt(input)})
	if err != nil {
		return nil, s.unavailable("Suggest", "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, s.unavailable("Suggest", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, s.unavailable("Suggest", "call completion endpoint", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.unavailable("Suggest", "read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.unavailable("Suggest", "completion endpoint status", fmt.Errorf("status %d", resp.StatusCode))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, s.unavailable("Suggest", "decode completion envelope", err)
	}

	result, err := parseResult(completion.Text)
	if err != nil {
		return nil, s.unavailable("Suggest", "parse model output", err)
	}
	return result, nil
}

// parseResult extracts the JSON object from the model's text output and
// validates it against the output schema. Partial or garbled output fails.
func parseResult(text string) (*models.SuggestionResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in output")
	}

	var result models.SuggestionResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, err
	}
	if err := models.Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Suggester) unavailable(funcName string, context string, err error) error {
	config.LogError(s.logger, "suggest", funcName, context, nil, err)
	return ErrSuggestionUnavailable
}
