package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// HTTPScorer scores reviews against an external model endpoint.
type HTTPScorer struct {
	client   *http.Client
	endpoint *url.URL
	apiKey   string
	log      *logger.Logger
}

// NewHTTPScorer constructs a scorer for the given endpoint.
func NewHTTPScorer(client *http.Client, endpoint, apiKey string, log *logger.Logger) (*HTTPScorer, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("scorer endpoint required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse scorer endpoint: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewDefault("insight-http-scorer")
	}
	return &HTTPScorer{
		client:   client,
		endpoint: parsed,
		apiKey:   strings.TrimSpace(apiKey),
		log:      log,
	}, nil
}

// Score posts the texts to the model endpoint and returns one score per text.
func (s *HTTPScorer) Score(ctx context.Context, texts []string) ([]float64, error) {
	body, err := json.Marshal(struct {
		Texts []string `json:"texts"`
	}{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("encode scorer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scorer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("scorer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorer status %d", resp.StatusCode)
	}

	var payload struct {
		Scores []float64 `json:"scores"`
		Error  string    `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode scorer response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("scorer error: %s", payload.Error)
	}
	if len(payload.Scores) != len(texts) {
		return nil, fmt.Errorf("scorer returned %d scores for %d texts", len(payload.Scores), len(texts))
	}
	return payload.Scores, nil
}
