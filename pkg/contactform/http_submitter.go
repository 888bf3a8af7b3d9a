package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HealthStatus mirrors the relay server's liveness payload
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HTTPSubmitter posts submissions to a relay server's /api/contact endpoint
type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSubmitter targets baseURL (e.g. http://localhost:3001). A nil client uses http.DefaultClient.
func NewHTTPSubmitter(baseURL string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Submit sends one request. Any non-2xx answer is a rejected Result, with the
// server's message when the body carries one. Failing to reach the server, or
// an undecodable 2xx answer, is reported as an error.
func (s *HTTPSubmitter) Submit(ctx context.Context, form Form) (Result, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/contact", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var res Result
	err = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&res)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// e.g. a proxy's HTML error page: the server answered, so it is a rejection
		if err != nil {
			return Result{}, nil
		}
		res.Success = false
		return res, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return res, nil
}

// Health calls /api/health
func (s *HTTPSubmitter) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/health", nil)
	if err != nil {
		return HealthStatus{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return HealthStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}
	return hs, nil
}
