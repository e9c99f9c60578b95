package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aura-mf/bridge/core"
	"github.com/aura-mf/bridge/transport"
)

type stubTransport struct {
	requests  []core.TransportRequest
	responses []core.TransportResponse
	errs      []error
}

func (s *stubTransport) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	index := len(s.requests)
	s.requests = append(s.requests, req)
	if index < len(s.errs) && s.errs[index] != nil {
		return core.TransportResponse{}, s.errs[index]
	}
	if index < len(s.responses) {
		return s.responses[index], nil
	}
	return core.TransportResponse{StatusCode: 200, Decoded: map[string]any{}}, nil
}

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.BackendBaseURL = "http://backend.local/"
	cfg.TimeoutMS = 5_000
	cfg.CoupledTimeoutMS = 90_000
	return cfg
}

func fastRetrier(maxAttempts int) *transport.Retrier {
	retrier := transport.NewRetrier(transport.LinearBackoffPolicy{Base: time.Millisecond}, maxAttempts)
	retrier.Sleep = func(context.Context, time.Duration) error { return nil }
	return retrier
}

func TestClient_HealthUsesGetWithoutBody(t *testing.T) {
	tr := &stubTransport{responses: []core.TransportResponse{
		{StatusCode: 200, Decoded: map[string]any{"status": "ok"}},
	}}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	result, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if result["status"] != "ok" {
		t.Fatalf("expected decoded health body, got %v", result)
	}
	if len(tr.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(tr.requests))
	}

	request := tr.requests[0]
	if request.Method != "GET" {
		t.Fatalf("expected GET, got %q", request.Method)
	}
	if request.URL != "http://backend.local/api/health" {
		t.Fatalf("expected health endpoint with trimmed base, got %q", request.URL)
	}
	if request.Body != nil {
		t.Fatalf("expected no body on health check, got %q", request.Body)
	}
	if request.Timeout != 5*time.Second {
		t.Fatalf("expected standard timeout, got %s", request.Timeout)
	}
}

func TestClient_RunSimulationPostsPayloadWithStandardTimeout(t *testing.T) {
	tr := &stubTransport{responses: []core.TransportResponse{
		{StatusCode: 200, Decoded: map[string]any{"temperature_map": []any{}}},
	}}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	if _, err := client.RunSimulation(context.Background(), map[string]any{"mesh": 64}); err != nil {
		t.Fatalf("run simulation: %v", err)
	}

	request := tr.requests[0]
	if request.Method != "POST" || request.URL != "http://backend.local/api/simulate" {
		t.Fatalf("expected POST /api/simulate, got %s %s", request.Method, request.URL)
	}
	if string(request.Body) != `{"mesh":64}` {
		t.Fatalf("expected encoded payload, got %q", request.Body)
	}
	if request.Timeout != 5*time.Second {
		t.Fatalf("expected standard timeout, got %s", request.Timeout)
	}
}

func TestClient_CoupledSimulationGetsExtendedTimeout(t *testing.T) {
	tr := &stubTransport{responses: []core.TransportResponse{
		{StatusCode: 200, Decoded: map[string]any{}},
	}}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	if _, err := client.RunCoupledSimulation(context.Background(), map[string]any{"coupling": "bte-ns"}); err != nil {
		t.Fatalf("run coupled simulation: %v", err)
	}

	request := tr.requests[0]
	if request.URL != "http://backend.local/api/simulate/bte-ns" {
		t.Fatalf("expected coupled endpoint, got %q", request.URL)
	}
	if request.Timeout != 90*time.Second {
		t.Fatalf("expected extended timeout, got %s", request.Timeout)
	}
}

func TestClient_SubmitContactValidatesBeforeTransport(t *testing.T) {
	tr := &stubTransport{}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	_, err := client.SubmitContact(context.Background(), map[string]any{"name": "A"})
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if len(tr.requests) != 0 {
		t.Fatalf("expected no transport attempts for invalid contact, got %d", len(tr.requests))
	}
}

func TestClient_SubmitContactSendsValidPayload(t *testing.T) {
	tr := &stubTransport{responses: []core.TransportResponse{
		{StatusCode: 200, Decoded: map[string]any{"received": true}},
	}}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	result, err := client.SubmitContact(context.Background(), map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.org",
		"message": "Please run the coupled solver on my geometry.",
	})
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if result["received"] != true {
		t.Fatalf("expected backend acknowledgement, got %v", result)
	}
	if tr.requests[0].URL != "http://backend.local/api/contact" {
		t.Fatalf("expected contact endpoint, got %q", tr.requests[0].URL)
	}
}

func TestClient_RetriesTransientTransportFailures(t *testing.T) {
	tr := &stubTransport{
		errs: []error{errors.New("connection refused"), errors.New("connection refused")},
		responses: []core.TransportResponse{
			{}, {},
			{StatusCode: 200, Decoded: map[string]any{"status": "ok"}},
		},
	}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	result, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("expected recovery on third attempt, got %v", err)
	}
	if len(tr.requests) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(tr.requests))
	}
	if result["status"] != "ok" {
		t.Fatalf("expected final attempt result, got %v", result)
	}
}

func TestClient_ExhaustedRetriesSurfaceLastError(t *testing.T) {
	tr := &stubTransport{errs: []error{
		errors.New("HTTP 502: bad gateway"),
		errors.New("HTTP 503: unavailable"),
		errors.New("HTTP 500: solver crashed"),
	}}
	client := NewClient(testConfig(), tr, fastRetrier(3))

	_, err := client.RunSimulation(context.Background(), map[string]any{"mesh": 8})
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if !transport.IsExhausted(err) {
		t.Fatalf("expected retries-exhausted error, got %v", err)
	}
	if len(tr.requests) != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", len(tr.requests))
	}
}
