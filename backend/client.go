// Package backend is the typed client for the simulation backend consumed by
// the bridge. It owns endpoint routing and payload validation; retries and
// success classification live in the transport package.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
	"github.com/aura-mf/bridge/transport"
)

type Transport interface {
	Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error)
}

type Client struct {
	Transport Transport
	Retrier   *transport.Retrier
	Config    core.Config
}

func NewClient(cfg core.Config, tr Transport, retrier *transport.Retrier) *Client {
	if tr == nil {
		tr = transport.NewClient(nil)
	}
	if retrier == nil {
		retrier = transport.NewRetrier(
			transport.LinearBackoffPolicy{Base: cfg.BackoffBase()},
			cfg.MaxAttempts,
		)
	}
	return &Client{
		Transport: tr,
		Retrier:   retrier,
		Config:    cfg,
	}
}

func (c *Client) SubmitContact(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if err := ValidateContact(payload); err != nil {
		return nil, err
	}
	return c.call(ctx, core.ActionSubmitContact, payload)
}

func (c *Client) RunSimulation(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.call(ctx, core.ActionRunSimulation, payload)
}

func (c *Client) RunCoupledSimulation(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.call(ctx, core.ActionRunCoupledSimulation, payload)
}

func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return c.call(ctx, core.ActionHealthCheck, nil)
}

func (c *Client) call(ctx context.Context, action core.Action, payload map[string]any) (map[string]any, error) {
	if c == nil || c.Transport == nil {
		return nil, backendInternal("backend: client requires a transport")
	}
	route, ok := action.Route()
	if !ok {
		return nil, backendInternal("backend: no route for action " + action.String())
	}

	var body []byte
	if route.HasPayload && payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "backend: encode request payload").
				WithCode(http.StatusBadRequest).
				WithTextCode(core.BridgeErrorBadInput)
		}
		body = encoded
	}

	request := core.TransportRequest{
		Method:  route.Method,
		URL:     strings.TrimRight(strings.TrimSpace(c.Config.BackendBaseURL), "/") + route.Path,
		Body:    body,
		Timeout: c.Config.TimeoutFor(route.TimeoutClass),
	}

	retrier := c.Retrier
	if retrier == nil {
		retrier = transport.NewRetrier(nil, 0)
	}
	response, err := retrier.Run(ctx, func(attemptCtx context.Context, attempt int) (core.TransportResponse, error) {
		return c.Transport.Do(attemptCtx, request)
	})
	if err != nil {
		return nil, err
	}
	return response.Decoded, nil
}

func backendInternal(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.BridgeErrorInternal)
}

var _ core.Backend = (*Client)(nil)
