package router

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	bridgelog "github.com/aura-mf/bridge/adapters/gologger"
	"github.com/aura-mf/bridge/core"
)

// Router is the message bridge: it validates sender origin and envelope
// shape, registers accepted requests with the ledger, routes the closed
// action set to backend handlers, and dispatches exactly one correlated
// response to the sender captured at registration time.
type Router struct {
	config      core.Config
	origins     core.OriginValidator
	ledger      core.RequestLedger
	backend     core.Backend
	dispatcher  *Dispatcher
	logger      core.Logger
	metrics     core.MetricsRecorder
	errorMapper func(error) *goerrors.Error
}

func New(cfg core.Config, opts ...Option) (*Router, error) {
	builder := defaultRouterBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	logger := bridgelog.Named("bridge", builder.loggerProvider, builder.logger)

	resolved, err := resolveConfig(cfg, builder)
	if err != nil {
		return nil, err
	}

	components := builder.buildComponents(resolved)

	return &Router{
		config:      resolved,
		origins:     components.origins,
		ledger:      components.ledger,
		backend:     components.backend,
		dispatcher:  &Dispatcher{Logger: logger},
		logger:      logger,
		metrics:     components.metrics,
		errorMapper: builder.errorMapper,
	}, nil
}

func (r *Router) Config() core.Config {
	if r == nil {
		return core.Config{}
	}
	return r.config
}

// Process runs one inbound message through the full bridge flow. Origin and
// envelope failures are silent drops: the returned error describes the drop
// for the local caller, and nothing is sent back to the sender. Every other
// failure becomes a correlated error response; Process never lets a fault
// cross the context boundary.
func (r *Router) Process(ctx context.Context, msg core.InboundMessage) (core.Response, error) {
	if r == nil {
		return core.Response{}, routerInternal("router: bridge is nil")
	}
	envelope := msg.Envelope

	if r.origins == nil || !r.origins.Allow(msg.Origin) {
		r.logWarn(ctx, "message dropped: origin not allowed", map[string]any{
			"origin": msg.Origin,
		})
		return core.Response{}, routerAccessDenied(msg.Origin)
	}

	if strings.TrimSpace(envelope.Action) == "" || strings.TrimSpace(envelope.ID) == "" {
		r.logWarn(ctx, "message dropped: malformed envelope", map[string]any{
			"origin":     msg.Origin,
			"has_action": strings.TrimSpace(envelope.Action) != "",
			"has_id":     strings.TrimSpace(envelope.ID) != "",
		})
		return core.Response{}, routerMalformedEnvelope()
	}

	// The sender and origin in msg are the registration-time capture; nothing
	// after this point re-reads them from anywhere else.
	action, known := core.ParseAction(envelope.Action)
	trackedAction := action
	if !known {
		trackedAction = core.Action(strings.TrimSpace(envelope.Action))
	}
	record, err := r.ledger.Register(envelope.ID, trackedAction, envelope.Payload)
	if err != nil {
		r.logError(ctx, "request registration failed", map[string]any{
			"origin":     msg.Origin,
			"request_id": envelope.ID,
			"action":     envelope.Action,
			"error":      err.Error(),
		})
		return core.Response{}, err
	}

	var result map[string]any
	var handleErr error
	if !known {
		handleErr = routerUnknownAction(envelope.Action)
	} else {
		result, handleErr = r.handle(ctx, action, envelope.Payload)
	}

	// The response keeps the registered id even if completion fails; the
	// correlation invariant never depends on the ledger's bookkeeping.
	requestID := record.ID
	status := core.RequestStatusSuccess
	if handleErr != nil {
		status = core.RequestStatusError
		result = nil
	}
	settled, completeErr := r.ledger.Complete(requestID, status, result, handleErr)
	if completeErr != nil {
		r.logError(ctx, "request completion failed", map[string]any{
			"request_id": requestID,
			"error":      completeErr.Error(),
		})
	} else {
		record = settled
	}

	var response core.Response
	if handleErr != nil {
		response = core.ErrorResponse(requestID, r.responseMessage(handleErr))
	} else {
		response = core.SuccessResponse(requestID, result)
	}

	r.observeRequest(ctx, record, handleErr)
	r.dispatcher.Dispatch(ctx, msg.Sender, response)
	return response, nil
}

// handle is the exhaustive dispatch over the closed action set; the default
// arm is unreachable once ParseAction has accepted the value.
func (r *Router) handle(ctx context.Context, action core.Action, payload map[string]any) (map[string]any, error) {
	if r.backend == nil {
		return nil, routerInternal("router: backend client is required")
	}
	switch action {
	case core.ActionSubmitContact:
		return r.backend.SubmitContact(ctx, payload)
	case core.ActionRunSimulation:
		return r.backend.RunSimulation(ctx, payload)
	case core.ActionRunCoupledSimulation:
		return r.backend.RunCoupledSimulation(ctx, payload)
	case core.ActionHealthCheck:
		return r.backend.Health(ctx)
	default:
		return nil, routerInternal(fmt.Sprintf("router: no handler for action %q", action))
	}
}

// ReplaceOrigins swaps the allow-list wholesale; this is the only runtime
// mutation the origin set supports.
func (r *Router) ReplaceOrigins(ctx context.Context, origins []string) error {
	if r == nil {
		return routerInternal("router: bridge is nil")
	}
	replaceable, ok := r.origins.(interface{ Replace(origins []string) })
	if !ok {
		return routerInternal("router: origin validator does not support replacement")
	}
	replaceable.Replace(origins)
	r.logInfo(ctx, "origin allow-list replaced", map[string]any{
		"origin_count": len(origins),
	})
	return nil
}

func (r *Router) Stats(ctx context.Context) (core.TrackerStats, error) {
	if r == nil || r.ledger == nil {
		return core.TrackerStats{}, routerInternal("router: ledger is required")
	}
	return r.ledger.Stats(), nil
}

func (r *Router) RequestRecord(ctx context.Context, id string) (core.RequestRecord, error) {
	if r == nil || r.ledger == nil {
		return core.RequestRecord{}, routerInternal("router: ledger is required")
	}
	record, ok := r.ledger.Record(id)
	if !ok {
		return core.RequestRecord{}, goerrors.New(
			fmt.Sprintf("router: no request record for id %q", id),
			goerrors.CategoryNotFound,
		).WithTextCode(core.BridgeErrorInternal)
	}
	return record, nil
}

func (r *Router) Snapshot(ctx context.Context) (core.TrackerSnapshot, error) {
	if r == nil || r.ledger == nil {
		return core.TrackerSnapshot{}, routerInternal("router: ledger is required")
	}
	return r.ledger.Snapshot(), nil
}

// responseMessage runs the failure through the configured error mapper so the
// relayed message carries the same envelope the rest of the bridge reports.
func (r *Router) responseMessage(err error) string {
	if err == nil {
		return ""
	}
	mapper := core.BridgeErrorMapper
	if r != nil && r.errorMapper != nil {
		mapper = r.errorMapper
	}
	mapped := mapper(err)
	if mapped != nil && strings.TrimSpace(mapped.Message) != "" {
		return mapped.Message
	}
	return err.Error()
}
