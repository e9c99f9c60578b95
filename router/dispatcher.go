package router

import (
	"context"

	"github.com/aura-mf/bridge/core"
)

// Dispatcher sends terminal responses back over the channel a request arrived
// on. Delivery is best-effort and fire-and-forget: when the originating
// context is gone the response is lost, logged locally, and never retried.
type Dispatcher struct {
	Logger core.Logger
}

func (d *Dispatcher) Dispatch(ctx context.Context, sender core.Sender, response core.Response) {
	if d == nil {
		return
	}
	if sender == nil {
		d.log(ctx, "response dropped: sender is gone", response)
		return
	}
	if err := sender.Send(ctx, response); err != nil {
		d.log(ctx, "response delivery failed: "+err.Error(), response)
	}
}

func (d *Dispatcher) log(ctx context.Context, message string, response core.Response) {
	if d.Logger == nil {
		return
	}
	logger := d.Logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	logger.Warn(message, "request_id", response.ID, "status", string(response.Status))
}
