package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/aura-mf/bridge/core"
)

type MutatingService interface {
	Process(ctx context.Context, msg core.InboundMessage) (core.Response, error)
	ReplaceOrigins(ctx context.Context, origins []string) error
}

type SubmitEnvelopeCommand struct {
	service MutatingService
}

func NewSubmitEnvelopeCommand(service MutatingService) *SubmitEnvelopeCommand {
	return &SubmitEnvelopeCommand{service: service}
}

func (c *SubmitEnvelopeCommand) Execute(ctx context.Context, msg SubmitEnvelopeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: bridge service is required")
	}
	out, err := c.service.Process(ctx, msg.Message)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ReplaceOriginsCommand struct {
	service MutatingService
}

func NewReplaceOriginsCommand(service MutatingService) *ReplaceOriginsCommand {
	return &ReplaceOriginsCommand{service: service}
}

func (c *ReplaceOriginsCommand) Execute(ctx context.Context, msg ReplaceOriginsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: bridge service is required")
	}
	return c.service.ReplaceOrigins(ctx, msg.Origins)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
