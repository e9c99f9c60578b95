// Package bridge relays structured requests from untrusted caller contexts to
// the AURA-MF simulation backend: origin allow-listing, envelope validation,
// retrying transport, lifecycle tracking, and correlated response dispatch.
package bridge

import (
	"github.com/aura-mf/bridge/core"
	"github.com/aura-mf/bridge/router"
)

type Config = core.Config

type Option = router.Option

type Router = router.Router

type Envelope = core.Envelope

type Response = core.Response

type InboundMessage = core.InboundMessage

type Sender = core.Sender

var (
	WithLogger          = router.WithLogger
	WithLoggerProvider  = router.WithLoggerProvider
	WithMetricsRecorder = router.WithMetricsRecorder
	WithOriginValidator = router.WithOriginValidator
	WithLedger          = router.WithLedger
	WithBackend         = router.WithBackend
	WithHTTPDoer        = router.WithHTTPDoer
	WithRetryPolicy     = router.WithRetryPolicy
	WithConfigProvider  = router.WithConfigProvider
	WithOptionsResolver = router.WithOptionsResolver
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func New(cfg Config, opts ...Option) (*Router, error) {
	return router.New(cfg, opts...)
}

// Setup builds the router and wraps it in the command/query facade.
func Setup(cfg Config, opts ...Option) (*Facade, error) {
	r, err := router.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFacade(r)
}
