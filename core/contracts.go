package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// InboundMessage is one request as it arrives over the cross-context channel.
// Sender and Origin are captured once, at acceptance, and every later step
// (including the response dispatch) uses the captured values.
type InboundMessage struct {
	Origin   string
	Sender   Sender
	Envelope Envelope
}

// Sender is the reply handle for the context a request arrived from.
// Delivery is best-effort; a failed Send is logged and never retried.
type Sender interface {
	Send(ctx context.Context, response Response) error
}

type OriginValidator interface {
	Allow(origin string) bool
}

type RequestLedger interface {
	Register(id string, action Action, payload map[string]any) (RequestRecord, error)
	Complete(id string, status RequestStatus, result map[string]any, cause error) (RequestRecord, error)
	Record(id string) (RequestRecord, bool)
	Stats() TrackerStats
	Snapshot() TrackerSnapshot
}

type Backend interface {
	SubmitContact(ctx context.Context, payload map[string]any) (map[string]any, error)
	RunSimulation(ctx context.Context, payload map[string]any) (map[string]any, error)
	RunCoupledSimulation(ctx context.Context, payload map[string]any) (map[string]any, error)
	Health(ctx context.Context) (map[string]any, error)
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Body                 []byte
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Decoded    map[string]any
	Metadata   map[string]any
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
