package core

import (
	"encoding/json"
	"strings"
	"time"
)

type Action string

const (
	ActionSubmitContact        Action = "submit-contact"
	ActionRunSimulation        Action = "run-simulation"
	ActionRunCoupledSimulation Action = "run-coupled-simulation"
	ActionHealthCheck          Action = "health-check"
)

func ParseAction(value string) (Action, bool) {
	switch Action(strings.TrimSpace(value)) {
	case ActionSubmitContact:
		return ActionSubmitContact, true
	case ActionRunSimulation:
		return ActionRunSimulation, true
	case ActionRunCoupledSimulation:
		return ActionRunCoupledSimulation, true
	case ActionHealthCheck:
		return ActionHealthCheck, true
	default:
		return "", false
	}
}

func (a Action) String() string {
	return string(a)
}

type TimeoutClass string

const (
	TimeoutClassStandard TimeoutClass = "standard"
	TimeoutClassExtended TimeoutClass = "extended"
)

type Route struct {
	Method       string
	Path         string
	TimeoutClass TimeoutClass
	HasPayload   bool
}

// Route maps an action to its backend endpoint. The coupled BTE/Navier-Stokes
// simulation gets the extended timeout class.
func (a Action) Route() (Route, bool) {
	switch a {
	case ActionSubmitContact:
		return Route{Method: "POST", Path: "/api/contact", TimeoutClass: TimeoutClassStandard, HasPayload: true}, true
	case ActionRunSimulation:
		return Route{Method: "POST", Path: "/api/simulate", TimeoutClass: TimeoutClassStandard, HasPayload: true}, true
	case ActionRunCoupledSimulation:
		return Route{Method: "POST", Path: "/api/simulate/bte-ns", TimeoutClass: TimeoutClassExtended, HasPayload: true}, true
	case ActionHealthCheck:
		return Route{Method: "GET", Path: "/api/health", TimeoutClass: TimeoutClassStandard, HasPayload: false}, true
	default:
		return Route{}, false
	}
}

type Envelope struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
	ID      string         `json:"id"`
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	type alias struct {
		Action  string          `json:"action"`
		Payload map[string]any  `json:"payload"`
		ID      json.RawMessage `json:"id"`
	}
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	e.Action = decoded.Action
	e.Payload = decoded.Payload
	e.ID = normalizeEnvelopeID(decoded.ID)
	return nil
}

// Callers may send the correlation id as a string or a number; both normalize
// to the decimal string form so tracking keys stay uniform.
func normalizeEnvelopeID(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}
	return ""
}

type RequestStatus string

const (
	RequestStatusPending RequestStatus = "pending"
	RequestStatusSuccess RequestStatus = "success"
	RequestStatusError   RequestStatus = "error"
)

func (s RequestStatus) Terminal() bool {
	return s == RequestStatusSuccess || s == RequestStatusError
}

type RequestRecord struct {
	ID           string
	Action       Action
	Payload      map[string]any
	Status       RequestStatus
	CreatedAt    time.Time
	StartedAt    time.Time
	CompletedAt  *time.Time
	DurationMS   int64
	Result       map[string]any
	ErrorMessage string
}

type Response struct {
	ID     string         `json:"id"`
	Status RequestStatus  `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func SuccessResponse(id string, data map[string]any) Response {
	return Response{ID: id, Status: RequestStatusSuccess, Data: data}
}

func ErrorResponse(id string, message string) Response {
	return Response{ID: id, Status: RequestStatusError, Error: strings.TrimSpace(message)}
}

type TrackerStats struct {
	Total   int
	Success int
	Error   int
	Pending int
}

type TrackerSnapshot struct {
	Stats    TrackerStats
	ByAction map[Action][]RequestRecord
}
