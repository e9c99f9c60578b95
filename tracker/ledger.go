// Package tracker keeps the per-session request lifecycle ledger: one record
// per accepted request, running counters, and bounded per-action history.
package tracker

import (
	"net/http"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
)

const defaultHistoryLimit = 256

// Ledger records every accepted request exactly once and transitions it to a
// terminal status exactly once. Counters never shrink; only the per-action
// history buffers are bounded.
type Ledger struct {
	HistoryLimit int
	Now          func() time.Time

	mu       sync.Mutex
	records  map[string]*core.RequestRecord
	families map[core.Action][]string
	total    int
	success  int
	errored  int
}

func NewLedger() *Ledger {
	return &Ledger{
		HistoryLimit: defaultHistoryLimit,
		Now: func() time.Time {
			return time.Now().UTC()
		},
		records:  map[string]*core.RequestRecord{},
		families: map[core.Action][]string{},
	}
}

func (l *Ledger) Register(id string, action core.Action, payload map[string]any) (core.RequestRecord, error) {
	if l == nil {
		return core.RequestRecord{}, trackerInternal("tracker: ledger is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return core.RequestRecord{}, trackerBadInput("tracker: request id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.records[id]; exists {
		return core.RequestRecord{}, trackerConflict(id)
	}

	now := l.now()
	record := &core.RequestRecord{
		ID:        id,
		Action:    action,
		Payload:   clonePayload(payload),
		Status:    core.RequestStatusPending,
		CreatedAt: now,
		StartedAt: now,
	}
	l.records[id] = record
	l.total++
	l.appendFamilyLocked(action, id)
	return cloneRecord(record), nil
}

// Complete transitions the record to a terminal status. A second call for an
// already-terminal record is a no-op returning the settled record unchanged.
func (l *Ledger) Complete(
	id string,
	status core.RequestStatus,
	result map[string]any,
	cause error,
) (core.RequestRecord, error) {
	if l == nil {
		return core.RequestRecord{}, trackerInternal("tracker: ledger is nil")
	}
	if !status.Terminal() {
		return core.RequestRecord{}, trackerBadInput("tracker: completion status must be terminal")
	}
	id = strings.TrimSpace(id)

	l.mu.Lock()
	defer l.mu.Unlock()
	record, exists := l.records[id]
	if !exists {
		return core.RequestRecord{}, goerrors.New("tracker: no record for id "+id, goerrors.CategoryNotFound).
			WithCode(http.StatusNotFound).
			WithTextCode(core.BridgeErrorInternal)
	}
	if record.Status.Terminal() {
		return cloneRecord(record), nil
	}

	completedAt := l.now()
	record.Status = status
	record.CompletedAt = &completedAt
	record.DurationMS = completedAt.Sub(record.StartedAt).Milliseconds()
	if record.DurationMS < 0 {
		record.DurationMS = 0
	}
	switch status {
	case core.RequestStatusSuccess:
		record.Result = clonePayload(result)
		l.success++
	case core.RequestStatusError:
		if cause != nil {
			record.ErrorMessage = errorMessage(cause)
		}
		l.errored++
	}
	return cloneRecord(record), nil
}

func (l *Ledger) Record(id string) (core.RequestRecord, bool) {
	if l == nil {
		return core.RequestRecord{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	record, exists := l.records[strings.TrimSpace(id)]
	if !exists {
		return core.RequestRecord{}, false
	}
	return cloneRecord(record), true
}

func (l *Ledger) Stats() core.TrackerStats {
	if l == nil {
		return core.TrackerStats{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statsLocked()
}

// Snapshot returns a deep-copied read-only view; mutating it never touches
// ledger state.
func (l *Ledger) Snapshot() core.TrackerSnapshot {
	if l == nil {
		return core.TrackerSnapshot{ByAction: map[core.Action][]core.RequestRecord{}}
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	byAction := make(map[core.Action][]core.RequestRecord, len(l.families))
	for action, ids := range l.families {
		records := make([]core.RequestRecord, 0, len(ids))
		for _, id := range ids {
			if record, exists := l.records[id]; exists {
				records = append(records, cloneRecord(record))
			}
		}
		byAction[action] = records
	}
	return core.TrackerSnapshot{
		Stats:    l.statsLocked(),
		ByAction: byAction,
	}
}

func (l *Ledger) statsLocked() core.TrackerStats {
	return core.TrackerStats{
		Total:   l.total,
		Success: l.success,
		Error:   l.errored,
		Pending: l.total - l.success - l.errored,
	}
}

// Per-action history is a bounded ring: once a family hits the limit the
// oldest entry falls out of the sublist (and the record map, if terminal).
// Counters are unaffected by eviction.
func (l *Ledger) appendFamilyLocked(action core.Action, id string) {
	limit := l.historyLimit()
	ids := append(l.families[action], id)
	for len(ids) > limit {
		evicted := ids[0]
		ids = ids[1:]
		if record, exists := l.records[evicted]; exists && record.Status.Terminal() {
			delete(l.records, evicted)
		}
	}
	l.families[action] = ids
}

func (l *Ledger) historyLimit() int {
	if l != nil && l.HistoryLimit > 0 {
		return l.HistoryLimit
	}
	return defaultHistoryLimit
}

func (l *Ledger) now() time.Time {
	if l != nil && l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

func errorMessage(err error) string {
	mapped := core.BridgeErrorMapper(err)
	if mapped != nil && strings.TrimSpace(mapped.Message) != "" {
		return mapped.Message
	}
	return err.Error()
}

func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	copied := make(map[string]any, len(payload))
	for key, value := range payload {
		copied[key] = value
	}
	return copied
}

func cloneRecord(record *core.RequestRecord) core.RequestRecord {
	copied := *record
	copied.Payload = clonePayload(record.Payload)
	copied.Result = clonePayload(record.Result)
	if record.CompletedAt != nil {
		completedAt := *record.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return copied
}

func trackerBadInput(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.BridgeErrorBadInput)
}

func trackerConflict(id string) error {
	return goerrors.New("tracker: request id already registered", goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(core.BridgeErrorDuplicateRequest).
		WithMetadata(map[string]any{"request_id": id})
}

func trackerInternal(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.BridgeErrorInternal)
}

var _ core.RequestLedger = (*Ledger)(nil)
