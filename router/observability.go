package router

import (
	"context"
	"sort"
	"strings"

	"github.com/aura-mf/bridge/core"
)

func (r *Router) observeRequest(ctx context.Context, record core.RequestRecord, err error) {
	if r == nil {
		return
	}
	tags := map[string]string{
		"action": record.Action.String(),
		"status": string(record.Status),
	}
	r.recordCounter(ctx, "bridge.request.total", 1, tags)
	r.recordHistogram(ctx, "bridge.request.duration_ms", float64(record.DurationMS), tags)

	fields := map[string]any{
		"request_id":  record.ID,
		"action":      record.Action.String(),
		"status":      string(record.Status),
		"duration_ms": record.DurationMS,
	}
	if err != nil {
		fields["error"] = err.Error()
		r.logError(ctx, "request failed", fields)
		return
	}
	r.logInfo(ctx, "request completed", fields)
}

func (r *Router) logInfo(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "info", message, fields)
}

func (r *Router) logWarn(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "warn", message, fields)
}

func (r *Router) logError(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "error", message, fields)
}

func (r *Router) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if r == nil || r.logger == nil {
		return
	}
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "warn":
		logger.Warn(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (r *Router) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (r *Router) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
