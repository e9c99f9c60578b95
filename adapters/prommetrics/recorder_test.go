package prommetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorder_IncCounterRegistersAndAccumulates(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)

	tags := map[string]string{"action": "health-check", "status": "success"}
	recorder.IncCounter(context.Background(), "bridge.request.total", 1, tags)
	recorder.IncCounter(context.Background(), "bridge.request.total", 2, tags)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one metric family, got %d", len(families))
	}
	family := families[0]
	if family.GetName() != "bridge_request_total" {
		t.Fatalf("expected normalized name, got %q", family.GetName())
	}
	if len(family.GetMetric()) != 1 {
		t.Fatalf("expected one label combination, got %d", len(family.GetMetric()))
	}
	if got := family.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected accumulated value 3, got %v", got)
	}
}

func TestRecorder_IgnoresNonPositiveCounterValues(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)

	recorder.IncCounter(context.Background(), "bridge.request.total", 0, nil)
	recorder.IncCounter(context.Background(), "bridge.request.total", -1, nil)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 0 {
		t.Fatalf("expected no metrics registered, got %d families", len(families))
	}
}

func TestRecorder_ObserveHistogramRecordsSamples(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)

	tags := map[string]string{"action": "run-simulation"}
	recorder.ObserveHistogram(context.Background(), "bridge.request.duration_ms", 120, tags)
	recorder.ObserveHistogram(context.Background(), "bridge.request.duration_ms", 480, tags)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one metric family, got %d", len(families))
	}
	histogram := families[0].GetMetric()[0].GetHistogram()
	if histogram.GetSampleCount() != 2 {
		t.Fatalf("expected 2 samples, got %d", histogram.GetSampleCount())
	}
	if histogram.GetSampleSum() != 600 {
		t.Fatalf("expected sample sum 600, got %v", histogram.GetSampleSum())
	}
}

func TestRecorder_LaterTagsProjectOntoFirstLabelSet(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)

	recorder.IncCounter(context.Background(), "bridge.drop.total", 1, map[string]string{"reason": "origin"})
	recorder.IncCounter(context.Background(), "bridge.drop.total", 1, map[string]string{
		"reason":  "envelope",
		"ignored": "extra",
	})

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one family, got %d", len(families))
	}
	for _, metric := range families[0].GetMetric() {
		if len(metric.GetLabel()) != 1 {
			t.Fatalf("expected single label per series, got %d", len(metric.GetLabel()))
		}
		if metric.GetLabel()[0].GetName() != "reason" {
			t.Fatalf("expected reason label, got %q", metric.GetLabel()[0].GetName())
		}
	}
}

func TestNormalizeMetricName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"bridge.request.total", "bridge_request_total"},
		{"Bridge.Request-Duration", "bridge_request_duration"},
		{"  already_clean  ", "already_clean"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeMetricName(tc.raw); got != tc.want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
