// Package prommetrics implements the core.MetricsRecorder contract on top of
// prometheus/client_golang.
package prommetrics

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aura-mf/bridge/core"
)

// Recorder lazily registers one counter/histogram vector per metric name.
// The label set is fixed by the first observation of a name; later calls are
// projected onto that set, with missing labels reported as empty.
type Recorder struct {
	Namespace  string
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	labels     map[string][]string
}

func NewRecorder(registerer prometheus.Registerer) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Recorder{
		registerer: registerer,
		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
		labels:     map[string][]string{},
	}
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value <= 0 {
		return
	}
	metric := normalizeMetricName(name)
	if metric == "" {
		return
	}

	r.mu.Lock()
	vec, ok := r.counters[metric]
	if !ok {
		keys := r.labelKeysLocked(metric, tags)
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.Namespace,
			Name:      metric,
		}, keys)
		if err := r.registerer.Register(vec); err != nil {
			if already, isDup := err.(prometheus.AlreadyRegisteredError); isDup {
				if existing, isVec := already.ExistingCollector.(*prometheus.CounterVec); isVec {
					vec = existing
				}
			} else {
				r.mu.Unlock()
				return
			}
		}
		r.counters[metric] = vec
	}
	values := r.labelValuesLocked(metric, tags)
	r.mu.Unlock()

	vec.WithLabelValues(values...).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	metric := normalizeMetricName(name)
	if metric == "" {
		return
	}

	r.mu.Lock()
	vec, ok := r.histograms[metric]
	if !ok {
		keys := r.labelKeysLocked(metric, tags)
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.Namespace,
			Name:      metric,
			Buckets:   prometheus.DefBuckets,
		}, keys)
		if err := r.registerer.Register(vec); err != nil {
			if already, isDup := err.(prometheus.AlreadyRegisteredError); isDup {
				if existing, isVec := already.ExistingCollector.(*prometheus.HistogramVec); isVec {
					vec = existing
				}
			} else {
				r.mu.Unlock()
				return
			}
		}
		r.histograms[metric] = vec
	}
	values := r.labelValuesLocked(metric, tags)
	r.mu.Unlock()

	vec.WithLabelValues(values...).Observe(value)
}

func (r *Recorder) labelKeysLocked(metric string, tags map[string]string) []string {
	if keys, ok := r.labels[metric]; ok {
		return keys
	}
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	r.labels[metric] = keys
	return keys
}

func (r *Recorder) labelValuesLocked(metric string, tags map[string]string) []string {
	keys := r.labels[metric]
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = tags[key]
	}
	return values
}

// Metric names arrive dotted (bridge.request.total); prometheus wants
// underscores.
func normalizeMetricName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

var _ core.MetricsRecorder = (*Recorder)(nil)
