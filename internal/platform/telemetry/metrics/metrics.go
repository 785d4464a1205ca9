// Package metrics defines the tracker's operational metric instruments.
//
// Synchronization failures are deliberately invisible to API callers; the
// counters here are the only place they surface besides the process log.
package metrics

import "go.opentelemetry.io/otel/metric"

// MeterName is the instrumentation scope name for tracker metrics.
const MeterName = "tracker"

// Metrics holds all tracker metric instruments.
type Metrics struct {
	RequestDuration metric.Float64Histogram
	MutationErrors  metric.Int64Counter
	SyncRuns        metric.Int64Counter
	SyncFailures    metric.Int64Counter
}

// NewMetrics creates all metric instruments from the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.RequestDuration, err = meter.Float64Histogram("tracker.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.MutationErrors, err = meter.Int64Counter("tracker.mutation.errors",
		metric.WithDescription("Task and project mutation error count"),
	)
	if err != nil {
		return nil, err
	}

	m.SyncRuns, err = meter.Int64Counter("tracker.sync.runs",
		metric.WithDescription("Project status synchronization attempts"),
	)
	if err != nil {
		return nil, err
	}

	m.SyncFailures, err = meter.Int64Counter("tracker.sync.failures",
		metric.WithDescription("Project status synchronizations dropped after store failure"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}
