// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the load run.
//
// It exposes a narrow interface (Backend) for counters and timing data, with
// a global, pluggable backend that defaults to a no-op implementation, so
// metric calls are always safe even when no real backend is configured.
// Concrete systems (Prometheus Pushgateway) live in subpackages; the rest of
// the codebase depends only on this package.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is the default so metrics stay optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)      {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure for one run step
// (download, parse, transform, load, report).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("sales_etl_step_total", 1, lbls)
	backend.ObserveDuration("sales_etl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Kinds mirror the run summary fields:
//   - "parsed"
//   - "dim_date"
//   - "dim_product"
//   - "facts"
//   - "dropped"
//   - "shared_product_rows"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sales_etl_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
