package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"pagearchiver/internal/progress"
)

// PrometheusSink exports run progress via Prometheus. It owns the collectors
// for run and task counters plus fetch size/latency observations.
type PrometheusSink struct {
	runsStarted   prometheus.Counter
	runsCompleted prometheus.Counter
	tasksDone     prometheus.Counter
	tasksSkipped  prometheus.Counter
	tasksFailed   *prometheus.CounterVec
	fetchBytes    prometheus.Counter
	fetchDuration prometheus.Histogram
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagearchiver_runs_started_total",
			Help: "Total archive runs started.",
		}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagearchiver_runs_completed_total",
			Help: "Total archive runs that reached the end of the URL list.",
		}),
		tasksDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagearchiver_tasks_succeeded_total",
			Help: "Pages fetched, stored, and recorded in the ledger.",
		}),
		tasksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagearchiver_tasks_skipped_total",
			Help: "Tasks skipped because their identifier was already completed.",
		}),
		tasksFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagearchiver_tasks_failed_total",
			Help: "Failed tasks partitioned by failure classification.",
		}, []string{"reason"}),
		fetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagearchiver_fetch_bytes_total",
			Help: "Bytes of page content stored.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagearchiver_fetch_duration_seconds",
			Help:    "Fetch duration for successful tasks.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}),
	}
	for _, collector := range []prometheus.Collector{
		s.runsStarted,
		s.runsCompleted,
		s.tasksDone,
		s.tasksSkipped,
		s.tasksFailed,
		s.fetchBytes,
		s.fetchDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors from evt.
func (s *PrometheusSink) Consume(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageRunStart:
		s.runsStarted.Inc()
	case progress.StageRunDone:
		s.runsCompleted.Inc()
	case progress.StageTaskSkip:
		s.tasksSkipped.Inc()
	case progress.StageTaskDone:
		s.tasksDone.Inc()
		if evt.Bytes > 0 {
			s.fetchBytes.Add(float64(evt.Bytes))
		}
		if evt.Dur > 0 {
			s.fetchDuration.Observe(evt.Dur.Seconds())
		}
	case progress.StageTaskError:
		reason := evt.Reason
		if reason == "" {
			reason = "other"
		}
		s.tasksFailed.WithLabelValues(reason).Inc()
	}
	return nil
}

// Close implements the Sink interface; collectors stay registered.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
