// Package metrics exposes session and remote-call counters to prometheus.
//
// A nil *Collector is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orrery"

type Collector struct {
	registry *prometheus.Registry

	frames          prometheus.Counter
	picks           *prometheus.CounterVec
	selections      prometheus.Counter
	remoteRequests  *prometheus.CounterVec
	remoteDurations *prometheus.HistogramVec
}

func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames stepped across all sessions",
		}),
		picks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "picks_total",
				Help:      "Pick requests by result",
			},
			[]string{"result"},
		),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Bodies selected by double-click",
		}),
		remoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_requests_total",
				Help:      "Remote API calls by api and outcome",
			},
			[]string{"api", "outcome"},
		),
		remoteDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_request_duration_seconds",
				Help:      "Time spent waiting on remote APIs",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"api"},
		),
	}

	m.registry.MustRegister(m.frames, m.picks, m.selections, m.remoteRequests, m.remoteDurations)
	return m
}

func (m *Collector) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Collector) Frame() {
	if m != nil {
		m.frames.Inc()
	}
}

func (m *Collector) Pick(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.picks.WithLabelValues(result).Inc()
}

func (m *Collector) Selection() {
	if m != nil {
		m.selections.Inc()
	}
}

func (m *Collector) RecordRemote(api string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.remoteRequests.WithLabelValues(api, outcome).Inc()
	m.remoteDurations.WithLabelValues(api).Observe(d.Seconds())
}

// Handler serves the collector's registry in the prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr.
func (m *Collector) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
