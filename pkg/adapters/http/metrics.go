package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's collectors.
type Metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	links    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinetree_renders_total",
				Help: "Total number of description renders by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kinetree_render_duration_seconds",
				Help:    "Time spent compiling and writing a description",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"endpoint"},
		),
		links: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kinetree_robot_links",
				Help:    "Number of links in successfully rendered robots",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
	reg.MustRegister(m.renders, m.duration, m.links)
	return m
}

func (m *Metrics) observe(endpoint string, start time.Time, links int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	} else {
		m.links.Observe(float64(links))
	}
	m.renders.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
