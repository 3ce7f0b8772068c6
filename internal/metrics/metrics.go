// Package metrics exports the clock's task activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"picoclock/clock"
)

// Metrics implements app.Observer on its own registry.
type Metrics struct {
	reg *prometheus.Registry

	ticks     prometheus.Counter
	seconds   prometheus.Gauge
	frames    prometheus.Counter
	frameErrs prometheus.Counter
	frameTime prometheus.Histogram
	inputs    *prometheus.CounterVec
	shutdowns prometheus.Counter
}

// New registers the clock metrics, plus the Go and process collectors, on
// a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "picoclock_ticks_total",
			Help: "count of one-second clock advances",
		}),
		seconds: f.NewGauge(prometheus.GaugeOpts{
			Name: "picoclock_time_seconds",
			Help: "displayed time of day, in seconds since midnight",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "picoclock_frames_total",
			Help: "count of rendered frames",
		}),
		frameErrs: f.NewCounter(prometheus.CounterOpts{
			Name: "picoclock_frame_errors_total",
			Help: "count of frames whose present failed",
		}),
		frameTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "picoclock_frame_duration_seconds",
			Help:    "time to draw and present one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		inputs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "picoclock_input_actions_total",
			Help: "count of button actions applied to the clock",
		}, []string{"action"}),
		shutdowns: f.NewCounter(prometheus.CounterOpts{
			Name: "picoclock_shutdowns_total",
			Help: "count of clock shutdowns",
		}),
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Tick(seconds int) {
	m.ticks.Inc()
	m.seconds.Set(float64(seconds))
}

func (m *Metrics) Frame(d time.Duration, err error) {
	m.frames.Inc()
	m.frameTime.Observe(d.Seconds())
	if err != nil {
		m.frameErrs.Inc()
	}
}

// Input counts each action bit separately.
func (m *Metrics) Input(act clock.Action) {
	for bit := clock.Action(1); bit != 0 && bit <= act; bit <<= 1 {
		if act&bit != 0 {
			m.inputs.WithLabelValues(bit.String()).Inc()
		}
	}
}

func (m *Metrics) Shutdown() { m.shutdowns.Inc() }
