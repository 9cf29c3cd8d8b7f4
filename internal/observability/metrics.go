// Package observability holds the Prometheus instrumentation for the
// synthesis and playback pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline activity. All fields are safe for concurrent use.
type Metrics struct {
	FramesSynthesized prometheus.Counter
	FramesPlayed      prometheus.Counter
	LinesSpoken       prometheus.Counter
	LinesSkipped      prometheus.Counter
	DeviceReopens     prometheus.Counter
	QueueDepth        prometheus.Gauge
}

// NewMetrics builds the pipeline metric set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readaloud",
			Name:      "frames_synthesized_total",
			Help:      "Audio frames produced by the synthesis engine.",
		}),
		FramesPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readaloud",
			Name:      "frames_played_total",
			Help:      "Audio frames written to the playback device.",
		}),
		LinesSpoken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readaloud",
			Name:      "lines_spoken_total",
			Help:      "Lines fully played back.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readaloud",
			Name:      "lines_skipped_total",
			Help:      "Lines skipped because synthesis failed.",
		}),
		DeviceReopens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "readaloud",
			Name:      "device_reopens_total",
			Help:      "Playback stream reopens caused by sample rate changes.",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readaloud",
			Name:      "queue_depth",
			Help:      "Items currently buffered in the frame queue.",
		}),
	}
	reg.MustRegister(
		m.FramesSynthesized,
		m.FramesPlayed,
		m.LinesSpoken,
		m.LinesSkipped,
		m.DeviceReopens,
		m.QueueDepth,
	)
	return m
}
