package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sourceReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_source_reads_total",
			Help: "Total event source reads",
		},
		[]string{"operation", "status"},
	)

	sourceReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_source_read_duration_seconds",
			Help:    "Duration of event source reads",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"operation"},
	)

	feedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_feed_loads_total",
			Help: "Completed event feed loads by outcome",
		},
		[]string{"outcome"},
	)

	feedRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "events_feed_records",
			Help: "Number of records in the last completed feed load",
		},
		[]string{"origin"},
	)
)

const (
	OpListEvents      = "list_events"
	OpGetEventDetails = "get_event_details"

	ReadOK          = "ok"
	ReadError       = "error"
	ReadUnavailable = "unavailable"

	OutcomeLive     = "live"
	OutcomeFallback = "fallback"
)

// Monitor records event source and feed metrics. A nil *Monitor is valid and
// records nothing.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TrackRead(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	sourceReads.WithLabelValues(operation, status).Inc()
	sourceReadDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Monitor) TrackFeedLoad(outcome string, records int) {
	if m == nil {
		return
	}
	feedLoads.WithLabelValues(outcome).Inc()
	feedRecords.WithLabelValues(outcome).Set(float64(records))
}
