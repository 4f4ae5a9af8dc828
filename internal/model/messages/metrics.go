package messages

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramHandleTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "kakeibo",
		Subsystem: "webhook",
		Name:      "histogram_event_handle_time_seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	},
	[]string{"event", "error"},
)

func observeEvent(event string, elapsed time.Duration, err bool) {
	histogramHandleTime.
		WithLabelValues(event, strconv.FormatBool(err)).
		Observe(elapsed.Seconds())
}
