// Package prometheus provides a Prometheus implementation of
// csp.ProcessMetrics.
package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/csp-go/core/metrics"
)

func newTimer(o prometheus.Observer) metrics.Timer {
	return metrics.NewTimer(o.Observe)
}

// Default histogram buckets for receive wait time (in seconds).
var defaultBuckets = []float64{
	.0001, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

func boolToStr(b bool) string { return strconv.FormatBool(b) }
