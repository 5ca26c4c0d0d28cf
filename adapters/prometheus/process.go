package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/csp-go/core/csp"
	"github.com/codewandler/csp-go/core/metrics"
)

// processMetrics implements csp.ProcessMetrics using Prometheus.
type processMetrics struct {
	sentTotal        *prometheus.CounterVec
	receivedTotal    *prometheus.CounterVec
	rejectedTotal    *prometheus.CounterVec
	requeuedTotal    *prometheus.CounterVec
	undeliveredTotal *prometheus.CounterVec
	mailboxDepth     *prometheus.GaugeVec
	rejectDepth      *prometheus.GaugeVec
	receiveWait      prometheus.Histogram
	running          prometheus.Gauge
	exitedTotal      *prometheus.CounterVec
}

// NewProcessMetrics creates and registers the process metrics with reg.
// Use one instance for all processes; per-process series are labelled
// with the process id.
func NewProcessMetrics(reg prometheus.Registerer) csp.ProcessMetrics {
	m := &processMetrics{
		sentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_messages_sent_total",
			Help: "Total number of messages sent",
		}, []string{"kind"}),

		receivedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_messages_received_total",
			Help: "Total number of messages returned by receive",
		}, []string{"kind"}),

		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_messages_rejected_total",
			Help: "Total number of messages put aside by reject",
		}, []string{"kind"}),

		requeuedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_messages_requeued_total",
			Help: "Total number of rejected messages moved back to the mailbox",
		}, []string{"process"}),

		undeliveredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_messages_undelivered_total",
			Help: "Messages left in a mailbox or reject set when its process exited",
		}, []string{"process"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "csp_mailbox_depth",
			Help: "Current mailbox queue depth",
		}, []string{"process"}),

		rejectDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "csp_reject_depth",
			Help: "Current number of deferred messages",
		}, []string{"process"}),

		receiveWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "csp_receive_wait_seconds",
			Help:    "Time a receive spent blocked on an empty mailbox",
			Buckets: defaultBuckets,
		}),

		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "csp_processes_running",
			Help: "Number of processes whose run logic is executing",
		}),

		exitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_processes_exited_total",
			Help: "Total number of processes that exited",
		}, []string{"panicked"}),
	}

	reg.MustRegister(
		m.sentTotal,
		m.receivedTotal,
		m.rejectedTotal,
		m.requeuedTotal,
		m.undeliveredTotal,
		m.mailboxDepth,
		m.rejectDepth,
		m.receiveWait,
		m.running,
		m.exitedTotal,
	)

	return m
}

func (m *processMetrics) MessageSent(kind string)     { m.sentTotal.WithLabelValues(kind).Inc() }
func (m *processMetrics) MessageReceived(kind string) { m.receivedTotal.WithLabelValues(kind).Inc() }
func (m *processMetrics) MessageRejected(kind string) { m.rejectedTotal.WithLabelValues(kind).Inc() }

func (m *processMetrics) MessagesRequeued(processID string, n int) {
	m.requeuedTotal.WithLabelValues(processID).Add(float64(n))
}

func (m *processMetrics) MessagesUndelivered(processID string, n int) {
	m.undeliveredTotal.WithLabelValues(processID).Add(float64(n))
}

func (m *processMetrics) MailboxDepth(processID string, depth int) {
	m.mailboxDepth.WithLabelValues(processID).Set(float64(depth))
}

func (m *processMetrics) RejectDepth(processID string, depth int) {
	m.rejectDepth.WithLabelValues(processID).Set(float64(depth))
}

func (m *processMetrics) ReceiveWait() metrics.Timer { return newTimer(m.receiveWait) }

func (m *processMetrics) ProcessStarted() { m.running.Inc() }

func (m *processMetrics) ProcessExited(panicked bool) {
	m.running.Dec()
	m.exitedTotal.WithLabelValues(boolToStr(panicked)).Inc()
}

var _ csp.ProcessMetrics = (*processMetrics)(nil)
