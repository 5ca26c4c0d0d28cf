package csp

import "github.com/codewandler/csp-go/core/metrics"

// ProcessMetrics receives engine instrumentation events.
// Implementations must be safe for concurrent use.
type ProcessMetrics interface {
	// Messages
	MessageSent(kind string)
	MessageReceived(kind string)
	MessageRejected(kind string)
	MessagesRequeued(processID string, n int)
	MessagesUndelivered(processID string, n int)

	// Queues
	MailboxDepth(processID string, depth int)
	RejectDepth(processID string, depth int)
	ReceiveWait() metrics.Timer

	// Lifecycle
	ProcessStarted()
	ProcessExited(panicked bool)
}

type nopProcessMetrics struct{}

func (nopProcessMetrics) MessageSent(string)              {}
func (nopProcessMetrics) MessageReceived(string)          {}
func (nopProcessMetrics) MessageRejected(string)          {}
func (nopProcessMetrics) MessagesRequeued(string, int)    {}
func (nopProcessMetrics) MessagesUndelivered(string, int) {}

func (nopProcessMetrics) MailboxDepth(string, int)   {}
func (nopProcessMetrics) RejectDepth(string, int)    {}
func (nopProcessMetrics) ReceiveWait() metrics.Timer { return metrics.NopTimer() }

func (nopProcessMetrics) ProcessStarted()    {}
func (nopProcessMetrics) ProcessExited(bool) {}

// NopProcessMetrics returns a ProcessMetrics that discards everything.
func NopProcessMetrics() ProcessMetrics { return nopProcessMetrics{} }
