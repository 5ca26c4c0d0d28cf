package csp

import (
	"log/slog"
	"sync"

	"github.com/gammazero/deque"

	"github.com/codewandler/csp-go/core/metrics"
)

// mailbox is an unbounded FIFO of pending messages with a single consumer
// and any number of producers. The queue and the reject set share one lock.
type mailbox struct {
	id      string
	log     *slog.Logger
	metrics ProcessMetrics

	mu      sync.Mutex
	cond    *sync.Cond
	queue   deque.Deque[Message]
	rejects rejectSet
	closed  bool
}

func newMailbox(id string, log *slog.Logger, m ProcessMetrics) *mailbox {
	mb := &mailbox{id: id, log: log, metrics: m}
	mb.cond = sync.NewCond(&mb.mu)
	return mb
}

// send appends m to the tail. It never blocks. It reports false if the
// mailbox has been closed and m was dropped.
func (mb *mailbox) send(m Message) bool {
	mb.mu.Lock()
	if mb.closed {
		mb.mu.Unlock()
		return false
	}
	mb.queue.PushBack(m)
	depth := mb.queue.Len()
	mb.mu.Unlock()

	mb.cond.Signal()
	mb.metrics.MailboxDepth(mb.id, depth)
	return true
}

// receive blocks until a message is available and returns the front one.
// When token differs from the previous call's token the reject set is
// first spliced onto the front of the queue.
func (mb *mailbox) receive(token Token) Message {
	var (
		requeued int
		prev     Token
		wait     metrics.Timer
	)

	mb.mu.Lock()
	if changed, p := mb.rejects.enter(token); changed && mb.rejects.len() > 0 {
		requeued = mb.rejects.spliceInto(&mb.queue)
		prev = p
	}
	if mb.queue.Len() == 0 {
		wait = mb.metrics.ReceiveWait()
	}
	for mb.queue.Len() == 0 {
		mb.cond.Wait()
	}
	m := mb.queue.PopFront()
	depth := mb.queue.Len()
	mb.mu.Unlock()

	if wait != nil {
		wait.ObserveDuration()
	}
	if requeued > 0 {
		mb.log.Debug(
			"requeued rejected messages",
			slog.Int("count", requeued),
			slog.String("from", string(prev)),
			slog.String("to", string(token)),
		)
		mb.metrics.MessagesRequeued(mb.id, requeued)
		mb.metrics.RejectDepth(mb.id, 0)
	}
	mb.metrics.MailboxDepth(mb.id, depth)
	return m
}

// reject sets m aside until a receive at a different token.
func (mb *mailbox) reject(m Message) {
	mb.mu.Lock()
	mb.rejects.push(m)
	depth := mb.rejects.len()
	mb.mu.Unlock()

	mb.metrics.RejectDepth(mb.id, depth)
}

func (mb *mailbox) len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.queue.Len()
}

func (mb *mailbox) rejected() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.rejects.len()
}

// close stops accepting messages and returns whatever was left undelivered.
func (mb *mailbox) close() (pending, rejected []Message) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.closed {
		return nil, nil
	}
	mb.closed = true

	pending = make([]Message, 0, mb.queue.Len())
	for mb.queue.Len() > 0 {
		pending = append(pending, mb.queue.PopFront())
	}
	rejected = mb.rejects.drain()
	return pending, rejected
}
