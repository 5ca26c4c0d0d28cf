package csp

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
)

// State is the lifecycle state of a Process.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Process is an actor with its own goroutine and mailbox. Other processes
// hold a *Process only to Send to it.
type Process struct {
	id      string
	log     *slog.Logger
	metrics ProcessMetrics
	onPanic OnPanic
	runner  Runner
	mb      *mailbox

	mu     sync.Mutex
	state  State
	joined bool
	closed bool

	done chan struct{}
}

// New creates a process in the created state. Call Start to run it.
func New(opts Options, r Runner) *Process {
	opts = opts.withDefaults()
	return &Process{
		id:      opts.ID,
		log:     opts.Logger,
		metrics: opts.Metrics,
		onPanic: opts.OnPanic,
		runner:  r,
		mb:      newMailbox(opts.ID, opts.Logger, opts.Metrics),
		done:    make(chan struct{}),
	}
}

// Spawn creates and starts a process.
func Spawn(opts Options, r Runner) (*Process, error) {
	p := New(opts, r)
	if err := p.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

// ID returns the process id used in logs and metrics.
func (p *Process) ID() string { return p.id }

// String returns the process id.
func (p *Process) String() string { return p.id }

// State returns the current lifecycle state.
func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done is closed when the run logic has returned.
func (p *Process) Done() <-chan struct{} { return p.done }

// Start runs the process' run logic on a new goroutine.
func (p *Process) Start() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Error("start called on closed process")
		return fmt.Errorf("start %s: %w", p.id, ErrClosed)
	}
	if p.state != StateCreated {
		p.mu.Unlock()
		p.log.Error("start called more than once")
		return fmt.Errorf("start %s: %w", p.id, ErrAlreadyStarted)
	}
	p.state = StateRunning
	p.mu.Unlock()

	go p.run()
	return nil
}

// Send enqueues m into the process' mailbox. It never blocks and may be
// called from any goroutine. Messages sent after the process terminated
// are dropped.
func (p *Process) Send(m Message) {
	if m == nil {
		p.log.Warn("ignoring nil message")
		return
	}
	kind := KindOf(m)
	if !p.mb.send(m) {
		p.log.Warn("dropping message sent to terminated process", slog.String("kind", kind))
		return
	}
	p.metrics.MessageSent(kind)
}

// Wait blocks until the run logic has returned. It is safe to call any
// number of times, concurrently. Waiting on a process that was never
// started blocks until it is started and terminates, or is closed.
func (p *Process) Wait() {
	p.mu.Lock()
	p.joined = true
	state := p.state
	closed := p.closed
	p.mu.Unlock()

	if state == StateCreated && !closed {
		p.log.Warn("wait called on a process that was never started")
	}
	<-p.done
}

// Close releases the process. A process that was not waited for is
// reported and then waited for implicitly.
func (p *Process) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	joined := p.joined
	p.joined = true
	state := p.state
	p.mu.Unlock()

	if state == StateCreated {
		p.log.Error("closing a process that was never started")
		p.reportUndelivered()
		close(p.done)
		return
	}
	if !joined {
		p.log.Error("closing a process before it has been waited for")
		<-p.done
	}
}

func (p *Process) receive(token Token) Message {
	m := p.mb.receive(token)
	p.metrics.MessageReceived(KindOf(m))
	return m
}

func (p *Process) run() {
	defer close(p.done)

	p.log.Debug("process started")
	p.metrics.ProcessStarted()

	panicked := p.invoke()

	p.mu.Lock()
	p.state = StateTerminated
	p.mu.Unlock()

	p.reportUndelivered()

	p.metrics.ProcessExited(panicked)
	p.log.Debug("process exited", slog.Bool("panicked", panicked))
}

// reportUndelivered closes the mailbox and logs whatever was left in it.
func (p *Process) reportUndelivered() {
	pending, rejected := p.mb.close()
	n := len(pending) + len(rejected)
	if n == 0 {
		return
	}
	p.log.Warn(
		"process exited with undelivered messages",
		slog.Int("pending", len(pending)),
		slog.Int("rejected", len(rejected)),
		slog.Any("kinds", countKinds(pending, rejected)),
	)
	p.metrics.MessagesUndelivered(p.id, n)
}

func (p *Process) invoke() (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			p.onPanic(r, debug.Stack())
		}
	}()
	p.runner.Run(&procCtx{p: p})
	return false
}

func countKinds(lists ...[]Message) []string {
	counts := make(map[string]int)
	for _, l := range lists {
		for _, m := range l {
			counts[KindOf(m)]++
		}
	}
	out := make([]string, 0, len(counts))
	for k, n := range counts {
		out = append(out, fmt.Sprintf("%s=%d", k, n))
	}
	sort.Strings(out)
	return out
}
