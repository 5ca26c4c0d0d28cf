package csp

import "log/slog"

type (
	// Ctx is handed to a process' run logic. Receive and Reject operate on
	// the process' own mailbox and must only be called from the run logic.
	Ctx interface {
		Self() *Process
		Log() *slog.Logger
		// Receive blocks until a message is available at wait point token.
		Receive(token Token) Message
		// ReceiveHere is Receive with the caller's source location as token.
		ReceiveHere() Message
		// Reject defers m until a Receive at a different token.
		Reject(m Message)
		// Reply sends reply to the sender of m.
		Reply(m Message, reply Message)
	}

	// Runner supplies the run logic of a process.
	Runner interface {
		Run(ctx Ctx)
	}

	// RunFunc adapts a function to Runner.
	RunFunc func(ctx Ctx)
)

func (f RunFunc) Run(ctx Ctx) { f(ctx) }

type procCtx struct {
	p *Process
}

func (c *procCtx) Self() *Process    { return c.p }
func (c *procCtx) Log() *slog.Logger { return c.p.log }

func (c *procCtx) Receive(token Token) Message { return c.p.receive(token) }
func (c *procCtx) ReceiveHere() Message        { return c.p.receive(callerToken(2)) }

func (c *procCtx) Reject(m Message) {
	if m == nil {
		return
	}
	c.p.metrics.MessageRejected(KindOf(m))
	c.p.mb.reject(m)
}

func (c *procCtx) Reply(m Message, reply Message) {
	to := m.Sender()
	if to == nil {
		c.p.log.Warn("cannot reply to message without sender", slog.String("kind", KindOf(m)))
		return
	}
	to.Send(reply)
}

var _ Ctx = (*procCtx)(nil)
