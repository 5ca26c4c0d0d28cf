package main

import (
	"log/slog"

	"github.com/codewandler/csp-go/core/csp"
)

type (
	// Item is one sequenced message from a producer.
	Item struct {
		csp.Base
		Seq int
	}

	// Finished tells the sink how many items a producer sent.
	Finished struct {
		csp.Base
		Count int
	}

	// Abort stops the sink before all items have arrived.
	Abort struct{ csp.Base }
)

// Producer sends N items followed by a Finished marker to Sink.
type Producer struct {
	Sink *csp.Process
	N    int
}

func (p Producer) Run(ctx csp.Ctx) {
	self := csp.Base{From: ctx.Self()}
	for i := range p.N {
		p.Sink.Send(&Item{Base: self, Seq: i})
	}
	p.Sink.Send(&Finished{Base: self, Count: p.N})
}

// Sink consumes items from Producers producers. Finished markers are
// deferred while items are still expected and checked once all have
// arrived.
type Sink struct {
	Producers int
	Expected  int // total number of items

	// results, valid after the sink process was waited for
	Received   int
	OutOfOrder int
	Mismatched int
	Finished   int
	Aborted    bool
}

func (s *Sink) Run(ctx csp.Ctx) {
	next := make(map[*csp.Process]int, s.Producers)

	for s.Received < s.Expected {
		switch m := ctx.Receive("items").(type) {
		case *Item:
			if m.Seq != next[m.Sender()] {
				s.OutOfOrder++
			}
			next[m.Sender()] = m.Seq + 1
			s.Received++
		case *Abort:
			s.Aborted = true
			return
		default:
			ctx.Reject(m)
		}
	}

	for s.Finished < s.Producers {
		switch m := ctx.Receive("finished").(type) {
		case *Finished:
			if next[m.Sender()] != m.Count {
				ctx.Log().Warn(
					"producer count mismatch",
					slog.String("producer", m.Sender().ID()),
					slog.Int("sent", m.Count),
					slog.Int("received", next[m.Sender()]),
				)
				s.Mismatched++
			}
			s.Finished++
		case *Abort:
			s.Aborted = true
			return
		default:
			ctx.Reject(m)
		}
	}
}
