// Package csp implements communicating sequential processes: independent
// processes, each on its own goroutine, that interact only by sending
// messages into each other's mailbox.
//
// # Processes
//
// A process is created from a [Runner] and started explicitly:
//
//	p := csp.New(csp.Options{}, csp.RunFunc(func(ctx csp.Ctx) {
//	    for {
//	        switch m := ctx.Receive("loop").(type) {
//	        case *Ping:
//	            ctx.Reply(m, &Pong{Base: csp.Base{From: ctx.Self()}})
//	        case *Stop:
//	            return
//	        default:
//	            ctx.Reject(m)
//	        }
//	    }
//	}))
//	_ = p.Start()
//	p.Send(&Ping{})
//	p.Send(&Stop{})
//	p.Wait()
//	p.Close()
//
// Lifecycle is created → running → terminated. [Process.Wait] blocks until
// the run logic returns and may be called any number of times.
// [Process.Close] releases the process; closing a process that has not
// been waited for is logged as a usage error and waits implicitly.
//
// # Messages
//
// Messages embed [Base] to carry their sender and are dispatched with a
// type switch. [ValueMessage] wraps a single value for simple replies.
// Ownership passes with the message: once sent it must not be mutated.
//
// # Selective receive
//
// Every [Ctx.Receive] names its wait point with a [Token]. A message the
// run logic is not ready for is handed to [Ctx.Reject], which sets it aside
// instead of putting it back into the mailbox. Rejected messages stay
// deferred while the process keeps receiving at the same token; the first
// receive at a different token moves all of them, in order, to the front of
// the mailbox so they are seen before anything that arrived later.
//
// A loop that only ever uses one token and rejects a kind will never see
// that kind again. Use a second wait point to release deferred messages.
//
// [Ctx.ReceiveHere] derives the token from the caller's source location.
//
// # Delivery
//
// Send never blocks; mailboxes are unbounded. Messages from one sender to
// one receiver arrive in send order. Receive is the only blocking operation
// and has no timeout.
package csp
