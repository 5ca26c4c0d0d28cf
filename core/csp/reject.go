package csp

import "github.com/gammazero/deque"

// rejectSet holds messages put aside at the current receive point.
// It is not synchronized; the owning Mailbox guards it with its lock.
type rejectSet struct {
	items deque.Deque[Message]
	token Token
	seen  bool // a receive has recorded a token
}

func (r *rejectSet) push(m Message) { r.items.PushBack(m) }

func (r *rejectSet) len() int { return r.items.Len() }

// enter records token as the current receive point. It reports whether the
// point changed, in which case the caller must reintegrate the set.
func (r *rejectSet) enter(token Token) (changed bool, prev Token) {
	prev = r.token
	if r.seen && token == r.token {
		return false, prev
	}
	r.token = token
	r.seen = true
	return true, prev
}

// spliceInto moves every rejected message to the front of q, keeping their
// stored order ahead of anything already queued. It returns the number of
// messages moved.
func (r *rejectSet) spliceInto(q *deque.Deque[Message]) int {
	n := r.items.Len()
	for r.items.Len() > 0 {
		q.PushFront(r.items.PopBack())
	}
	return n
}

func (r *rejectSet) drain() []Message {
	out := make([]Message, 0, r.items.Len())
	for r.items.Len() > 0 {
		out = append(out, r.items.PopFront())
	}
	return out
}
