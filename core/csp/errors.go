package csp

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the process was started before.
	ErrAlreadyStarted = errors.New("process already started")
	// ErrClosed is returned by Start when the process was closed.
	ErrClosed = errors.New("process closed")
)
