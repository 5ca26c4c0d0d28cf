package csp

import (
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// OnPanic is called when a process' run logic panics.
type OnPanic func(recovered any, stack []byte)

type Options struct {
	// ID names the process in logs and metrics. Defaults to "proc-<nanoid>".
	ID      string
	Logger  *slog.Logger
	Metrics ProcessMetrics
	OnPanic OnPanic
}

func (o Options) withDefaults() Options {
	if o.ID == "" {
		o.ID = "proc-" + gonanoid.Must(8)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	o.Logger = o.Logger.With(slog.String("process", o.ID))
	if o.Metrics == nil {
		o.Metrics = NopProcessMetrics()
	}
	if o.OnPanic == nil {
		log := o.Logger
		o.OnPanic = func(recovered any, stack []byte) {
			log.Error("process panicked", slog.Any("recovered", recovered), slog.String("stack", string(stack)))
		}
	}
	return o
}
