package events

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LogSessionEvents attaches the default subscriber: session events are
// written to the audit log, so the channel always has at least one
// consumer.
func LogSessionEvents(lc fx.Lifecycle, bus *Bus, log *zap.Logger) {
	ch := bus.Subscribe()
	quit := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go logSessions(ch, quit, log.Named("events"))
			return nil
		},
		OnStop: func(context.Context) error {
			close(quit)
			return nil
		},
	})
}

var Module = fx.Module("events",
	fx.Provide(NewBus),
	fx.Invoke(LogSessionEvents),
)
