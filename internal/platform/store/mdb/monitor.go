package mdb

import (
	"context"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// Monitor logs finished commands through zerolog, mirroring the pg query tracer
// commands at or above slowMs log at warn
func Monitor(root logger.Logger, slowMs int) *event.CommandMonitor {
	log := root.Level(zerolog.DebugLevel).With().Str("component", "mongo").Logger()
	slow := time.Duration(slowMs) * time.Millisecond

	finished := func(ctx context.Context, e event.CommandFinishedEvent) *zerolog.Event {
		evt := log.Info()
		if slowMs > 0 && e.Duration >= slow {
			evt = log.Warn().Bool("slow", true)
		}
		if id := logger.RequestID(ctx); id != "" {
			evt = evt.Str("request_id", id)
		}
		return evt.
			Str("cmd", e.CommandName).
			Str("db", e.DatabaseName).
			Float64("elapsed_ms", float64(e.Duration.Microseconds())/1000.0)
	}

	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			finished(ctx, e.CommandFinishedEvent).Msg("mongo command")
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			finished(ctx, e.CommandFinishedEvent).Interface("failure", e.Failure).Msg("mongo command failed")
		},
	}
}
