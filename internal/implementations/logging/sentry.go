package logging

import (
	"context"
	"postboard/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
)

// SentryLogger reports error level records to Sentry and passes every record
// on to the inner logger.
type SentryLogger struct {
	logging.Logger
	hub *sentry.Hub
}

func WithSentry(inner logging.Logger, hub *sentry.Hub) *SentryLogger {
	return &SentryLogger{Logger: inner, hub: hub}
}

func (l *SentryLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.Logger.Error(ctx, msg, entries...)

	hub := l.hub
	if ctxHub := sentry.GetHubFromContext(ctx); ctxHub != nil {
		hub = ctxHub
	}
	// A clone owns its scope, concurrent records must not share extras.
	hub = hub.Clone()
	scope := hub.Scope()

	var err error
	for _, entry := range entries {
		if e, ok := entry.Value.(error); ok && err == nil {
			err = e
			continue
		}
		scope.SetExtra(entry.Key, entry.Value)
	}
	if err == nil {
		hub.CaptureMessage(msg)
		return
	}
	scope.SetExtra("message", msg)
	hub.CaptureException(err)
}
