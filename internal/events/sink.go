package events

import (
	"context"
	"errors"

	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

// FanOut emits every event to all sinks and joins their errors.
type FanOut []model.EventSink

func (f FanOut) Emit(ctx context.Context, event model.TokenEvent) error {
	var errs []error
	for _, s := range f {
		if err := s.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes events to the application log.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(_ context.Context, event model.TokenEvent) error {
	args := []any{
		"event_id", event.ID,
		"type", string(event.Type),
		"principal_id", event.PrincipalID,
		"occurred_at", event.OccurredAt,
	}
	if event.Reason != "" {
		args = append(args, "reason", event.Reason)
	}

	if event.Type == model.EventTokenReuseDetected {
		s.logger.Warn("Audit: token event", args...)
		return nil
	}
	s.logger.Info("Audit: token event", args...)
	return nil
}
