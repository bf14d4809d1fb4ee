// Package service holds the directory business logic: input validation,
// authorization rules and event publishing on top of the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"
)

// publishErr logs a failed event publication. Publishing never fails the
// operation that triggered it.
func publishErr(ctx context.Context, logger *slog.Logger, topic string, err error) {
	if err == nil {
		return
	}
	logger.ErrorContext(ctx, "failed to publish event",
		slog.String("topic", topic),
		slog.String("error", err.Error()),
	)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
