package cmd

import (
	"context"
	"fmt"
	"time"

	"crossfit-api/internal/data/repository"

	"go.uber.org/zap"
)

// CleanupSessions deletes session rows that expired before now.
// It is a maintenance task run out of band; requests only ever reject expired rows.
func CleanupSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) error {
	removed, err := sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}

	logger.Info("Expired sessions removed", zap.Int64("count", removed))
	return nil
}
