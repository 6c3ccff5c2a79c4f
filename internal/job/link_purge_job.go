package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"goal-board-api/internal/repository"
)

// LinkPurgeJob removes unverified telegram links that were never
// redeemed. A chat that talks to the bot again simply gets a new link
// and a new code.
type LinkPurgeJob struct {
	telegramLinkRepo repository.TelegramLinkRepository
	maxAge           time.Duration
	logger           *zap.Logger
}

// NewLinkPurgeJob creates a new LinkPurgeJob instance
func NewLinkPurgeJob(
	telegramLinkRepo repository.TelegramLinkRepository,
	maxAge time.Duration,
	logger *zap.Logger,
) *LinkPurgeJob {
	return &LinkPurgeJob{
		telegramLinkRepo: telegramLinkRepo,
		maxAge:           maxAge,
		logger:           logger,
	}
}

// Run executes the purge job
func (j *LinkPurgeJob) Run() {
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-j.maxAge)
	deleted, err := j.telegramLinkRepo.DeleteStaleUnverified(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge stale telegram links", zap.Error(err))
		return
	}

	if deleted > 0 {
		j.logger.Info("Purged stale telegram links",
			zap.Int64("count", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
}
