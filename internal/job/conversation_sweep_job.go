package job

import (
	"go.uber.org/zap"

	"goal-board-api/internal/bot"
)

// ConversationSweepJob evicts expired conversations from the in-memory
// store. The Redis store expires keys on its own and needs no sweeping.
type ConversationSweepJob struct {
	store  *bot.MemoryStore
	logger *zap.Logger
}

// NewConversationSweepJob creates a new ConversationSweepJob instance
func NewConversationSweepJob(store *bot.MemoryStore, logger *zap.Logger) *ConversationSweepJob {
	return &ConversationSweepJob{
		store:  store,
		logger: logger,
	}
}

// Run executes the sweep
func (j *ConversationSweepJob) Run() {
	evicted := j.store.Sweep()
	if evicted > 0 {
		j.logger.Info("Evicted expired conversations", zap.Int("count", evicted))
	}
}
