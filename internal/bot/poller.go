package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"goal-board-api/internal/client"
)

const pollTimeoutSeconds = 60

// Poller drives the dispatcher from the long-polling updates feed.
// Each update is confirmed by advancing the offset past its ID, so a
// crash re-delivers at most the batch in flight.
type Poller struct {
	transport  client.TelegramClient
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewPoller creates a new Poller
func NewPoller(transport client.TelegramClient, dispatcher *Dispatcher, logger *zap.Logger) *Poller {
	return &Poller{
		transport:  transport,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run polls for updates until the context is cancelled
func (p *Poller) Run(ctx context.Context) error {
	var offset int

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := p.transport.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("Failed to fetch updates, backing off", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			p.dispatcher.HandleMessage(ctx, update.Message)
		}
	}
}
