package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

const collectInterval = 60 * time.Second

// BusinessMetricsCollector keeps the boards_total and
// goals_active_total gauges in sync with the database.
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	done    chan struct{}
}

func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start refreshes the gauges once immediately and then every minute
// until Stop is called.
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(collectInterval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				c.collect()
			}
		}
	}()
}

func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if count, err := c.countLiveBoards(ctx); err != nil {
		c.logger.Error("Failed to count boards", zap.Error(err))
	} else {
		c.metrics.SetBoardsTotal(count)
	}

	if count, err := c.countActiveGoals(ctx); err != nil {
		c.logger.Error("Failed to count active goals", zap.Error(err))
	} else {
		c.metrics.SetGoalsActiveTotal(count)
	}
}

func (c *BusinessMetricsCollector) countLiveBoards(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&domain.Board{}).
		Where("is_deleted = ?", false).
		Count(&n).Error
	return n, err
}

func (c *BusinessMetricsCollector) countActiveGoals(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&domain.Goal{}).
		Where("status <> ?", domain.GoalStatusArchived).
		Count(&n).Error
	return n, err
}
