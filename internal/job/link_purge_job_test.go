package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goal-board-api/internal/bot"
	"goal-board-api/internal/database"
	"goal-board-api/internal/domain"
	"goal-board-api/internal/repository"
)

type mockLinkRepo struct {
	DeleteStaleUnverifiedFunc func(ctx context.Context, olderThan time.Time) (int64, error)
}

func (m *mockLinkRepo) GetOrCreateByChatID(ctx context.Context, chatID int64) (*domain.TelegramLink, error) {
	return nil, nil
}

func (m *mockLinkRepo) FindByCode(ctx context.Context, code string) (*domain.TelegramLink, error) {
	return nil, nil
}

func (m *mockLinkRepo) Update(ctx context.Context, link *domain.TelegramLink) error {
	return nil
}

func (m *mockLinkRepo) DeleteStaleUnverified(ctx context.Context, olderThan time.Time) (int64, error) {
	return m.DeleteStaleUnverifiedFunc(ctx, olderThan)
}

func TestLinkPurgeJob_CutoffTracksMaxAge(t *testing.T) {
	var cutoff time.Time
	repo := &mockLinkRepo{
		DeleteStaleUnverifiedFunc: func(ctx context.Context, olderThan time.Time) (int64, error) {
			cutoff = olderThan
			return 2, nil
		},
	}
	job := NewLinkPurgeJob(repo, 72*time.Hour, zap.NewNop())

	job.Run()

	want := time.Now().UTC().Add(-72 * time.Hour)
	assert.WithinDuration(t, want, cutoff, time.Minute)
}

func TestLinkPurgeJob_RepositoryErrorIsSwallowed(t *testing.T) {
	repo := &mockLinkRepo{
		DeleteStaleUnverifiedFunc: func(ctx context.Context, olderThan time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	job := NewLinkPurgeJob(repo, time.Hour, zap.NewNop())

	// cron keeps the schedule alive regardless of a failed run
	job.Run()
}

func TestLinkPurgeJob_AgainstSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	repo := repository.NewTelegramLinkRepository(db)
	ctx := context.Background()
	stale, err := repo.GetOrCreateByChatID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.TelegramLink{}).
		Where("id = ?", stale.ID).
		Update("updated_at", time.Now().UTC().Add(-100*time.Hour)).Error)

	NewLinkPurgeJob(repo, 72*time.Hour, zap.NewNop()).Run()

	var n int64
	require.NoError(t, db.Model(&domain.TelegramLink{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestConversationSweepJob(t *testing.T) {
	store := bot.NewMemoryStore(5 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "conversation:1:a", &bot.Conversation{ChatID: 1}))
	time.Sleep(10 * time.Millisecond)

	NewConversationSweepJob(store, zap.NewNop()).Run()

	conv, err := store.Get(ctx, "conversation:1:a")
	require.NoError(t, err)
	assert.Nil(t, conv)
}
