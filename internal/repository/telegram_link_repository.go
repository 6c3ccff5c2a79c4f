package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goal-board-api/internal/domain"
)

// TelegramLinkRepository defines the interface for telegram link data access
type TelegramLinkRepository interface {
	GetOrCreateByChatID(ctx context.Context, chatID int64) (*domain.TelegramLink, error)
	FindByCode(ctx context.Context, code string) (*domain.TelegramLink, error)
	Update(ctx context.Context, link *domain.TelegramLink) error
	DeleteStaleUnverified(ctx context.Context, olderThan time.Time) (int64, error)
}

// telegramLinkRepositoryImpl is the GORM implementation of TelegramLinkRepository
type telegramLinkRepositoryImpl struct {
	db *gorm.DB
}

// NewTelegramLinkRepository creates a new instance of TelegramLinkRepository
func NewTelegramLinkRepository(db *gorm.DB) TelegramLinkRepository {
	return &telegramLinkRepositoryImpl{db: db}
}

// GetOrCreateByChatID returns the link for the chat, creating an
// unverified one on first contact. The insert ignores the unique
// conflict so two racing first messages converge on a single row.
func (r *telegramLinkRepositoryImpl) GetOrCreateByChatID(ctx context.Context, chatID int64) (*domain.TelegramLink, error) {
	var link domain.TelegramLink
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		First(&link).Error
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link = domain.TelegramLink{ChatID: chatID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoNothing: true,
		}).
		Create(&link).Error; err != nil {
		return nil, err
	}

	// Re-read to cover the conflict-skipped case
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByCode finds a link by its verification code
func (r *telegramLinkRepositoryImpl) FindByCode(ctx context.Context, code string) (*domain.TelegramLink, error) {
	var link domain.TelegramLink
	if err := r.db.WithContext(ctx).
		Where("verification_code = ?", code).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Update updates a link
func (r *telegramLinkRepositoryImpl) Update(ctx context.Context, link *domain.TelegramLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

// DeleteStaleUnverified removes unverified links whose last activity is
// older than the cutoff. Verified links are kept forever.
func (r *telegramLinkRepositoryImpl) DeleteStaleUnverified(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id IS NULL AND updated_at < ?", olderThan).
		Delete(&domain.TelegramLink{})
	return result.RowsAffected, result.Error
}
