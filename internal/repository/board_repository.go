package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goal-board-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	CreateWithOwner(ctx context.Context, board *domain.Board, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	SoftDeleteCascade(ctx context.Context, boardID uuid.UUID) error
	ReplaceParticipants(ctx context.Context, boardID, keepUserID uuid.UUID, roster []*domain.Participant, newTitle *string) error
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// CreateWithOwner creates a board together with its owner participant.
// The two inserts share one transaction; a board must never exist
// without its owner row.
func (r *boardRepositoryImpl) CreateWithOwner(ctx context.Context, board *domain.Board, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		owner := &domain.Participant{
			BoardID: board.ID,
			UserID:  ownerID,
			Role:    domain.RoleOwner,
		}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		board.Participants = []domain.Participant{*owner}
		return nil
	})
}

// FindByID finds a non-deleted board with its participants
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByUser finds all non-deleted boards the user participates in
func (r *boardRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND boards.is_deleted = ?", userID, false).
		Order("boards.title ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// SoftDeleteCascade marks the board deleted, marks every category under
// it deleted and archives every goal under those categories, all in one
// transaction so readers never observe a half-applied cascade.
func (r *boardRepositoryImpl) SoftDeleteCascade(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Board{}).
			Where("id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.GoalCategory{}).
			Where("board_id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Goal{}).
			Where("category_id IN (?)",
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&domain.GoalCategory{}).
					Select("id").
					Where("board_id = ?", boardID)).
			Where("status <> ?", domain.GoalStatusArchived).
			Update("status", domain.GoalStatusArchived).Error
	})
}

// ReplaceParticipants atomically swaps the board's roster. Every
// participant except keepUserID is removed, the new roster is inserted
// with duplicate (board, user) rows silently skipped, and the board
// title is updated when provided.
func (r *boardRepositoryImpl) ReplaceParticipants(ctx context.Context, boardID, keepUserID uuid.UUID, roster []*domain.Participant, newTitle *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("board_id = ? AND user_id <> ?", boardID, keepUserID).
			Delete(&domain.Participant{}).Error; err != nil {
			return err
		}
		if len(roster) > 0 {
			if err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
					DoNothing: true,
				}).
				Create(roster).Error; err != nil {
				return err
			}
		}
		if newTitle != nil {
			if err := tx.Model(&domain.Board{}).
				Where("id = ?", boardID).
				Update("title", *newTitle).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
