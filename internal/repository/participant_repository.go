package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Participant, error)
	FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*domain.Participant, error)
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// FindByBoardID finds all participants of a board
func (r *participantRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByBoardAndUser finds a participant record for a (board, user) pair
func (r *participantRepositoryImpl) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}
