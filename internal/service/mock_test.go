package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/domain"
)

// Hand-rolled mocks with overridable function fields. Tests set only
// the calls they expect; anything else panics on a nil field.

type mockBoardRepo struct {
	CreateWithOwnerFunc     func(ctx context.Context, board *domain.Board, ownerID uuid.UUID) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserFunc          func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc              func(ctx context.Context, board *domain.Board) error
	SoftDeleteCascadeFunc   func(ctx context.Context, boardID uuid.UUID) error
	ReplaceParticipantsFunc func(ctx context.Context, boardID, keepUserID uuid.UUID, roster []*domain.Participant, newTitle *string) error
}

func (m *mockBoardRepo) CreateWithOwner(ctx context.Context, board *domain.Board, ownerID uuid.UUID) error {
	return m.CreateWithOwnerFunc(ctx, board, ownerID)
}

func (m *mockBoardRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBoardRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	return m.FindByUserFunc(ctx, userID)
}

func (m *mockBoardRepo) Update(ctx context.Context, board *domain.Board) error {
	return m.UpdateFunc(ctx, board)
}

func (m *mockBoardRepo) SoftDeleteCascade(ctx context.Context, boardID uuid.UUID) error {
	return m.SoftDeleteCascadeFunc(ctx, boardID)
}

func (m *mockBoardRepo) ReplaceParticipants(ctx context.Context, boardID, keepUserID uuid.UUID, roster []*domain.Participant, newTitle *string) error {
	return m.ReplaceParticipantsFunc(ctx, boardID, keepUserID, roster, newTitle)
}

// mockUserRepo treats every ID as a known account unless FindByIDsFunc
// is overridden
type mockUserRepo struct {
	FindByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc == nil {
		users := make([]*domain.User, 0, len(ids))
		for _, id := range ids {
			users = append(users, &domain.User{BaseModel: domain.BaseModel{ID: id}})
		}
		return users, nil
	}
	return m.FindByIDsFunc(ctx, ids)
}

type mockCategoryRepo struct {
	CreateFunc            func(ctx context.Context, category *domain.GoalCategory) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error)
	FindByBoardIDFunc     func(ctx context.Context, boardID uuid.UUID) ([]*domain.GoalCategory, error)
	FindOpenByUserFunc    func(ctx context.Context, userID uuid.UUID) ([]*domain.GoalCategory, error)
	UpdateFunc            func(ctx context.Context, category *domain.GoalCategory) error
	SoftDeleteCascadeFunc func(ctx context.Context, categoryID uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.GoalCategory) error {
	return m.CreateFunc(ctx, category)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCategoryRepo) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.GoalCategory, error) {
	return m.FindByBoardIDFunc(ctx, boardID)
}

func (m *mockCategoryRepo) FindOpenByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GoalCategory, error) {
	return m.FindOpenByUserFunc(ctx, userID)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *domain.GoalCategory) error {
	return m.UpdateFunc(ctx, category)
}

func (m *mockCategoryRepo) SoftDeleteCascade(ctx context.Context, categoryID uuid.UUID) error {
	return m.SoftDeleteCascadeFunc(ctx, categoryID)
}

type mockGoalRepo struct {
	CreateFunc             func(ctx context.Context, goal *domain.Goal) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	FindByCategoryIDFunc   func(ctx context.Context, categoryID uuid.UUID) ([]*domain.Goal, error)
	FindActiveByAuthorFunc func(ctx context.Context, authorID uuid.UUID) ([]*domain.Goal, error)
	UpdateFunc             func(ctx context.Context, goal *domain.Goal) error
	ArchiveFunc            func(ctx context.Context, goalID uuid.UUID) error
}

func (m *mockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	return m.CreateFunc(ctx, goal)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockGoalRepo) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Goal, error) {
	return m.FindByCategoryIDFunc(ctx, categoryID)
}

func (m *mockGoalRepo) FindActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Goal, error) {
	return m.FindActiveByAuthorFunc(ctx, authorID)
}

func (m *mockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	return m.UpdateFunc(ctx, goal)
}

func (m *mockGoalRepo) Archive(ctx context.Context, goalID uuid.UUID) error {
	return m.ArchiveFunc(ctx, goalID)
}

type mockCommentRepo struct {
	CreateFunc       func(ctx context.Context, comment *domain.GoalComment) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error)
	FindByGoalIDFunc func(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalComment, error)
	UpdateFunc       func(ctx context.Context, comment *domain.GoalComment) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.GoalComment) error {
	return m.CreateFunc(ctx, comment)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCommentRepo) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalComment, error) {
	return m.FindByGoalIDFunc(ctx, goalID)
}

func (m *mockCommentRepo) Update(ctx context.Context, comment *domain.GoalComment) error {
	return m.UpdateFunc(ctx, comment)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockTelegramLinkRepo struct {
	GetOrCreateByChatIDFunc   func(ctx context.Context, chatID int64) (*domain.TelegramLink, error)
	FindByCodeFunc            func(ctx context.Context, code string) (*domain.TelegramLink, error)
	UpdateFunc                func(ctx context.Context, link *domain.TelegramLink) error
	DeleteStaleUnverifiedFunc func(ctx context.Context, olderThan time.Time) (int64, error)
}

func (m *mockTelegramLinkRepo) GetOrCreateByChatID(ctx context.Context, chatID int64) (*domain.TelegramLink, error) {
	return m.GetOrCreateByChatIDFunc(ctx, chatID)
}

func (m *mockTelegramLinkRepo) FindByCode(ctx context.Context, code string) (*domain.TelegramLink, error) {
	return m.FindByCodeFunc(ctx, code)
}

func (m *mockTelegramLinkRepo) Update(ctx context.Context, link *domain.TelegramLink) error {
	return m.UpdateFunc(ctx, link)
}

func (m *mockTelegramLinkRepo) DeleteStaleUnverified(ctx context.Context, olderThan time.Time) (int64, error) {
	return m.DeleteStaleUnverifiedFunc(ctx, olderThan)
}

// mockAuthorizer allows everything unless a decision function is set
type mockAuthorizer struct {
	CanPerformFunc func(ctx context.Context, actorID uuid.UUID, action auth.Action, target interface{}) error
}

func (m *mockAuthorizer) CanPerform(ctx context.Context, actorID uuid.UUID, action auth.Action, target interface{}) error {
	if m.CanPerformFunc == nil {
		return nil
	}
	return m.CanPerformFunc(ctx, actorID, action, target)
}

func denyAll() *mockAuthorizer {
	return &mockAuthorizer{
		CanPerformFunc: func(ctx context.Context, actorID uuid.UUID, action auth.Action, target interface{}) error {
			return auth.ErrPermissionDenied
		},
	}
}

type mockNotifier struct {
	SendMessageFunc func(ctx context.Context, chatID int64, text string) error
	sent            []string
}

func (m *mockNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.sent = append(m.sent, text)
	if m.SendMessageFunc == nil {
		return nil
	}
	return m.SendMessageFunc(ctx, chatID, text)
}
