package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/domain"
	"goal-board-api/internal/dto"
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	Get(ctx context.Context, actorID, boardID uuid.UUID) (*dto.BoardResponse, error)
	List(ctx context.Context, actorID uuid.UUID) ([]*dto.BoardResponse, error)
	ReplaceParticipants(ctx context.Context, actorID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	Delete(ctx context.Context, actorID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo  repository.BoardRepository
	userRepo   repository.UserRepository
	authorizer auth.Authorizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	authorizer auth.Authorizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:  boardRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
		metrics:    m,
		logger:     logger,
	}
}

// Create creates a board and its owner participant in one transaction.
// The creator is always the owner; there is no other way to become one.
func (s *boardServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if actorID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	board := &domain.Board{Title: req.Title}
	if err := s.boardRepo.CreateWithOwner(ctx, board, actorID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", actorID.String()),
	)

	return dto.ToBoardResponse(board), nil
}

// Get returns a board the actor participates in
func (s *boardServiceImpl) Get(ctx context.Context, actorID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, auth.ActionRead, board); err != nil {
		return nil, err
	}
	return dto.ToBoardResponse(board), nil
}

// List returns every non-deleted board the actor participates in
func (s *boardServiceImpl) List(ctx context.Context, actorID uuid.UUID) ([]*dto.BoardResponse, error) {
	boards, err := s.boardRepo.FindByUser(ctx, actorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}
	resp := make([]*dto.BoardResponse, 0, len(boards))
	for _, board := range boards {
		resp = append(resp, dto.ToBoardResponse(board))
	}
	return resp, nil
}

// ReplaceParticipants atomically swaps the board roster. The acting
// owner is never removed through this path, and the owner role cannot
// be granted here; request validation rejects it before this point and
// the roster build below enforces it again.
func (s *boardServiceImpl) ReplaceParticipants(ctx context.Context, actorID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, auth.ActionWrite, board); err != nil {
		return nil, err
	}

	roster := make([]*domain.Participant, 0, len(req.Participants))
	for _, entry := range req.Participants {
		if entry.UserID == actorID {
			// roster replacement never touches the acting user's own row
			continue
		}
		if !entry.Role.Valid() || entry.Role == domain.RoleOwner {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid participant role", string(entry.Role))
		}
		roster = append(roster, &domain.Participant{
			BoardID: boardID,
			UserID:  entry.UserID,
			Role:    entry.Role,
		})
	}

	if err := s.assertUsersExist(ctx, roster); err != nil {
		return nil, err
	}

	if err := s.boardRepo.ReplaceParticipants(ctx, boardID, actorID, roster, req.Title); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	updated, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return dto.ToBoardResponse(updated), nil
}

// Delete soft-deletes the board and cascades to its categories and
// goals in one transaction. Owner only. Participants are retained.
func (s *boardServiceImpl) Delete(ctx context.Context, actorID, boardID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, auth.ActionWrite, board); err != nil {
		return err
	}

	if err := s.boardRepo.SoftDeleteCascade(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", boardID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

// assertUsersExist rejects roster entries referencing unknown accounts
func (s *boardServiceImpl) assertUsersExist(ctx context.Context, roster []*domain.Participant) error {
	if len(roster) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(roster))
	for _, p := range roster {
		ids = append(ids, p.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to look up users", err.Error())
	}
	known := make(map[uuid.UUID]struct{}, len(users))
	for _, u := range users {
		known[u.ID] = struct{}{}
	}
	for _, p := range roster {
		if _, ok := known[p.UserID]; !ok {
			return response.NewAppError(response.ErrCodeValidation, "Unknown participant", p.UserID.String())
		}
	}
	return nil
}

func (s *boardServiceImpl) findBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	return board, nil
}

func (s *boardServiceImpl) authorize(ctx context.Context, actorID uuid.UUID, action auth.Action, board *domain.Board) error {
	err := s.authorizer.CanPerform(ctx, actorID, action, board)
	if err != nil && errors.Is(err, auth.ErrPermissionDenied) && s.metrics != nil {
		s.metrics.IncrementPermissionDenied("board")
	}
	return err
}
