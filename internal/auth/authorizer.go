package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/response"
)

// Action is the kind of access being requested on a target entity
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// ErrPermissionDenied is returned when the actor is known but lacks the
// role the action requires on the target's board
var ErrPermissionDenied = response.NewAppError(response.ErrCodeForbidden, "Permission denied", "")

// Authorizer decides whether an actor may perform an action on a
// target entity. One entry point serves every transport; the HTTP
// handlers and the bot dispatcher consult the same rule table.
type Authorizer interface {
	CanPerform(ctx context.Context, actorID uuid.UUID, action Action, target interface{}) error
}

// authorizerImpl is the implementation of Authorizer
type authorizerImpl struct {
	participantRepo repository.ParticipantRepository
	categoryRepo    repository.CategoryRepository
	goalRepo        repository.GoalRepository
}

// NewAuthorizer creates a new instance of Authorizer
func NewAuthorizer(
	participantRepo repository.ParticipantRepository,
	categoryRepo repository.CategoryRepository,
	goalRepo repository.GoalRepository,
) Authorizer {
	return &authorizerImpl{
		participantRepo: participantRepo,
		categoryRepo:    categoryRepo,
		goalRepo:        goalRepo,
	}
}

// CanPerform evaluates the rule table in order:
//  1. an unknown actor is always denied
//  2. read on any target needs any participant record on its board
//  3. write on a board needs the owner role
//  4. write on a category or goal needs owner or writer
//  5. write on a comment needs authorship only; board role is not
//     consulted once the comment exists
//
// Returns nil on allow, ErrPermissionDenied on deny, or a lookup error.
func (a *authorizerImpl) CanPerform(ctx context.Context, actorID uuid.UUID, action Action, target interface{}) error {
	if actorID == uuid.Nil {
		return ErrPermissionDenied
	}

	// Comment mutation is the one authorship-gated path
	if comment, ok := target.(*domain.GoalComment); ok && action == ActionWrite {
		if comment.AuthorID == actorID {
			return nil
		}
		return ErrPermissionDenied
	}

	boardID, err := a.boardIDOf(ctx, target)
	if err != nil {
		return err
	}

	role, err := a.roleOn(ctx, boardID, actorID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrPermissionDenied
	}

	if action == ActionRead {
		return nil
	}

	switch target.(type) {
	case *domain.Board:
		if *role == domain.RoleOwner {
			return nil
		}
	case *domain.GoalCategory, *domain.Goal:
		if role.CanWriteGoals() {
			return nil
		}
	}
	return ErrPermissionDenied
}

// boardIDOf resolves the owning board of any target entity
func (a *authorizerImpl) boardIDOf(ctx context.Context, target interface{}) (uuid.UUID, error) {
	switch t := target.(type) {
	case *domain.Board:
		return t.ID, nil
	case *domain.GoalCategory:
		return t.BoardID, nil
	case *domain.Goal:
		category, err := a.categoryRepo.FindByID(ctx, t.CategoryID)
		if err != nil {
			return uuid.Nil, err
		}
		return category.BoardID, nil
	case *domain.GoalComment:
		goal, err := a.goalRepo.FindByID(ctx, t.GoalID)
		if err != nil {
			return uuid.Nil, err
		}
		category, err := a.categoryRepo.FindByID(ctx, goal.CategoryID)
		if err != nil {
			return uuid.Nil, err
		}
		return category.BoardID, nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported authorization target %T", target)
	}
}

// roleOn returns the actor's role on the board, or nil when the actor
// is not a participant
func (a *authorizerImpl) roleOn(ctx context.Context, boardID, actorID uuid.UUID) (*domain.Role, error) {
	participant, err := a.participantRepo.FindByBoardAndUser(ctx, boardID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant.Role, nil
}
