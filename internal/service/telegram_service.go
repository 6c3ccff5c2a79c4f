package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
	"goal-board-api/internal/dto"
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/response"
)

const verificationCodeLength = 20

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Notifier sends a text message to a chat. The bot's transport client
// satisfies it; the HTTP binary may run without one.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramService defines the interface for chat-link business logic
type TelegramService interface {
	EnsureLink(ctx context.Context, chatID int64) (*domain.TelegramLink, error)
	RefreshCode(ctx context.Context, chatID int64) (*domain.TelegramLink, error)
	RedeemCode(ctx context.Context, actorID uuid.UUID, req *dto.VerifyTelegramRequest) (*dto.TelegramLinkResponse, error)
}

// telegramServiceImpl is the implementation of TelegramService
type telegramServiceImpl struct {
	linkRepo repository.TelegramLinkRepository
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewTelegramService creates a new instance of TelegramService.
// notifier may be nil; redemption then skips the chat confirmation.
func NewTelegramService(
	linkRepo repository.TelegramLinkRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) TelegramService {
	return &telegramServiceImpl{
		linkRepo: linkRepo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// EnsureLink returns the link for a chat, creating an unverified one on
// first contact
func (s *telegramServiceImpl) EnsureLink(ctx context.Context, chatID int64) (*domain.TelegramLink, error) {
	link, err := s.linkRepo.GetOrCreateByChatID(ctx, chatID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load telegram link", err.Error())
	}
	return link, nil
}

// RefreshCode rotates the verification code of an unverified chat.
// Verified chats keep no code; asking again is a validation error.
func (s *telegramServiceImpl) RefreshCode(ctx context.Context, chatID int64) (*domain.TelegramLink, error) {
	link, err := s.EnsureLink(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if link.IsVerified() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Chat is already verified", "")
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate verification code", err.Error())
	}
	link.VerificationCode = code
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store verification code", err.Error())
	}
	return link, nil
}

// RedeemCode binds an unverified chat to the redeeming web user. The
// code is single-use: it is cleared on success and a second redemption
// of the same code fails.
func (s *telegramServiceImpl) RedeemCode(ctx context.Context, actorID uuid.UUID, req *dto.VerifyTelegramRequest) (*dto.TelegramLinkResponse, error) {
	if actorID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}

	link, err := s.linkRepo.FindByCode(ctx, req.VerificationCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid verification code", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up verification code", err.Error())
	}
	if link.IsVerified() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Chat is already verified", "")
	}

	link.UserID = &actorID
	link.VerificationCode = ""
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify telegram link", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTelegramVerified()
	}
	s.logger.Info("Telegram chat verified",
		zap.Int64("chat_id", link.ChatID),
		zap.String("user_id", actorID.String()),
	)

	if s.notifier != nil {
		if err := s.notifier.SendMessage(ctx, link.ChatID, "You have been successfully verified"); err != nil {
			s.logger.Warn("Failed to send verification confirmation", zap.Error(err))
		}
	}

	return dto.ToTelegramLinkResponse(link), nil
}

// generateVerificationCode produces a random single-use code in the
// style of a 20-character alphanumeric token
func generateVerificationCode() (string, error) {
	code := make([]byte, verificationCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
