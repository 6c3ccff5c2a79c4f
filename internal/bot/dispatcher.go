package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-board-api/internal/client"
	"goal-board-api/internal/dto"
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/service"
)

// Dispatcher routes inbound chat messages through the guided
// goal-creation flow. All state lives in the ConversationStore keyed
// per (chat, user); handling for one chat is serialized by a keyed
// mutex so concurrent updates cannot corrupt a flow.
type Dispatcher struct {
	transport       client.TelegramClient
	store           ConversationStore
	locks           *KeyedMutex
	telegramService service.TelegramService
	boardService    service.BoardService
	categoryService service.CategoryService
	goalService     service.GoalService
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	transport client.TelegramClient,
	store ConversationStore,
	telegramService service.TelegramService,
	boardService service.BoardService,
	categoryService service.CategoryService,
	goalService service.GoalService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		transport:       transport,
		store:           store,
		locks:           NewKeyedMutex(),
		telegramService: telegramService,
		boardService:    boardService,
		categoryService: categoryService,
		goalService:     goalService,
		metrics:         m,
		logger:          logger,
	}
}

// HandleMessage processes one inbound message end to end
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *client.Message) {
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	unlock := d.locks.Lock(chatID)
	defer unlock()

	link, err := d.telegramService.EnsureLink(ctx, chatID)
	if err != nil {
		d.logger.Error("Failed to resolve telegram link",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	if !link.IsVerified() {
		d.handleUnverified(ctx, chatID)
		return
	}

	d.handleVerified(ctx, msg, link.ChatID, *link.UserID)
}

// handleUnverified answers every message from an unlinked chat with a
// fresh verification code. Unverified chats can hold no flow state.
func (d *Dispatcher) handleUnverified(ctx context.Context, chatID int64) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("unverified")
	}

	link, err := d.telegramService.RefreshCode(ctx, chatID)
	if err != nil {
		d.logger.Error("Failed to refresh verification code",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}

	d.send(ctx, chatID, "Hello! Link this chat to your account on the website to get started.")
	d.send(ctx, chatID, fmt.Sprintf("Your verification code: %s", link.VerificationCode))
}

func (d *Dispatcher) handleVerified(ctx context.Context, msg *client.Message, chatID int64, userID uuid.UUID) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/cancel"):
		d.handleCancel(ctx, chatID, userID)
	case strings.HasPrefix(text, "/create"):
		d.handleCreate(ctx, chatID, userID)
	case strings.HasPrefix(text, "/goals"):
		d.handleGoals(ctx, chatID, userID)
	case strings.HasPrefix(text, "/board"):
		d.handleBoards(ctx, chatID, userID)
	default:
		d.handleText(ctx, chatID, userID, text)
	}
}

// handleCancel resets the flow from any state and discards selections
func (d *Dispatcher) handleCancel(ctx context.Context, chatID int64, userID uuid.UUID) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("cancel")
	}
	if err := d.store.Delete(ctx, Key(chatID, userID)); err != nil {
		d.logger.Warn("Failed to clear conversation", zap.Error(err))
	}
	d.send(ctx, chatID, "Cancelled")
}

// handleCreate lists the user's open categories and starts the flow
func (d *Dispatcher) handleCreate(ctx context.Context, chatID int64, userID uuid.UUID) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("create")
	}

	categories, err := d.categoryService.ListOpenForUser(ctx, userID)
	if err != nil {
		d.logger.Error("Failed to list categories for bot", zap.Error(err))
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}
	if len(categories) == 0 {
		d.send(ctx, chatID, "No categories found, first create a category on the website for your goals")
		return
	}

	conv := &Conversation{
		ChatID: chatID,
		UserID: userID,
		State:  StateAwaitingCategory,
	}
	var listing strings.Builder
	listing.WriteString("Please choose a category for your new goal:\n")
	for i, category := range categories {
		conv.Options = append(conv.Options, CategoryOption{ID: category.ID, Title: category.Title})
		fmt.Fprintf(&listing, "%d: %s\n", i+1, category.Title)
	}

	if err := d.store.Put(ctx, Key(chatID, userID), conv); err != nil {
		d.logger.Error("Failed to store conversation", zap.Error(err))
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}
	d.send(ctx, chatID, listing.String())
}

// handleGoals lists the user's active goals
func (d *Dispatcher) handleGoals(ctx context.Context, chatID int64, userID uuid.UUID) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("goals")
	}

	goals, err := d.goalService.ListByAuthor(ctx, userID)
	if err != nil {
		d.logger.Error("Failed to list goals for bot", zap.Error(err))
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}
	if len(goals) == 0 {
		d.send(ctx, chatID, "No goals to display, create one with the /create command")
		return
	}

	var listing strings.Builder
	for _, goal := range goals {
		fmt.Fprintf(&listing, "%s [%s, %s]", goal.Title, goal.Status, goal.Priority)
		if goal.DueDate != nil {
			fmt.Fprintf(&listing, " due %s", goal.DueDate.Format("2006-01-02"))
		}
		listing.WriteString("\n")
	}
	d.send(ctx, chatID, listing.String())
}

// handleBoards lists the user's boards
func (d *Dispatcher) handleBoards(ctx context.Context, chatID int64, userID uuid.UUID) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("board")
	}

	boards, err := d.boardService.List(ctx, userID)
	if err != nil {
		d.logger.Error("Failed to list boards for bot", zap.Error(err))
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}
	if len(boards) == 0 {
		d.send(ctx, chatID, "You are not a participant of any board yet")
		return
	}

	var listing strings.Builder
	listing.WriteString("Your boards:\n")
	for _, board := range boards {
		fmt.Fprintf(&listing, "- %s\n", board.Title)
	}
	d.send(ctx, chatID, listing.String())
}

// handleText advances an in-progress flow, or rejects free text when
// no flow is active
func (d *Dispatcher) handleText(ctx context.Context, chatID int64, userID uuid.UUID, text string) {
	if d.metrics != nil {
		d.metrics.IncrementBotMessage("text")
	}

	key := Key(chatID, userID)
	conv, err := d.store.Get(ctx, key)
	if err != nil {
		d.logger.Error("Failed to load conversation", zap.Error(err))
		d.send(ctx, chatID, "Something went wrong, please try again later")
		return
	}

	switch {
	case conv == nil || conv.State == StateIdle:
		d.send(ctx, chatID, "Command not found")

	case conv.State == StateAwaitingCategory:
		d.chooseCategory(ctx, key, conv, text)

	case conv.State == StateAwaitingTitle:
		d.createGoal(ctx, key, conv, text)
	}
}

// chooseCategory matches the reply against the listed ordinals; any
// other input re-prompts without changing state
func (d *Dispatcher) chooseCategory(ctx context.Context, key string, conv *Conversation, text string) {
	ordinal, err := strconv.Atoi(text)
	if err != nil || ordinal < 1 || ordinal > len(conv.Options) {
		d.send(ctx, conv.ChatID, "Please reply with the number of one of the listed categories, or /cancel")
		return
	}

	chosen := conv.Options[ordinal-1]
	conv.Category = &chosen
	conv.State = StateAwaitingTitle
	if err := d.store.Put(ctx, key, conv); err != nil {
		d.logger.Error("Failed to store conversation", zap.Error(err))
		d.send(ctx, conv.ChatID, "Something went wrong, please try again later")
		return
	}
	d.send(ctx, conv.ChatID, fmt.Sprintf("You chose %s, now please enter a name for your goal", chosen.Title))
}

// createGoal takes any text as the title, creates the goal through the
// same lifecycle path the HTTP API uses, and resets the flow
func (d *Dispatcher) createGoal(ctx context.Context, key string, conv *Conversation, text string) {
	goal, err := d.goalService.Create(ctx, conv.UserID, &dto.CreateGoalRequest{
		CategoryID: conv.Category.ID,
		Title:      text,
	})
	if err != nil {
		d.logger.Error("Failed to create goal from bot",
			zap.Int64("chat_id", conv.ChatID),
			zap.Error(err),
		)
		d.send(ctx, conv.ChatID, "Could not create the goal, the category may no longer be available")
		if err := d.store.Delete(ctx, key); err != nil {
			d.logger.Warn("Failed to clear conversation", zap.Error(err))
		}
		return
	}

	if err := d.store.Delete(ctx, key); err != nil {
		d.logger.Warn("Failed to clear conversation", zap.Error(err))
	}
	d.send(ctx, conv.ChatID, fmt.Sprintf("Your goal %q has been created", goal.Title))
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if err := d.transport.SendMessage(ctx, chatID, text); err != nil {
		d.logger.Warn("Failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
