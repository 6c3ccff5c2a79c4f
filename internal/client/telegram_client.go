package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Chat identifies a Telegram conversation
type Chat struct {
	ID int64 `json:"id"`
}

// Message is an inbound or outbound Telegram message
type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// Update is one entry from getUpdates
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

// getUpdatesResponse is the Bot API envelope for getUpdates
type getUpdatesResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

// sendMessageResponse is the Bot API envelope for sendMessage
type sendMessageResponse struct {
	OK     bool     `json:"ok"`
	Result *Message `json:"result"`
}

// TelegramClient defines the two Bot API operations the bot depends
// on. Connection and polling details stay behind this interface.
type TelegramClient interface {
	GetUpdates(ctx context.Context, offset int, timeout int) ([]Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// telegramClient implements TelegramClient over the Bot HTTP API
type telegramClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTelegramClient creates a new Bot API client. baseURL is normally
// https://api.telegram.org and is overridable for tests.
func NewTelegramClient(baseURL, token string, logger *zap.Logger) TelegramClient {
	return &telegramClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			// long polling holds the request open up to the poll
			// timeout; leave headroom on top of it
			Timeout: 90 * time.Second,
		},
		logger: logger,
	}
}

// GetUpdates long-polls for new updates after the given offset
func (c *telegramClient) GetUpdates(ctx context.Context, offset int, timeout int) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("timeout", strconv.Itoa(timeout))

	var resp getUpdatesResponse
	if err := c.get(ctx, "getUpdates", params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("telegram getUpdates returned ok=false")
	}
	return resp.Result, nil
}

// SendMessage sends a text message to a chat
func (c *telegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)

	var resp sendMessageResponse
	if err := c.get(ctx, "sendMessage", params, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("telegram sendMessage returned ok=false")
	}
	return nil
}

// get performs one Bot API call and decodes the envelope
func (c *telegramClient) get(ctx context.Context, method string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s?%s", c.baseURL, c.token, method, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Unexpected status from telegram",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("telegram %s returned status %d", method, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode telegram %s response: %w", method, err)
	}
	return nil
}
