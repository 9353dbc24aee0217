package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/jverhelst/scorecast/internal/platform/logging"
)

const (
	defaultBaseURL = "https://discord.com/api/v10"
	maxBodyBytes   = 1 << 20
)

type NotifierConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	BotToken   string
	ChannelID  string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Notifier posts announcements to the community channel and reminders to
// user DMs through the Discord REST API.
type Notifier struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	channelID  string
	logger     *logging.Logger

	mu         sync.Mutex
	dmChannels map[string]string
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Notifier{
		httpClient: httpClient,
		baseURL:    baseURL,
		botToken:   strings.TrimSpace(cfg.BotToken),
		channelID:  strings.TrimSpace(cfg.ChannelID),
		logger:     logger,
		dmChannels: make(map[string]string),
	}
}

func (n *Notifier) SendChannelMessage(ctx context.Context, text string) error {
	if n.channelID == "" {
		return fmt.Errorf("announcement channel id is not configured")
	}
	return n.postMessage(ctx, n.channelID, text)
}

func (n *Notifier) SendDirectMessage(ctx context.Context, userID, text string) error {
	channelID, err := n.dmChannelFor(ctx, userID)
	if err != nil {
		return err
	}
	return n.postMessage(ctx, channelID, text)
}

// dmChannelFor opens (or reuses) the DM channel with the user. Channel
// ids are stable, so the lookup is cached per process.
func (n *Notifier) dmChannelFor(ctx context.Context, userID string) (string, error) {
	n.mu.Lock()
	channelID, ok := n.dmChannels[userID]
	n.mu.Unlock()
	if ok {
		return channelID, nil
	}

	payload := map[string]string{"recipient_id": userID}
	var created struct {
		ID string `json:"id"`
	}
	if err := n.doJSON(ctx, "/users/@me/channels", payload, &created); err != nil {
		return "", fmt.Errorf("open dm channel for user %s: %w", userID, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("open dm channel for user %s: empty channel id", userID)
	}

	n.mu.Lock()
	n.dmChannels[userID] = created.ID
	n.mu.Unlock()
	return created.ID, nil
}

func (n *Notifier) postMessage(ctx context.Context, channelID, text string) error {
	payload := map[string]string{"content": text}
	if err := n.doJSON(ctx, "/channels/"+channelID+"/messages", payload, nil); err != nil {
		return fmt.Errorf("post message to channel %s: %w", channelID, err)
	}
	return nil
}

func (n *Notifier) doJSON(ctx context.Context, path string, payload any, target any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.botToken != "" {
		req.Header.Set("Authorization", "Bot "+n.botToken)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if target != nil && len(raw) > 0 {
		if err := sonic.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
