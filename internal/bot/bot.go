package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tour-manager/pkg/logger"
)

type Config struct {
	Token string
	// APIEndpoint is a tgbotapi endpoint template; empty means Telegram.
	APIEndpoint string
	Timeout     time.Duration
}

// Bot delivers guide notifications through the Telegram Bot API.
type Bot struct {
	API *tgbotapi.BotAPI
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Bot, error) {
	if log == nil {
		log = zap.NewNop()
	}

	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Info("Authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{API: api, log: log}, nil
}

// Send delivers text to the chat identified by handle and reports success.
// Numeric handles are chat ids, anything else is treated as @username.
func (b *Bot) Send(ctx context.Context, handle, text string) bool {
	handle = strings.TrimSpace(handle)
	log := b.log.With(zap.String(logger.FieldHandle, handle))
	if handle == "" {
		log.Warn("Skipping message without recipient")
		return false
	}

	msg := newMessage(handle, text)
	msg.ParseMode = tgbotapi.ModeHTML

	done := make(chan error, 1)
	go func() {
		_, err := b.API.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Warn("Failed to deliver message", zap.Error(err))
			return false
		}
		return true
	case <-ctx.Done():
		log.Warn("Message delivery timed out", zap.Error(ctx.Err()))
		return false
	}
}

func newMessage(handle, text string) tgbotapi.MessageConfig {
	if chatID, err := strconv.ParseInt(handle, 10, 64); err == nil {
		return tgbotapi.NewMessage(chatID, text)
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return tgbotapi.NewMessageToChannel(handle, text)
}

// LogNotifier stands in for Bot when no token is configured. It records the
// message and reports every delivery as failed.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, handle, text string) bool {
	n.log.Warn("Telegram bot token is not configured, message not sent",
		zap.String(logger.FieldHandle, handle),
		zap.String("text", text),
	)
	return false
}
