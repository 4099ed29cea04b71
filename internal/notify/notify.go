// Package notify delivers operational messages (log mirror, daily digest) to
// a Telegram chat. Send-only: the bot never polls for updates.
package notify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	logx "postpilot/pkg/logx"
)

type Config struct {
	Token  string
	ChatID int64
	// Timeout bounds each send. Defaults to 10s.
	Timeout time.Duration
}

// Telegram implements logx.Sender on top of telebot.
type Telegram struct {
	bot    *tele.Bot
	chatID int64
	log    logx.Logger
}

// NewTelegram builds the sender. Returns (nil, nil) when no token is
// configured, so callers can treat the ops channel as strictly optional.
func NewTelegram(cfg Config, log logx.Logger) (*Telegram, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, nil
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("notify: chat_id is required when token is set")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: cfg.ChatID, log: log}, nil
}

// SendText delivers one message. Satisfies logx.Sender.
func (t *Telegram) SendText(ctx context.Context, text string) error {
	if t == nil || t.bot == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := t.bot.Send(tele.ChatID(t.chatID), text, &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	if err != nil {
		t.log.Debug("telegram send failed", logx.Err(err))
	}
	return err
}
