package sink

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
)

// TelegramSender is the part of *tgbotapi.BotAPI the sink needs
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends final snapshots to a chat, never faster than minInterval
type Telegram struct {
	bot         TelegramSender
	chatID      int64
	minInterval time.Duration

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegram connects a bot with token
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgTelegramInit, err)
	}
	bot.Debug = false
	return NewTelegramWithSender(bot, chatID, TelegramMinInterval), nil
}

// NewTelegramWithSender creates a sink on an existing sender
func NewTelegramWithSender(bot TelegramSender, chatID int64, minInterval time.Duration) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, minInterval: minInterval}
}

func (t *Telegram) Name() string { return NameTelegram }

// Accept sends final snapshots and skips the rest
func (t *Telegram) Accept(ctx context.Context, snap domain.RewardSnapshot) error {
	if !snap.Final {
		return ErrSkipped
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if wait := time.Until(t.lastSend.Add(t.minInterval)); wait > 0 {
		logger.FromContext(ctx).Debug(LogMsgTelegramWaiting, "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	msg := tgbotapi.NewMessage(t.chatID, telegramText(snap))
	_, err := t.bot.Send(msg)
	t.lastSend = time.Now()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgTelegramSendFailed, err)
	}
	return nil
}

func telegramText(snap domain.RewardSnapshot) string {
	var b strings.Builder
	b.WriteString("Relic rewards\n")
	for i, r := range snap.RelicRewards {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, nameLabel(r), priceLabel(r))
	}
	if best := snap.Best(); best != nil {
		fmt.Fprintf(&b, "Best pick: %s", best.Item.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}
