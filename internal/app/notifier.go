// internal/app/notifier.go
package app

import (
	"context"
	"fmt"

	domainTelegram "homework_notification_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// DeliveryResult reports the outcome of a single send attempt.
type DeliveryResult struct {
	Delivered bool
	Err       error
}

// MessageSender delivers a notification text to the configured chat.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) DeliveryResult
}

// Notifier sends each message at most once; failures are logged and reported, never retried.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         string
	limiter        *rate.Limiter
	logger         logrus.FieldLogger
}

func NewNotifier(tc domainTelegram.Client, chatID string, ratePerSec float64, logger logrus.FieldLogger) *Notifier {
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		limiter:        rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:         logger,
	}
}

func (n *Notifier) SendMessage(ctx context.Context, text string) DeliveryResult {
	if err := n.limiter.Wait(ctx); err != nil {
		n.logger.WithError(err).Error("Message was not sent: rate limiter wait aborted")
		return DeliveryResult{Err: fmt.Errorf("rate limiter: %w", err)}
	}

	err := n.telegramClient.SendMessage(n.chatID, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault})
	if err != nil {
		n.logger.WithError(err).Errorf("Message was not sent to chat %s", n.chatID)
		return DeliveryResult{Err: err}
	}
	n.logger.Debugf("Message sent to chat %s", n.chatID)
	return DeliveryResult{Delivered: true}
}
