package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via a Telegram bot.
// This keeps the polling logic independent of the bot library.
type Client interface {
	SendMessage(chatID string, text string, options *telebot.SendOptions) error
}
