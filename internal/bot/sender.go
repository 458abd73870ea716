package bot

import (
	"context"

	telebot "gopkg.in/telebot.v3"
)

// TelebotSender adapts telebot.Bot to the lead dispatch contract.
type TelebotSender struct {
	bot *telebot.Bot
}

// NewTelebotSender wraps the bot for outbound operator notifications.
func NewTelebotSender(bot *telebot.Bot) *TelebotSender {
	return &TelebotSender{bot: bot}
}

// Send delivers a plain text message to the given chat.
func (s *TelebotSender) Send(_ context.Context, chatID int64, text string) error {
	_, err := s.bot.Send(telebot.ChatID(chatID), text)
	return err
}
