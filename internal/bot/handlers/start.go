package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/admin"
	"github.com/kartabot/kartabot/internal/bot/keyboard"
)

// NewStartHandler greets the user and, as a side effect, registers the chat
// of allow-listed operators so they start receiving lead notifications.
func NewStartHandler(registry *admin.Registry, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		chatID := sender.ID
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}

		if registry.Register(sender.Username, chatID) {
			log.Info("operator chat registered",
				slog.String("username", sender.Username),
				slog.Int64("chat_id", chatID),
			)
		}

		return c.Send(MsgGreeting, kb.MainMenu())
	}
}
