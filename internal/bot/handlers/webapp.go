package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/lead"
)

// NewWebAppHandler accepts a lead submitted through the mini app's
// web_app_data channel. The payload arrives as a JSON string; a malformed
// one is dropped without a user-visible reply, Telegram shows no error
// surface for web app data anyway. The session is left untouched: the mini
// app flow is independent of the chat flow.
func NewWebAppHandler(notifier lead.Notifier, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		msg := c.Message()
		if sender == nil || msg == nil || msg.WebAppData == nil {
			return nil
		}

		var payload lead.Payload
		if err := json.Unmarshal([]byte(msg.WebAppData.Data), &payload); err != nil {
			log.Debug("dropping malformed web app payload",
				slog.Int64("user_id", sender.ID),
				slog.Any("error", err),
			)
			return nil
		}

		l := payload.ToLead(lead.SourceWebApp)
		if l.Name == "" {
			l.Name = strings.TrimSpace(sender.FirstName + " " + sender.LastName)
		}
		if l.Username == "" {
			l.Username = sender.Username
		}

		notified, _ := notifier.Dispatch(context.Background(), l)
		if !notified {
			return c.Send(MsgNoAdmins, kb.MainMenu())
		}

		return c.Send(MsgLeadSent, kb.MainMenu())
	}
}
