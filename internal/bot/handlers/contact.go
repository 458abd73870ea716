package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/lead"
	"github.com/kartabot/kartabot/internal/state"
)

// NewContactHandler completes the ordering flow from a shared contact. The
// lead carries whatever country and bank the session holds; a contact shared
// outside the flow still produces a lead, just without selections.
func NewContactHandler(fsm state.StateMachine, notifier lead.Notifier, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		msg := c.Message()
		if sender == nil || msg == nil || msg.Contact == nil {
			return nil
		}

		ctx := context.Background()

		l := lead.New(lead.SourceContact)
		l.Phone = strings.TrimSpace(msg.Contact.PhoneNumber)
		l.Name = strings.TrimSpace(msg.Contact.FirstName + " " + msg.Contact.LastName)
		l.Username = sender.Username

		if session, err := fsm.GetState(ctx, sender.ID); err == nil {
			l.Country = session.Country
			l.Bank = session.Bank
		}

		notified, _ := notifier.Dispatch(ctx, l)

		if err := fsm.ClearState(ctx, sender.ID); err != nil && !errors.Is(err, state.ErrStateNotFound) {
			log.Error("failed to clear session after lead", slog.Int64("user_id", sender.ID), slog.Any("error", err))
		}

		if !notified {
			return c.Send(MsgNoAdmins, kb.MainMenu())
		}

		return c.Send(MsgLeadSentContact, kb.MainMenu())
	}
}
