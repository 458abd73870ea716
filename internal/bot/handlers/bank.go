package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/catalog"
	"github.com/kartabot/kartabot/internal/state"
)

// NewBankHandler handles text while the flow awaits a bank selection. A match
// shows the offering details and asks for a contact or a web app hand-off;
// anything else falls through as a no-op.
func NewBankHandler(fsm state.StateMachine, cat *catalog.Catalog, kb *keyboard.Builder, webAppURL string, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		ctx := context.Background()
		session, err := fsm.GetState(ctx, sender.ID)
		if err != nil {
			if errors.Is(err, state.ErrStateNotFound) {
				return nil
			}
			log.Error("failed to fetch session", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return c.Send(MsgInternalError)
		}

		bank := strings.TrimSpace(c.Text())
		offering, ok := cat.Find(session.Country, bank)
		if !ok {
			return nil
		}

		err = fsm.TransitionTo(ctx, sender.ID, state.StateDetails, func(s *state.Session) {
			s.Bank = offering.Bank
		})
		if err != nil {
			log.Error("failed to store bank selection", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return c.Send(MsgInternalError)
		}

		details := offering.Details()
		if webAppURL != "" {
			err = c.Send(details+"\n\n"+MsgChooseAction, kb.WebAppOrder(webAppURL, offering.Country, offering.Bank))
		} else {
			err = c.Send(details)
		}
		if err != nil {
			return err
		}

		return c.Send(MsgLeaveContact, kb.Contact())
	}
}
