package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/catalog"
	"github.com/kartabot/kartabot/internal/state"
)

// NewCountryHandler handles text while the flow awaits a country selection.
// Unknown text re-prompts without a transition.
func NewCountryHandler(fsm state.StateMachine, cat *catalog.Catalog, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		country := strings.TrimSpace(c.Text())
		banks := cat.Banks(country)
		if len(banks) == 0 {
			return c.Send(MsgUnknownCountry)
		}

		ctx := context.Background()
		err := fsm.TransitionTo(ctx, sender.ID, state.StateBank, func(s *state.Session) {
			s.Country = country
		})
		if err != nil {
			log.Error("failed to store country selection", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return c.Send(MsgInternalError)
		}

		return c.Send(fmt.Sprintf(MsgChooseBank, country), kb.BankList(banks))
	}
}
