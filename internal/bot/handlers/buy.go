package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/catalog"
	"github.com/kartabot/kartabot/internal/state"
)

// NewBuyHandler starts the ordering flow. A returning user's session is
// overwritten wholesale: /buy always restarts from the country step.
func NewBuyHandler(fsm state.StateMachine, cat *catalog.Catalog, kb *keyboard.Builder, webAppURL string, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			log.Warn("buy handler invoked without sender")
			return nil
		}

		countries := cat.Countries()
		if len(countries) == 0 {
			return c.Send(MsgCatalogUnavailable, kb.MainMenu())
		}

		ctx := context.Background()
		if err := fsm.SetState(ctx, sender.ID, state.StateCountry); err != nil {
			log.Error("failed to start ordering flow", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return c.Send(MsgInternalError)
		}

		if webAppURL != "" {
			if err := c.Send(MsgOpenWebApp, kb.WebAppOpen(webAppURL)); err != nil {
				return err
			}
		}

		return c.Send(MsgChooseCountry, kb.List(countries))
	}
}
