package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/catalog"
	"github.com/kartabot/kartabot/internal/state"
)

// Navigation handlers are routed before content matching in every non-idle
// state, so the user can always step back or leave the flow.

// NewBackToCountriesHandler returns the flow to the country step.
func NewBackToCountriesHandler(fsm state.StateMachine, cat *catalog.Catalog, kb *keyboard.Builder, log *slog.Logger) Handler {
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
			return nil
		}

		// Already at the country step: just repeat the prompt.
		if session.CurrentState != state.StateCountry {
			if err := fsm.TransitionTo(ctx, sender.ID, state.StateCountry, nil); err != nil {
				log.Error("failed to return to country step", slog.Int64("user_id", sender.ID), slog.Any("error", err))
				return c.Send(MsgInternalError)
			}
		}

		return c.Send(MsgChooseCountry, kb.List(cat.Countries()))
	}
}

// NewBackToBanksHandler returns the flow to the bank step for the stored
// country. Without a stored country there is nothing to go back to.
func NewBackToBanksHandler(fsm state.StateMachine, cat *catalog.Catalog, kb *keyboard.Builder, log *slog.Logger) Handler {
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
		if err != nil || session.Country == "" {
			return nil
		}

		if session.CurrentState != state.StateBank {
			if err := fsm.TransitionTo(ctx, sender.ID, state.StateBank, nil); err != nil {
				log.Error("failed to return to bank step", slog.Int64("user_id", sender.ID), slog.Any("error", err))
				return c.Send(MsgInternalError)
			}
		}

		return c.Send(fmt.Sprintf(MsgChooseBank, session.Country), kb.BankList(cat.Banks(session.Country)))
	}
}

// NewMainMenuHandler leaves the flow entirely, deleting the session.
func NewMainMenuHandler(fsm state.StateMachine, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		ctx := context.Background()
		if err := fsm.ClearState(ctx, sender.ID); err != nil && !errors.Is(err, state.ErrStateNotFound) {
			log.Error("failed to clear session", slog.Int64("user_id", sender.ID), slog.Any("error", err))
		}

		return c.Send(MsgMainMenu, kb.MainMenu())
	}
}
