package handlers

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/keyboard"
)

// NewMenuHandler reopens the main menu keyboard.
func NewMenuHandler(kb *keyboard.Builder) Handler {
	return func(c telebot.Context) error {
		return c.Send(MsgMenuOpened, kb.MainMenu())
	}
}

// NewHideMenuHandler removes the reply keyboard.
func NewHideMenuHandler(kb *keyboard.Builder) Handler {
	return func(c telebot.Context) error {
		return c.Send(MsgMenuHidden, kb.Remove())
	}
}
