package handlers

import (
	telebot "gopkg.in/telebot.v3"
)

// Handler processes one bot update.
type Handler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler
