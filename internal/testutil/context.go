// Package testutil provides fakes shared by handler and router tests.
package testutil

import (
	telebot "gopkg.in/telebot.v3"
)

// SentMessage captures one outbound Send call.
type SentMessage struct {
	What interface{}
	Opts []interface{}
}

// FakeContext implements the telebot.Context methods handlers touch and
// records everything sent. Unimplemented interface methods panic, which is
// exactly what a test should do when a handler starts using them.
type FakeContext struct {
	telebot.Context

	User    *telebot.User
	ChatRef *telebot.Chat
	Msg     *telebot.Message
	Body    string

	Sent []SentMessage
}

// NewFakeContext builds a context for a plain text update from the given user.
func NewFakeContext(userID int64, text string) *FakeContext {
	user := &telebot.User{ID: userID}
	return &FakeContext{
		User:    user,
		ChatRef: &telebot.Chat{ID: userID},
		Msg:     &telebot.Message{Sender: user, Text: text},
		Body:    text,
	}
}

func (c *FakeContext) Sender() *telebot.User { return c.User }

func (c *FakeContext) Chat() *telebot.Chat { return c.ChatRef }

func (c *FakeContext) Message() *telebot.Message { return c.Msg }

func (c *FakeContext) Text() string { return c.Body }

func (c *FakeContext) Callback() *telebot.Callback { return nil }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, SentMessage{What: what, Opts: opts})
	return nil
}

// LastText returns the text of the most recent Send, or an empty string.
func (c *FakeContext) LastText() string {
	for i := len(c.Sent) - 1; i >= 0; i-- {
		if s, ok := c.Sent[i].What.(string); ok {
			return s
		}
	}

	return ""
}

// SentTexts returns every string payload sent through the context in order.
func (c *FakeContext) SentTexts() []string {
	texts := make([]string, 0, len(c.Sent))
	for _, sent := range c.Sent {
		if s, ok := sent.What.(string); ok {
			texts = append(texts, s)
		}
	}

	return texts
}
