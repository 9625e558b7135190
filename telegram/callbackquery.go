// Copyright (c) 2024 RoseLoverX

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type (
	// CallbackQuery is the packed form of a callback query handed to
	// callback handlers.
	CallbackQuery struct {
		*tgbotapi.CallbackQuery
		Command Command
	}

	// Requester is the part of tgbotapi.BotAPI used by the reply helpers.
	Requester interface {
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}
)

func packCallbackQuery(q *tgbotapi.CallbackQuery, sep rune) *CallbackQuery {
	return &CallbackQuery{
		CallbackQuery: q,
		Command:       ParseCommand(q.Data, sep),
	}
}

// Answer acknowledges the query, optionally showing text to the user.
func (b *CallbackQuery) Answer(api Requester, text string) error {
	if _, err := api.Request(tgbotapi.NewCallback(b.ID, text)); err != nil {
		return errors.Wrap(err, "answering callback query")
	}
	return nil
}

// Alert acknowledges the query with a modal alert.
func (b *CallbackQuery) Alert(api Requester, text string) error {
	if _, err := api.Request(tgbotapi.NewCallbackWithAlert(b.ID, text)); err != nil {
		return errors.Wrap(err, "answering callback query")
	}
	return nil
}

func (b *CallbackQuery) SenderID() int64 {
	if b.From != nil {
		return b.From.ID
	}
	return 0
}

func (b *CallbackQuery) ChatID() int64 {
	if b.Message != nil && b.Message.Chat != nil {
		return b.Message.Chat.ID
	}
	return 0
}

func (b *CallbackQuery) MessageID() int {
	if b.Message != nil {
		return b.Message.MessageID
	}
	return 0
}

// Edit replaces the text of the message the pressed button belongs to.
func (b *CallbackQuery) Edit(api Requester, text string) error {
	if b.Message == nil {
		return errors.New("callback query has no message to edit")
	}
	if _, err := api.Request(tgbotapi.NewEditMessageText(b.ChatID(), b.MessageID(), text)); err != nil {
		return errors.Wrap(err, "editing callback message")
	}
	return nil
}
