// Copyright (c) 2024 RoseLoverX

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateKind identifies which field of a tgbotapi.Update is populated.
type UpdateKind int

const (
	UnknownUpdate UpdateKind = iota
	MessageUpdate
	EditedMessageUpdate
	ChannelPostUpdate
	EditedChannelPostUpdate
	CallbackQueryUpdate
	InlineQueryUpdate
	ChosenInlineResultUpdate
	PreCheckoutQueryUpdate
	ShippingQueryUpdate
)

var updateKindNames = map[UpdateKind]string{
	UnknownUpdate:            "unknown",
	MessageUpdate:            "message",
	EditedMessageUpdate:      "edited_message",
	ChannelPostUpdate:        "channel_post",
	EditedChannelPostUpdate:  "edited_channel_post",
	CallbackQueryUpdate:      "callback_query",
	InlineQueryUpdate:        "inline_query",
	ChosenInlineResultUpdate: "chosen_inline_result",
	PreCheckoutQueryUpdate:   "pre_checkout_query",
	ShippingQueryUpdate:      "shipping_query",
}

func (k UpdateKind) String() string {
	if name, ok := updateKindNames[k]; ok {
		return name
	}
	return updateKindNames[UnknownUpdate]
}

// IsText reports whether the kind carries a *tgbotapi.Message.
func (k UpdateKind) IsText() bool {
	switch k {
	case MessageUpdate, EditedMessageUpdate, ChannelPostUpdate, EditedChannelPostUpdate:
		return true
	}
	return false
}

// KindOf classifies an update. Updates the dispatcher does not route
// (polls, chat member changes, ...) are UnknownUpdate.
func KindOf(u *tgbotapi.Update) UpdateKind {
	switch {
	case u == nil:
		return UnknownUpdate
	case u.Message != nil:
		return MessageUpdate
	case u.EditedMessage != nil:
		return EditedMessageUpdate
	case u.ChannelPost != nil:
		return ChannelPostUpdate
	case u.EditedChannelPost != nil:
		return EditedChannelPostUpdate
	case u.CallbackQuery != nil:
		return CallbackQueryUpdate
	case u.InlineQuery != nil:
		return InlineQueryUpdate
	case u.ChosenInlineResult != nil:
		return ChosenInlineResultUpdate
	case u.PreCheckoutQuery != nil:
		return PreCheckoutQueryUpdate
	case u.ShippingQuery != nil:
		return ShippingQueryUpdate
	}
	return UnknownUpdate
}

// MessageOf returns the message carried by a text-bearing update.
func MessageOf(u *tgbotapi.Update) *tgbotapi.Message {
	if u == nil {
		return nil
	}
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	}
	return nil
}

// SenderOf returns the user the update originates from, or nil when the
// platform does not report one (anonymous channel posts).
func SenderOf(u *tgbotapi.Update) *tgbotapi.User {
	switch KindOf(u) {
	case MessageUpdate, EditedMessageUpdate, ChannelPostUpdate, EditedChannelPostUpdate:
		return MessageOf(u).From
	case CallbackQueryUpdate:
		return u.CallbackQuery.From
	case InlineQueryUpdate:
		return u.InlineQuery.From
	case ChosenInlineResultUpdate:
		return u.ChosenInlineResult.From
	case PreCheckoutQueryUpdate:
		return u.PreCheckoutQuery.From
	case ShippingQueryUpdate:
		return u.ShippingQuery.From
	}
	return nil
}

type kindSet map[UpdateKind]struct{}

func newKindSet(kinds []UpdateKind) kindSet {
	set := make(kindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

func (s kindSet) has(k UpdateKind) bool {
	_, ok := s[k]
	return ok
}
