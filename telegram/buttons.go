package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button builds inline keyboards whose callback data round-trips through
// the callback handlers of the dispatcher that created it.
type Button struct {
	sep rune
}

// Button returns a keyboard builder bound to the dispatcher separator.
func (d *Dispatcher[T]) Button() Button {
	return Button{sep: d.sep}
}

// Button returns a keyboard builder bound to the dispatcher separator.
func (c *Context[T]) Button() Button {
	return c.dispatcher.Button()
}

func (b Button) Data(text string, parts ...any) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, JoinCommand(b.sep, parts...))
}

func (Button) URL(text, url string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonURL(text, url)
}

func (Button) SwitchInline(text, query string, samePeer bool) tgbotapi.InlineKeyboardButton {
	if samePeer {
		return tgbotapi.InlineKeyboardButton{Text: text, SwitchInlineQueryCurrentChat: &query}
	}
	return tgbotapi.NewInlineKeyboardButtonSwitch(text, query)
}

func (Button) Row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return buttons
}

func (Button) Keyboard(rows ...[]tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Force asks the client to show a reply interface with the given placeholder.
func (Button) Force(placeHolder string) tgbotapi.ForceReply {
	return tgbotapi.ForceReply{ForceReply: true, InputFieldPlaceholder: placeHolder}
}

func (Button) Clear() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
