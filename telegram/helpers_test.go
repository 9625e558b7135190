package telegram_test

import (
	"io"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/tghelper/telegram"
)

type model struct {
	Hi  string
	Bye string
}

var quietLogger = telegram.NewLogger(telegram.LoggerConfig{Level: telegram.LogDisable, Output: io.Discard})

func newDispatcher(t *testing.T, cfg telegram.DispatcherConfig[*model]) *telegram.Dispatcher[*model] {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger
	}
	d, err := telegram.NewDispatcher(cfg)
	require.NoError(t, err)
	require.NoError(t, d.AddLocale("en", &model{Hi: "Hi", Bye: "Bye"}))
	require.NoError(t, d.AddLocale("ru", &model{Hi: "Привет", Bye: "Пока"}))
	return d
}

func user(id int64, lang string) *tgbotapi.User {
	return &tgbotapi.User{ID: id, FirstName: "test", LanguageCode: lang}
}

func message(from *tgbotapi.User, chatType, text string) *tgbotapi.Message {
	chatID := int64(-100)
	if from != nil && chatType == telegram.ChatPrivate {
		chatID = from.ID
	}
	return &tgbotapi.Message{
		MessageID: 1,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: chatID, Type: chatType},
		Text:      text,
	}
}

func textUpdate(userID int64, text string) *tgbotapi.Update {
	return &tgbotapi.Update{UpdateID: 1, Message: message(user(userID, "en"), telegram.ChatPrivate, text)}
}

func callbackUpdate(userID int64, data string) *tgbotapi.Update {
	return &tgbotapi.Update{UpdateID: 2, CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "query",
		From: user(userID, "en"),
		Data: data,
	}}
}

// recorder collects handler names in call order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) message(name string) telegram.MessageHandler[*model] {
	return func(*telegram.Context[*model], *telegram.NewMessage) error {
		r.add(name)
		return nil
	}
}

func (r *recorder) callback(name string) telegram.CallbackHandler[*model] {
	return func(*telegram.Context[*model], *telegram.CallbackQuery) error {
		r.add(name)
		return nil
	}
}
