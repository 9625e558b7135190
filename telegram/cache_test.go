package telegram_test

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/tghelper"
	"github.com/amarnathcjd/tghelper/telegram"
)

func TestLocaleCacheAdd(t *testing.T) {
	c := telegram.NewLocaleCache[*model]("en")

	require.NoError(t, c.Add("en", &model{Hi: "Hi"}))
	assert.ErrorIs(t, c.Add("en", &model{Hi: "Hello"}), tghelper.ErrDuplicateLocale)
	assert.ErrorIs(t, c.Add("", &model{}), tghelper.ErrLanguageCodeInvalid)
	assert.ErrorIs(t, c.Add("  ", &model{}), tghelper.ErrLanguageCodeInvalid)
	assert.Error(t, c.Add("de", nil))

	m, ok := c.Get("en")
	require.True(t, ok)
	assert.Equal(t, "Hi", m.Hi, "duplicates must not replace the model")
	assert.Equal(t, []string{"en"}, c.Codes())
}

type staticProvider []telegram.LocaleEntry[*model]

func (p staticProvider) Locales() ([]telegram.LocaleEntry[*model], error) {
	return p, nil
}

type failingProvider struct{}

func (failingProvider) Locales() ([]telegram.LocaleEntry[*model], error) {
	return nil, errors.New("disk on fire")
}

func TestLocaleCacheAddAll(t *testing.T) {
	c := telegram.NewLocaleCache[*model]("en")
	require.NoError(t, c.AddAll(staticProvider{
		{Code: "en", Model: &model{Hi: "Hi"}},
		{Code: "de", Model: &model{Hi: "Hallo"}},
	}))
	assert.Equal(t, []string{"de", "en"}, c.Codes())

	err := c.AddAll(staticProvider{{Code: "fr", Model: &model{}}, {Code: "de", Model: &model{}}})
	assert.ErrorIs(t, err, tghelper.ErrDuplicateLocale)
	assert.True(t, c.Has("fr"), "entries before the failure stay registered")

	assert.ErrorContains(t, c.AddAll(failingProvider{}), "disk on fire")
}

func TestLocaleCacheCheck(t *testing.T) {
	c := telegram.NewLocaleCache[*model]("en")
	assert.ErrorIs(t, c.Check(), tghelper.ErrDefaultLocale)

	require.NoError(t, c.Add("ru", &model{}))
	assert.ErrorIs(t, c.Check(), tghelper.ErrDefaultLocale)

	require.NoError(t, c.Add("en", &model{}))
	assert.NoError(t, c.Check())

	assert.ErrorIs(t, telegram.NewLocaleCache[*model]("").Check(), tghelper.ErrDefaultLocale)
}

func TestResolve(t *testing.T) {
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{})
	ctx := context.Background()

	tests := []struct {
		name string
		lang string
		code string
		hi   string
	}{
		{"registered", "ru", "ru", "Привет"},
		{"unregistered falls back", "fr", "en", "Hi"},
		{"blank falls back", "", "en", "Hi"},
		{"whitespace falls back", "  ", "en", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, m, err := d.Resolve(ctx, user(1, tt.lang))
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.hi, m.Hi)
		})
	}
}

func TestResolveWithSelector(t *testing.T) {
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{
		SelectLanguage: func(_ context.Context, u *tgbotapi.User) (string, error) {
			if u.ID == 42 {
				return "", errors.New("store unavailable")
			}
			return "ru", nil
		},
	})

	code, m, err := d.Resolve(context.Background(), user(1, "en"))
	require.NoError(t, err)
	assert.Equal(t, "ru", code)
	assert.Equal(t, "Пока", m.Bye)

	_, _, err = d.Resolve(context.Background(), user(42, "en"))
	assert.ErrorContains(t, err, "store unavailable")
}

func TestResolveMissingDefault(t *testing.T) {
	d, err := telegram.NewDispatcher(telegram.DispatcherConfig[*model]{DefaultLocale: "de", Logger: quietLogger})
	require.NoError(t, err)
	require.NoError(t, d.AddLocale("en", &model{}))

	_, _, err = d.Resolve(context.Background(), user(1, "fr"))
	assert.ErrorIs(t, err, tghelper.ErrLocaleNotFound)

	var e *tghelper.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "de", e.AdditionalInfo)
}
