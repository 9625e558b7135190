package telegram_test

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/tghelper/telegram"
)

func dispatchIn(t *testing.T, d *telegram.Dispatcher[*model], chatType, text string) {
	t.Helper()
	u := &tgbotapi.Update{Message: message(user(1, "en"), chatType, text)}
	require.NoError(t, d.Dispatch(context.Background(), u))
}

func TestRuleBuilderText(t *testing.T) {
	rec := &recorder{}
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{})
	require.NoError(t, d.On(telegram.PrivateChats).Equals(rec.message("equals"), "ping", "pong"))
	require.NoError(t, d.On(telegram.GroupChats).Compare(telegram.IgnoreCase).Contains(rec.message("contains"), "hello"))
	require.NoError(t, d.On(telegram.AnyChat).StartsWith(rec.message("starts"), "/go"))
	require.NoError(t, d.On(telegram.ChannelChats).EndsWith(rec.message("ends"), "!"))

	tests := []struct {
		name     string
		chatType string
		text     string
		want     []string
	}{
		{"equals private", telegram.ChatPrivate, "pong", []string{"equals"}},
		{"equals wrong chat", telegram.ChatGroup, "pong", nil},
		{"equals is ordinal", telegram.ChatPrivate, "PING", nil},
		{"contains ignore case", telegram.ChatSuperGroup, "well HeLLo there", []string{"contains"}},
		{"contains private", telegram.ChatPrivate, "hello", nil},
		{"starts anywhere", telegram.ChatChannel, "/go now!", []string{"starts", "ends"}},
		{"ends channel", telegram.ChatChannel, "wow!", []string{"ends"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.calls = nil
			dispatchIn(t, d, tt.chatType, tt.text)
			assert.Equal(t, tt.want, rec.get())
		})
	}
}

func TestRuleBuilderMedia(t *testing.T) {
	rec := &recorder{}
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{})
	b := d.On(telegram.PrivateChats)
	require.NoError(t, b.OnPhoto(rec.message("photo")))
	require.NoError(t, b.OnVideo(rec.message("video")))
	require.NoError(t, b.OnAudio(rec.message("audio")))
	require.NoError(t, b.OnAnimation(rec.message("animation")))
	require.NoError(t, b.OnDocument(rec.message("document")))
	require.NoError(t, b.OnVoice(rec.message("voice")))
	require.NoError(t, b.OnSticker(rec.message("sticker")))

	msg := func(fill func(m *tgbotapi.Message)) *tgbotapi.Update {
		m := message(user(1, "en"), telegram.ChatPrivate, "")
		fill(m)
		return &tgbotapi.Update{Message: m}
	}
	ctx := context.Background()
	updates := []*tgbotapi.Update{
		msg(func(m *tgbotapi.Message) { m.Photo = []tgbotapi.PhotoSize{{FileID: "p"}} }),
		msg(func(m *tgbotapi.Message) { m.Video = &tgbotapi.Video{FileID: "v"} }),
		msg(func(m *tgbotapi.Message) { m.Audio = &tgbotapi.Audio{FileID: "a"} }),
		// animations also carry a document
		msg(func(m *tgbotapi.Message) {
			m.Animation = &tgbotapi.Animation{FileID: "g"}
			m.Document = &tgbotapi.Document{FileID: "g"}
		}),
		msg(func(m *tgbotapi.Message) { m.Document = &tgbotapi.Document{FileID: "d"} }),
		msg(func(m *tgbotapi.Message) { m.Voice = &tgbotapi.Voice{FileID: "o"} }),
		msg(func(m *tgbotapi.Message) { m.Sticker = &tgbotapi.Sticker{FileID: "s"} }),
	}
	for _, u := range updates {
		require.NoError(t, d.Dispatch(ctx, u))
	}
	assert.Equal(t, []string{"photo", "video", "audio", "animation", "document", "voice", "sticker"}, rec.get())

	u := msg(func(m *tgbotapi.Message) { m.Photo = []tgbotapi.PhotoSize{{FileID: "p"}} })
	u.Message.Chat.Type = telegram.ChatGroup
	require.NoError(t, d.Dispatch(ctx, u))
	assert.Len(t, rec.get(), 7, "group photo is outside the rule")
}

func TestRuleBuilderRequire(t *testing.T) {
	rec := &recorder{}
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{
		Verifying: func(_ context.Context, u *tgbotapi.User) (telegram.Verify, error) {
			return telegram.Verified, nil
		},
	})
	require.NoError(t, d.On(telegram.AnyChat).Require(telegram.Owner).Equals(rec.message("owner"), "x"))
	require.NoError(t, d.On(telegram.AnyChat).Require(telegram.Verified).Equals(rec.message("verified"), "x"))

	dispatchIn(t, d, telegram.ChatPrivate, "x")
	assert.Equal(t, []string{"verified"}, rec.get())
}

func TestMessageRuleCombinators(t *testing.T) {
	priv := &telegram.NewMessage{Message: message(user(1, ""), telegram.ChatPrivate, "")}
	group := &telegram.NewMessage{Message: message(user(1, ""), telegram.ChatSuperGroup, "")}
	channel := &telegram.NewMessage{Message: message(user(1, ""), telegram.ChatChannel, "")}

	either := telegram.PrivateChats.Or(telegram.GroupChats)
	assert.True(t, either(priv))
	assert.True(t, either(group))
	assert.False(t, either(channel))

	both := telegram.AnyChat.And(telegram.ChannelChats)
	assert.False(t, both(priv))
	assert.True(t, both(channel))
}

func TestRuleBuilderFilter(t *testing.T) {
	rec := &recorder{}
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{})
	require.NoError(t, d.On(telegram.AnyChat).Filter(telegram.NewFilter().WithText().MinLen(3), rec.message("long")))

	dispatchIn(t, d, telegram.ChatPrivate, "hi")
	dispatchIn(t, d, telegram.ChatPrivate, "hey")
	assert.Equal(t, []string{"long"}, rec.get())
}
