package telegram_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/tghelper/telegram"
)

func TestButtonDataRoundTrip(t *testing.T) {
	d := newDispatcher(t, telegram.DispatcherConfig[*model]{Separator: '|'})
	rec := &recorder{}
	require.NoError(t, d.AddCallbackHandler(d.Data("pick", " "), rec.callback("pick")))

	b := d.Button()
	kb := b.Keyboard(b.Row(b.Data("Blue", "pick", "blue"), b.URL("Site", "https://example.org")))
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)

	data := kb.InlineKeyboard[0][0].CallbackData
	require.NotNil(t, data)
	assert.Equal(t, "pick|blue", *data)
	assert.Equal(t, "https://example.org", *kb.InlineKeyboard[0][1].URL)

	require.NoError(t, d.Dispatch(context.Background(), callbackUpdate(1, *data)))
	assert.Equal(t, []string{"pick"}, rec.get())
}

func TestButtonSwitchInline(t *testing.T) {
	b := newDispatcher(t, telegram.DispatcherConfig[*model]{}).Button()

	here := b.SwitchInline("Search", "q", true)
	require.NotNil(t, here.SwitchInlineQueryCurrentChat)
	assert.Equal(t, "q", *here.SwitchInlineQueryCurrentChat)
	assert.Nil(t, here.SwitchInlineQuery)

	there := b.SwitchInline("Share", "q", false)
	require.NotNil(t, there.SwitchInlineQuery)
	assert.Equal(t, "q", *there.SwitchInlineQuery)

	assert.True(t, b.Force("name").ForceReply)
	assert.True(t, b.Clear().RemoveKeyboard)
}
