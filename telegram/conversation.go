package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const ConvDefaultTimeOut = 60 * time.Second

// WaitFor queues a sniffer for the user and blocks until an update of one
// of kinds is accepted, or ctx ends. Rejected updates are swallowed while
// waiting. The sniffer is retired when ctx ends first.
func (d *Dispatcher[T]) WaitFor(ctx context.Context, userID int64, kinds []UpdateKind, accept func(u *tgbotapi.Update) bool) (*tgbotapi.Update, error) {
	resp := make(chan *tgbotapi.Update, 1)
	id := d.AddSniffer(userID, NewSniffer(kinds,
		func(_ context.Context, u *tgbotapi.Update) (bool, error) {
			return accept == nil || accept(u), nil
		},
		func(_ context.Context, u *tgbotapi.Update) error {
			resp <- u
			return nil
		},
		nil,
	))

	select {
	case u := <-resp:
		return u, nil
	case <-ctx.Done():
		if d.RemoveSniffer(userID, id) {
			return nil, ctx.Err()
		}
		// accepted while ctx ended
		return <-resp, nil
	}
}

// Conversation is a struct for sequential prompts to one user.
type Conversation[T any] struct {
	d       *Dispatcher[T]
	UserID  int64
	timeOut time.Duration
	lastMsg *NewMessage
}

// NewConversation starts a conversation with the user, default timeout: 60s
func (d *Dispatcher[T]) NewConversation(userID int64, timeout ...time.Duration) *Conversation[T] {
	return &Conversation[T]{
		d:       d,
		UserID:  userID,
		timeOut: getDuration(getVariadic(timeout, ConvDefaultTimeOut), ConvDefaultTimeOut),
	}
}

// SetTimeOut sets the timeout for conversation
func (c *Conversation[T]) SetTimeOut(timeout time.Duration) *Conversation[T] {
	c.timeOut = timeout
	return c
}

// LastMessage returns the last message received through GetResponse.
func (c *Conversation[T]) LastMessage() *NewMessage {
	return c.lastMsg
}

func (c *Conversation[T]) wait(ctx context.Context, kinds []UpdateKind, accept func(u *tgbotapi.Update) bool) (*tgbotapi.Update, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeOut)
	defer cancel()
	u, err := c.d.WaitFor(ctx, c.UserID, kinds, accept)
	if err != nil {
		return nil, fmt.Errorf("conversation timeout: %s: %w", c.timeOut, err)
	}
	return u, nil
}

// GetResponse waits for the next text message the user sends.
func (c *Conversation[T]) GetResponse(ctx context.Context) (*NewMessage, error) {
	u, err := c.wait(ctx, []UpdateKind{MessageUpdate}, func(u *tgbotapi.Update) bool {
		return u.Message.Text != ""
	})
	if err != nil {
		return nil, err
	}
	c.lastMsg = packMessage(u)
	return c.lastMsg, nil
}

// GetEdit waits for the user to edit a message.
func (c *Conversation[T]) GetEdit(ctx context.Context) (*NewMessage, error) {
	u, err := c.wait(ctx, []UpdateKind{EditedMessageUpdate}, nil)
	if err != nil {
		return nil, err
	}
	return packMessage(u), nil
}

// GetCallback waits for the user to press a button whose data matches
// pattern. An empty pattern accepts any button.
func (c *Conversation[T]) GetCallback(ctx context.Context, pattern string) (*CallbackQuery, error) {
	sep := c.d.Separator()
	want := ParseCommand(pattern, sep)
	u, err := c.wait(ctx, []UpdateKind{CallbackQueryUpdate}, func(u *tgbotapi.Update) bool {
		return pattern == "" || ParseCommand(u.CallbackQuery.Data, sep).Matches(want)
	})
	if err != nil {
		return nil, err
	}
	return packCallbackQuery(u.CallbackQuery, sep), nil
}

// Respond sends text to the user's private chat.
func (c *Conversation[T]) Respond(api Sender, text string) (*NewMessage, error) {
	m := &NewMessage{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: c.UserID}}}
	return m.Respond(api, text)
}

// Reply answers the last received message, or sends plain text when none
// was received yet.
func (c *Conversation[T]) Reply(api Sender, text string) (*NewMessage, error) {
	if c.lastMsg == nil {
		return c.Respond(api, text)
	}
	return c.lastMsg.Reply(api, text)
}
