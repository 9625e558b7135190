// Copyright (c) 2024, amarnathcjd

package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amarnathcjd/tghelper"
)

type (
	MessageHandler[T any]      func(c *Context[T], m *NewMessage) error
	CallbackHandler[T any]     func(c *Context[T], q *CallbackQuery) error
	InlineHandler[T any]       func(c *Context[T], q *InlineQuery) error
	ChosenInlineHandler[T any] func(c *Context[T], r *tgbotapi.ChosenInlineResult) error
	PreCheckoutHandler[T any]  func(c *Context[T], q *tgbotapi.PreCheckoutQuery) error
	ShippingHandler[T any]     func(c *Context[T], q *tgbotapi.ShippingQuery) error
)

// Context is handed to every handler. It carries the update together with
// the resolved language, localization model and privileges of its sender.
type Context[T any] struct {
	context.Context
	Update *tgbotapi.Update
	Kind   UpdateKind
	User   *tgbotapi.User
	Locale string
	Model  T
	Verify Verify
	Log    Logger

	dispatcher *Dispatcher[T]
}

// Sniff queues a sniffer for the sender of the current update.
func (c *Context[T]) Sniff(s Sniffer) SnifferID {
	return c.dispatcher.AddSniffer(c.User.ID, s)
}

// Data encodes callback data with the dispatcher's separator.
func (c *Context[T]) Data(parts ...any) string {
	return c.dispatcher.Data(parts...)
}

func (c *Context[T]) Dispatcher() *Dispatcher[T] {
	return c.dispatcher
}

// HandlerError is a failure of one matched handler. Kind names the handler
// family and Index its registration position within that family.
type HandlerError struct {
	Kind  string
	Index int
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler #%d: %v", e.Kind, e.Index, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

const (
	kindText        = "text"
	kindExpression  = "expression"
	kindCallback    = "callback"
	kindInline      = "inline query"
	kindChosen      = "chosen inline result"
	kindPreCheckout = "pre-checkout query"
	kindShipping    = "shipping query"
)

type invocation struct {
	kind  string
	index int
	run   func() error
}

// Dispatch routes one update. Updates of unrouted kinds, updates without a
// sender and kinds switched off in the config are ignored and return nil.
// Every matched handler runs even when another fails; their errors are
// returned joined, each wrapped in a *HandlerError.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, u *tgbotapi.Update) error {
	if err := d.Start(); err != nil {
		return err
	}

	kind := KindOf(u)
	if kind == UnknownUpdate {
		d.Log.Trace("ignoring update of unrouted kind")
		return nil
	}

	user := SenderOf(u)
	if user == nil {
		d.Log.WithField("kind", kind.String()).Debug("ignoring update without sender")
		return nil
	}

	log := d.Log.WithFields(map[string]any{
		"update": u.UpdateID,
		"kind":   kind.String(),
		"user":   user.ID,
	})

	if consumed, err := d.sniffers.Intercept(ctx, user.ID, u); consumed {
		log.Debug("update consumed by sniffer")
		return err
	}

	code, model, err := d.Resolve(ctx, user)
	if err != nil {
		return fmt.Errorf("resolving locale: %w", err)
	}

	level, err := d.verify(ctx, user)
	if err != nil {
		return fmt.Errorf("verifying user %d: %w", user.ID, err)
	}

	c := &Context[T]{
		Context:    ctx,
		Update:     u,
		Kind:       kind,
		User:       user,
		Locale:     code,
		Model:      model,
		Verify:     level,
		Log:        log,
		dispatcher: d,
	}

	switch kind {
	case MessageUpdate, EditedMessageUpdate, ChannelPostUpdate, EditedChannelPostUpdate:
		if d.ignored(kind) {
			log.Trace("update kind switched off")
			return nil
		}
		return d.handleMessageUpdate(c)
	case CallbackQueryUpdate:
		return d.handleCallbackUpdate(c)
	case InlineQueryUpdate:
		if h := d.config.InlineQuery; h != nil {
			return d.invoke(log, invocation{kindInline, 0, func() error {
				return h(c, &InlineQuery{InlineQuery: u.InlineQuery})
			}})
		}
	case ChosenInlineResultUpdate:
		if h := d.config.ChosenInlineResult; h != nil {
			return d.invoke(log, invocation{kindChosen, 0, func() error {
				return h(c, u.ChosenInlineResult)
			}})
		}
	case PreCheckoutQueryUpdate:
		if h := d.config.PreCheckoutQuery; h != nil {
			return d.invoke(log, invocation{kindPreCheckout, 0, func() error {
				return h(c, u.PreCheckoutQuery)
			}})
		}
	case ShippingQueryUpdate:
		if h := d.config.ShippingQuery; h != nil {
			return d.invoke(log, invocation{kindShipping, 0, func() error {
				return h(c, u.ShippingQuery)
			}})
		}
	}
	return nil
}

func (d *Dispatcher[T]) ignored(kind UpdateKind) bool {
	switch kind {
	case MessageUpdate:
		return d.config.IgnoreMessages
	case EditedMessageUpdate:
		return d.config.IgnoreEditedMessages
	case ChannelPostUpdate:
		return d.config.IgnoreChannelPosts
	case EditedChannelPostUpdate:
		return d.config.IgnoreEditedChannelPosts
	}
	return false
}

// handleMessageUpdate runs the first text handler whose selected text equals
// the message text. When none matches, or the match is not visible to the
// sender, every visible expression handler whose predicate holds runs.
func (d *Dispatcher[T]) handleMessageUpdate(c *Context[T]) error {
	packed := packMessage(c.Update)
	texts, expressions := d.handlers.texts, d.handlers.expressions

	if packed.IsText() && len(texts) > 0 {
		for i, h := range texts {
			if h.selector(c.Model) != packed.Text {
				continue
			}
			if Visible(h.verify, c.Verify) {
				return d.invoke(c.Log, invocation{kindText, i, func() error {
					return h.callback(c, packed)
				}})
			}
			c.Log.WithField("handler", i).Trace("text handler not visible to user")
			break
		}
	}

	var matched []invocation
	for i, h := range expressions {
		h := h // per-iteration copy; closure runs after the loop (pre-Go 1.22 semantics)
		if !Visible(h.verify, c.Verify) || !h.predicate(packed) {
			continue
		}
		matched = append(matched, invocation{kindExpression, i, func() error {
			return h.callback(c, packed)
		}})
	}
	return d.invoke(c.Log, matched...)
}

// handleCallbackUpdate runs every visible callback handler whose pattern
// matches the query data, in registration order.
func (d *Dispatcher[T]) handleCallbackUpdate(c *Context[T]) error {
	packed := packCallbackQuery(c.Update.CallbackQuery, d.sep)

	var matched []invocation
	for i, h := range d.handlers.callbacks {
		h := h // per-iteration copy; closure runs after the loop (pre-Go 1.22 semantics)
		if !Visible(h.verify, c.Verify) || !packed.Command.Matches(h.pattern) {
			continue
		}
		matched = append(matched, invocation{kindCallback, i, func() error {
			return h.callback(c, packed)
		}})
	}
	return d.invoke(c.Log, matched...)
}

// invoke starts the handlers in order and waits for all of them.
func (d *Dispatcher[T]) invoke(log Logger, calls ...invocation) error {
	switch len(calls) {
	case 0:
		log.Trace("no handler matched")
		return nil
	case 1:
		return calls[0].call(log)
	}

	errs := make([]error, len(calls))
	if d.config.ConcurrentHandlers {
		var wg sync.WaitGroup
		for i, inv := range calls {
			wg.Add(1)
			go func(i int, inv invocation) {
				defer wg.Done()
				errs[i] = inv.call(log)
			}(i, inv)
		}
		wg.Wait()
	} else {
		for i, inv := range calls {
			errs[i] = inv.call(log)
		}
	}
	return errors.Join(errs...)
}

func (inv invocation) call(log Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]any{
				"handler": fmt.Sprintf("%s #%d", inv.kind, inv.index),
				"stack":   string(debug.Stack()),
			}).Error("[HandlerPanic] %v", r)
			err = &HandlerError{Kind: inv.kind, Index: inv.index, Err: tghelper.NewError(tghelper.ErrHandlerPanic, r)}
		}
	}()

	if e := inv.run(); e != nil {
		return &HandlerError{Kind: inv.kind, Index: inv.index, Err: e}
	}
	return nil
}
