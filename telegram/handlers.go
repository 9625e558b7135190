package telegram

import (
	"strings"
	"sync"

	"github.com/amarnathcjd/tghelper"
)

type (
	// TextSelector picks the expected text out of a localization model, so
	// one handler answers a button caption in every language.
	TextSelector[T any] func(model T) string
	// Predicate decides whether an expression handler wants a message.
	Predicate func(m *NewMessage) bool
)

type textHandle[T any] struct {
	selector TextSelector[T]
	verify   Verify
	callback MessageHandler[T]
}

type expressionHandle[T any] struct {
	predicate Predicate
	verify    Verify
	callback  MessageHandler[T]
}

type callbackHandle[T any] struct {
	pattern  Command
	verify   Verify
	callback CallbackHandler[T]
}

// registry keeps the handlers in registration order. It only accepts new
// handlers until sealed; dispatch reads it without locking afterwards.
type registry[T any] struct {
	mu          sync.Mutex
	sealed      bool
	texts       []*textHandle[T]
	expressions []*expressionHandle[T]
	callbacks   []*callbackHandle[T]
}

func (r *registry[T]) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *registry[T]) isSealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

// open runs add under the registry lock unless the registry is sealed.
func (r *registry[T]) open(what string, add func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return tghelper.NewError(tghelper.ErrRegistrySealed, what)
	}
	add()
	return nil
}

// AddTextHandler registers a handler for messages whose text equals the
// text selected from the sender's localization model.
func (d *Dispatcher[T]) AddTextHandler(selector TextSelector[T], callback MessageHandler[T], verify ...Verify) error {
	if selector == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, "text selector")
	}
	if callback == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, kindText+" handler")
	}
	h := &textHandle[T]{selector: selector, verify: getVerify(verify), callback: callback}
	return d.handlers.open(kindText+" handler", func() {
		d.handlers.texts = append(d.handlers.texts, h)
	})
}

// AddText registers a handler for one literal text, whatever the language.
func (d *Dispatcher[T]) AddText(text string, callback MessageHandler[T], verify ...Verify) error {
	return d.AddTextHandler(func(T) string { return text }, callback, verify...)
}

// AddTexts registers the same callback once per literal.
func (d *Dispatcher[T]) AddTexts(texts []string, callback MessageHandler[T], verify ...Verify) error {
	for _, text := range texts {
		if err := d.AddText(text, callback, verify...); err != nil {
			return err
		}
	}
	return nil
}

// AddTextSelectors registers the same callback once per selector.
func (d *Dispatcher[T]) AddTextSelectors(selectors []TextSelector[T], callback MessageHandler[T], verify ...Verify) error {
	for _, s := range selectors {
		if err := d.AddTextHandler(s, callback, verify...); err != nil {
			return err
		}
	}
	return nil
}

// AddExpressionHandler registers a handler for every message the predicate
// accepts.
func (d *Dispatcher[T]) AddExpressionHandler(predicate Predicate, callback MessageHandler[T], verify ...Verify) error {
	if predicate == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, "expression predicate")
	}
	if callback == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, kindExpression+" handler")
	}
	h := &expressionHandle[T]{predicate: predicate, verify: getVerify(verify), callback: callback}
	return d.handlers.open(kindExpression+" handler", func() {
		d.handlers.expressions = append(d.handlers.expressions, h)
	})
}

// AddCallbackHandler registers a handler for callback queries whose data
// matches pattern. Blank segments of the pattern match any value, so with
// the default separator "cal~ ~ " matches "cal~2024~05".
func (d *Dispatcher[T]) AddCallbackHandler(pattern string, callback CallbackHandler[T], verify ...Verify) error {
	if callback == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, kindCallback+" handler")
	}
	h := &callbackHandle[T]{pattern: ParseCommand(pattern, d.sep), verify: getVerify(verify), callback: callback}
	return d.handlers.open(kindCallback+" handler", func() {
		d.handlers.callbacks = append(d.handlers.callbacks, h)
	})
}

// AddCallbackHandlers registers the same callback once per pattern.
func (d *Dispatcher[T]) AddCallbackHandlers(patterns []string, callback CallbackHandler[T], verify ...Verify) error {
	for _, p := range patterns {
		if err := d.AddCallbackHandler(p, callback, verify...); err != nil {
			return err
		}
	}
	return nil
}

// Comparison selects how rule texts are compared with message text.
type Comparison int

const (
	Ordinal Comparison = iota
	IgnoreCase
)

func (c Comparison) fold(s string) string {
	if c == IgnoreCase {
		return strings.ToLower(s)
	}
	return s
}

// MessageRule scopes expression handlers built with On.
type MessageRule func(m *NewMessage) bool

var (
	AnyChat      MessageRule = func(*NewMessage) bool { return true }
	PrivateChats MessageRule = func(m *NewMessage) bool { return m.IsPrivate() }
	GroupChats   MessageRule = func(m *NewMessage) bool { return m.IsGroup() }
	ChannelChats MessageRule = func(m *NewMessage) bool { return m.IsChannel() }
)

// Or matches messages accepted by r or any of the others.
func (r MessageRule) Or(others ...MessageRule) MessageRule {
	return func(m *NewMessage) bool {
		if r(m) {
			return true
		}
		for _, o := range others {
			if o(m) {
				return true
			}
		}
		return false
	}
}

// And matches messages accepted by r and every one of the others.
func (r MessageRule) And(others ...MessageRule) MessageRule {
	return func(m *NewMessage) bool {
		if !r(m) {
			return false
		}
		for _, o := range others {
			if !o(m) {
				return false
			}
		}
		return true
	}
}

// RuleBuilder registers expression handlers scoped by a MessageRule.
type RuleBuilder[T any] struct {
	d      *Dispatcher[T]
	rule   MessageRule
	cmp    Comparison
	verify Verify
}

// On starts a rule-scoped registration, e.g.
//
//	d.On(PrivateChats).Compare(IgnoreCase).StartsWith(cb, "/start")
func (d *Dispatcher[T]) On(rule MessageRule) *RuleBuilder[T] {
	if rule == nil {
		rule = AnyChat
	}
	return &RuleBuilder[T]{d: d, rule: rule}
}

// Compare sets the comparison used by the text rules that follow.
func (b *RuleBuilder[T]) Compare(cmp Comparison) *RuleBuilder[T] {
	b.cmp = cmp
	return b
}

// Require sets the privileges needed by the handlers that follow.
func (b *RuleBuilder[T]) Require(verify ...Verify) *RuleBuilder[T] {
	b.verify = getVerify(verify)
	return b
}

func (b *RuleBuilder[T]) text(callback MessageHandler[T], texts []string, match func(text, want string) bool) error {
	cmp, rule := b.cmp, b.rule
	folded := make([]string, len(texts))
	for i, t := range texts {
		folded[i] = cmp.fold(t)
	}
	return b.d.AddExpressionHandler(func(m *NewMessage) bool {
		if !m.IsText() || !rule(m) {
			return false
		}
		text := cmp.fold(m.Text)
		for _, want := range folded {
			if match(text, want) {
				return true
			}
		}
		return false
	}, callback, b.verify)
}

// Equals matches messages whose text equals one of texts.
func (b *RuleBuilder[T]) Equals(callback MessageHandler[T], texts ...string) error {
	return b.text(callback, texts, func(text, want string) bool { return text == want })
}

// Contains matches messages whose text contains one of texts.
func (b *RuleBuilder[T]) Contains(callback MessageHandler[T], texts ...string) error {
	return b.text(callback, texts, strings.Contains)
}

// StartsWith matches messages whose text starts with one of texts.
func (b *RuleBuilder[T]) StartsWith(callback MessageHandler[T], texts ...string) error {
	return b.text(callback, texts, strings.HasPrefix)
}

// EndsWith matches messages whose text ends with one of texts.
func (b *RuleBuilder[T]) EndsWith(callback MessageHandler[T], texts ...string) error {
	return b.text(callback, texts, strings.HasSuffix)
}

// Match registers an arbitrary predicate within the rule.
func (b *RuleBuilder[T]) Match(predicate Predicate, callback MessageHandler[T]) error {
	if predicate == nil {
		return tghelper.NewError(tghelper.ErrNilHandler, "expression predicate")
	}
	rule := b.rule
	return b.d.AddExpressionHandler(func(m *NewMessage) bool {
		return rule(m) && predicate(m)
	}, callback, b.verify)
}

// Filter registers the callback for messages passing f within the rule.
func (b *RuleBuilder[T]) Filter(f Filter, callback MessageHandler[T]) error {
	return b.Match(f.Predicate(), callback)
}

func (b *RuleBuilder[T]) media(mediaType string, callback MessageHandler[T]) error {
	return b.Match(func(m *NewMessage) bool { return m.MediaType() == mediaType }, callback)
}

func (b *RuleBuilder[T]) OnPhoto(callback MessageHandler[T]) error {
	return b.media("photo", callback)
}

func (b *RuleBuilder[T]) OnVideo(callback MessageHandler[T]) error {
	return b.media("video", callback)
}

func (b *RuleBuilder[T]) OnAudio(callback MessageHandler[T]) error {
	return b.media("audio", callback)
}

func (b *RuleBuilder[T]) OnAnimation(callback MessageHandler[T]) error {
	return b.media("animation", callback)
}

func (b *RuleBuilder[T]) OnDocument(callback MessageHandler[T]) error {
	return b.media("document", callback)
}

func (b *RuleBuilder[T]) OnVoice(callback MessageHandler[T]) error {
	return b.media("voice", callback)
}

func (b *RuleBuilder[T]) OnSticker(callback MessageHandler[T]) error {
	return b.media("sticker", callback)
}

// OnInlineQuery sets the inline query hook. Hooks can't change once
// dispatching started.
func (d *Dispatcher[T]) OnInlineQuery(h InlineHandler[T]) error {
	return d.handlers.open("inline query hook", func() { d.config.InlineQuery = h })
}

func (d *Dispatcher[T]) OnChosenInlineResult(h ChosenInlineHandler[T]) error {
	return d.handlers.open("chosen inline result hook", func() { d.config.ChosenInlineResult = h })
}

func (d *Dispatcher[T]) OnPreCheckoutQuery(h PreCheckoutHandler[T]) error {
	return d.handlers.open("pre-checkout query hook", func() { d.config.PreCheckoutQuery = h })
}

func (d *Dispatcher[T]) OnShippingQuery(h ShippingHandler[T]) error {
	return d.handlers.open("shipping query hook", func() { d.config.ShippingQuery = h })
}
