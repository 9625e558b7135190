// Copyright (c) 2022 RoseLoverX

package telegram

import (
	"context"
	"strings"
	"sync"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amarnathcjd/tghelper"
)

type (
	// LanguageSelector picks the language code for a user, overriding the
	// code reported by the platform.
	LanguageSelector func(ctx context.Context, user *tgbotapi.User) (string, error)
	// Verifier computes the privileges of a user.
	Verifier func(ctx context.Context, user *tgbotapi.User) (Verify, error)
)

// Dispatcher routes updates to handlers. T is the localization model type.
type Dispatcher[T any] struct {
	config   *DispatcherConfig[T]
	sep      rune
	locales  *LocaleCache[T]
	sniffers *SnifferQueue
	handlers *registry[T]
	Log      Logger

	sealOnce sync.Once
	sealErr  error
}

// DispatcherConfig is the configuration struct for the dispatcher
type DispatcherConfig[T any] struct {
	// Callback data separator, default: '~'
	Separator rune
	// Skip plain messages
	IgnoreMessages bool
	// Skip edited messages
	IgnoreEditedMessages bool
	// Skip channel posts
	IgnoreChannelPosts bool
	// Skip edited channel posts
	IgnoreEditedChannelPosts bool
	// Localization key used when the user's language is unknown, default: en
	DefaultLocale string
	// Per-user language hook, default: the user's platform language code
	SelectLanguage LanguageSelector
	// Per-user privilege hook, default: every user is Unchecked
	Verifying Verifier
	// Global hooks, never gated
	InlineQuery        InlineHandler[T]
	ChosenInlineResult ChosenInlineHandler[T]
	PreCheckoutQuery   PreCheckoutHandler[T]
	ShippingQuery      ShippingHandler[T]
	// Run the matched handlers of one update in parallel
	ConcurrentHandlers bool
	// Custom logger, default: text logger prefixed "tghelper dispatcher"
	Logger Logger
	// Set log level (trace, debug, info, warn, error, disable), default: info
	LogLevel string
}

// NewDispatcher creates a dispatcher with an empty handler registry and
// locale store.
func NewDispatcher[T any](c DispatcherConfig[T]) (*Dispatcher[T], error) {
	sep := getRune(c.Separator, DefaultSeparator)
	if unicode.IsSpace(sep) || sep == unicode.ReplacementChar {
		return nil, tghelper.NewError(tghelper.ErrSeparatorInvalid, sep)
	}
	c.DefaultLocale = getStr(c.DefaultLocale, DefaultLocale)

	log := c.Logger
	if log == nil {
		log = NewLogger(LoggerConfig{
			Level:  getStr(c.LogLevel, LogInfo),
			Prefix: "tghelper dispatcher",
			Color:  true,
		})
	}

	return &Dispatcher[T]{
		config:   &c,
		sep:      sep,
		locales:  NewLocaleCache[T](c.DefaultLocale),
		sniffers: NewSnifferQueue(),
		handlers: &registry[T]{},
		Log:      log,
	}, nil
}

func (d *Dispatcher[T]) Separator() rune {
	return d.sep
}

// Data encodes parts as callback data using the dispatcher's separator.
func (d *Dispatcher[T]) Data(parts ...any) string {
	return JoinCommand(d.sep, parts...)
}

// Start checks the configuration and freezes the handler registry.
// Dispatch calls it on first use.
func (d *Dispatcher[T]) Start() error {
	d.sealOnce.Do(func() {
		d.handlers.seal()
		if err := d.locales.Check(); err != nil {
			d.sealErr = err
			return
		}
		d.Log.WithFields(map[string]any{
			"text":       len(d.handlers.texts),
			"expression": len(d.handlers.expressions),
			"callback":   len(d.handlers.callbacks),
			"locales":    strings.Join(d.locales.Codes(), ","),
		}).Debug("dispatcher started")
	})
	return d.sealErr
}

func (d *Dispatcher[T]) Sealed() bool {
	return d.handlers.isSealed()
}

// AddLocale registers the localization model for a language code.
func (d *Dispatcher[T]) AddLocale(code string, model T) error {
	return d.locales.Add(code, model)
}

// AddLocales registers every model yielded by the provider.
func (d *Dispatcher[T]) AddLocales(p LocaleProvider[T]) error {
	return d.locales.AddAll(p)
}

// CheckLocales reports whether the default localization key is registered.
func (d *Dispatcher[T]) CheckLocales() error {
	return d.locales.Check()
}

func (d *Dispatcher[T]) Locales() *LocaleCache[T] {
	return d.locales
}

// Resolve returns the language code and localization model for user.
func (d *Dispatcher[T]) Resolve(ctx context.Context, user *tgbotapi.User) (string, T, error) {
	var code string
	if d.config.SelectLanguage != nil {
		selected, err := d.config.SelectLanguage(ctx, user)
		if err != nil {
			var zero T
			return "", zero, err
		}
		code = selected
	} else if user != nil {
		code = user.LanguageCode
	}
	return d.locales.Lookup(code)
}

func (d *Dispatcher[T]) verify(ctx context.Context, user *tgbotapi.User) (Verify, error) {
	if d.config.Verifying == nil {
		return Unchecked, nil
	}
	return d.config.Verifying(ctx, user)
}

// AddSniffer queues s for the user. Sniffers may be added at any time.
func (d *Dispatcher[T]) AddSniffer(userID int64, s Sniffer) SnifferID {
	id := d.sniffers.Enqueue(userID, s)
	d.Log.WithFields(map[string]any{"user": userID, "sniffer": id}).Trace("sniffer queued")
	return id
}

// RemoveSniffer retires a queued sniffer.
func (d *Dispatcher[T]) RemoveSniffer(userID int64, id SnifferID) bool {
	return d.sniffers.Remove(userID, id)
}

func (d *Dispatcher[T]) Sniffers() *SnifferQueue {
	return d.sniffers
}
