// Command tghelper runs a long-polling bot on top of the dispatcher.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/k0kubun/pp"

	"github.com/amarnathcjd/tghelper/internal/utils"
	"github.com/amarnathcjd/tghelper/locales"
	"github.com/amarnathcjd/tghelper/telegram"
)

// Model is the localization model of the bot, one file per language.
type Model struct {
	Greeting     string `json:"greeting" yaml:"greeting" toml:"greeting" locale:"greeting,required"`
	MenuButton   string `json:"menu_button" yaml:"menu_button" toml:"menu_button" locale:"menu_button,required"`
	AboutButton  string `json:"about_button" yaml:"about_button" toml:"about_button" locale:"about_button,required"`
	About        string `json:"about" yaml:"about" toml:"about" locale:"about"`
	AskName      string `json:"ask_name" yaml:"ask_name" toml:"ask_name" locale:"ask_name,required"`
	NiceToMeet   string `json:"nice_to_meet" yaml:"nice_to_meet" toml:"nice_to_meet" locale:"nice_to_meet,required"`
	Timeout      string `json:"timeout" yaml:"timeout" toml:"timeout"`
	PhotoReceive string `json:"photo_received" yaml:"photo_received" toml:"photo_received"`
	Stats        string `json:"stats" yaml:"stats" toml:"stats"`
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tghelper: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	log := telegram.NewLogger(telegram.LoggerConfig{
		Level:  cfg.LogLevel,
		Prefix: "tghelper",
		Output: os.Stdout,
		Color:  true,
	})

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	log.Info("Logged in as @%s", bot.Self.UserName)

	admins := utils.NewSyncSet(cfg.AdminIDs...)
	d, err := telegram.NewDispatcher(telegram.DispatcherConfig[*Model]{
		DefaultLocale: cfg.DefaultLocale,
		Verifying: func(_ context.Context, user *tgbotapi.User) (telegram.Verify, error) {
			if admins.Has(user.ID) {
				return telegram.Verified | telegram.Admin, nil
			}
			return telegram.Verified, nil
		},
		Logger: log.WithPrefix("tghelper dispatcher"),
	})
	if err != nil {
		return err
	}

	if err := d.AddLocales(locales.NewDir[*Model](cfg.LocalesDir, true)); err != nil {
		return err
	}
	if err := register(d, bot, cfg); err != nil {
		return err
	}
	if err := d.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchLocales {
		go func() {
			if err := locales.Watch[*Model](ctx, cfg.LocalesDir, true, d.AddLocale, log.WithPrefix("tghelper locales")); err != nil {
				log.WithError(err).Error("[LocaleWatcher]")
			}
		}()
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	runner := telegram.NewRunner(d, telegram.RunnerConfig{
		MaxWorkers:   cfg.MaxWorkers,
		PerUserRate:  cfg.RatePerUser,
		PerUserBurst: cfg.RateBurst,
		Exempt:       cfg.AdminIDs,
		Logger:       log.WithPrefix("tghelper runner"),
	})
	err = runner.Run(ctx, updates)
	bot.StopReceivingUpdates()
	runner.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func register(d *telegram.Dispatcher[*Model], bot *tgbotapi.BotAPI, cfg *Config) error {
	start := func(c *telegram.Context[*Model], m *telegram.NewMessage) error {
		msg := tgbotapi.NewMessage(m.ChatID(), c.Model.Greeting)
		b := c.Button()
		msg.ReplyMarkup = b.Keyboard(b.Row(
			b.Data(c.Model.MenuButton, "menu", "main"),
			b.Data(c.Model.AboutButton, "menu", "about"),
		))
		_, err := bot.Send(msg)
		return err
	}

	about := func(c *telegram.Context[*Model], m *telegram.NewMessage) error {
		_, err := m.Reply(bot, c.Model.About)
		return err
	}

	name := func(c *telegram.Context[*Model], m *telegram.NewMessage) error {
		conv := c.Dispatcher().NewConversation(c.User.ID, 2*time.Minute)
		if _, err := conv.Respond(bot, c.Model.AskName); err != nil {
			return err
		}
		resp, err := conv.GetResponse(c)
		if err != nil {
			_, sendErr := conv.Respond(bot, c.Model.Timeout)
			return sendErr
		}
		_, err = conv.Reply(bot, fmt.Sprintf(c.Model.NiceToMeet, resp.Text))
		return err
	}

	menu := func(c *telegram.Context[*Model], q *telegram.CallbackQuery) error {
		text := c.Model.Greeting
		if q.Command.Arg(1) == "about" {
			text = c.Model.About
		}
		if err := q.Edit(bot, text); err != nil {
			return err
		}
		return q.Answer(bot, "")
	}

	stats := func(c *telegram.Context[*Model], q *telegram.CallbackQuery) error {
		return q.Alert(bot, fmt.Sprintf(c.Model.Stats, c.Locale))
	}

	photo := func(c *telegram.Context[*Model], m *telegram.NewMessage) error {
		_, err := m.Reply(bot, c.Model.PhotoReceive)
		return err
	}

	if err := d.AddTexts([]string{"/start", "/menu"}, start); err != nil {
		return err
	}
	if err := d.AddTextHandler(func(m *Model) string { return m.AboutButton }, about); err != nil {
		return err
	}
	if err := d.AddText("/name", name, telegram.Verified); err != nil {
		return err
	}
	if err := d.AddCallbackHandler(d.Data("menu", " "), menu); err != nil {
		return err
	}
	if err := d.AddCallbackHandler(d.Data("admin", "stats"), stats, telegram.Admin); err != nil {
		return err
	}
	if err := d.On(telegram.PrivateChats).OnPhoto(photo); err != nil {
		return err
	}
	if err := d.On(telegram.GroupChats).Compare(telegram.IgnoreCase).StartsWith(start, "/start@"+bot.Self.UserName); err != nil {
		return err
	}
	if err := d.OnInlineQuery(func(c *telegram.Context[*Model], q *telegram.InlineQuery) error {
		b := q.Builder().Article("greeting", c.Model.MenuButton, c.Model.Greeting)
		return q.Answer(bot, b.Results(), 300)
	}); err != nil {
		return err
	}

	if cfg.DebugDump {
		return d.AddExpressionHandler(func(*telegram.NewMessage) bool { return true }, func(c *telegram.Context[*Model], m *telegram.NewMessage) error {
			_, err := pp.Println(c.Update, "UPDATE")
			return err
		})
	}
	return nil
}
