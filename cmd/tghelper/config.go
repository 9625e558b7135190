package main

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config is read from the environment, after loading .env when present.
type Config struct {
	BotToken      string  `env:"BOT_TOKEN,required"`
	LocalesDir    string  `env:"LOCALES_DIR" envDefault:"./locales"`
	DefaultLocale string  `env:"DEFAULT_LOCALE" envDefault:"en"`
	LogLevel      string  `env:"LOG_LEVEL" envDefault:"info"`
	AdminIDs      []int64 `env:"ADMIN_IDS" envSeparator:","`
	RatePerUser   float64 `env:"RATE_PER_USER" envDefault:"1"`
	RateBurst     int     `env:"RATE_BURST" envDefault:"5"`
	MaxWorkers    int     `env:"MAX_WORKERS" envDefault:"64"`
	WatchLocales  bool    `env:"WATCH_LOCALES" envDefault:"false"`
	DebugDump     bool    `env:"DEBUG_DUMP" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	return &cfg, nil
}
