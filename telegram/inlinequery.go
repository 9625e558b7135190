package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type (
	InlineQuery struct {
		*tgbotapi.InlineQuery
	}

	InlineBuilder struct {
		QueryID       string
		InlineResults []any
	}
)

func (b *InlineQuery) SenderID() int64 {
	if b.From != nil {
		return b.From.ID
	}
	return 0
}

func (b *InlineQuery) Builder() *InlineBuilder {
	return &InlineBuilder{QueryID: b.ID}
}

// Answer sends the collected results back to the platform.
func (b *InlineQuery) Answer(api Requester, results []any, cacheTime int) error {
	_, err := api.Request(tgbotapi.InlineConfig{
		InlineQueryID: b.ID,
		Results:       results,
		CacheTime:     cacheTime,
	})
	return errors.Wrap(err, "answering inline query")
}

// Article appends a plain text article result.
func (b *InlineBuilder) Article(id, title, text string) *InlineBuilder {
	b.InlineResults = append(b.InlineResults, tgbotapi.NewInlineQueryResultArticle(id, title, text))
	return b
}

func (b *InlineBuilder) Results() []any {
	return b.InlineResults
}
