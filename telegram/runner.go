// Copyright (c) 2024 RoseLoverX

package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/amarnathcjd/tghelper/internal/utils"
)

// Handler is the part of Dispatcher the runner drives.
type Handler interface {
	Dispatch(ctx context.Context, u *tgbotapi.Update) error
}

// RunnerConfig is the configuration struct for the runner
type RunnerConfig struct {
	// Updates dispatched at once, default: 64
	MaxWorkers int
	// Updates per second accepted from one user, default: unlimited
	PerUserRate float64
	// Burst of updates accepted from one user, default: 5
	PerUserBurst int
	// Users never rate limited
	Exempt []int64
	// Custom logger, default: text logger prefixed "tghelper runner"
	Logger Logger
}

// Runner feeds updates from a channel into a dispatcher, one goroutine per
// update. Updates of different users run concurrently.
type Runner struct {
	h        Handler
	sem      chan struct{}
	limit    rate.Limit
	burst    int
	limiters *utils.SyncMap[int64, *rate.Limiter]
	exempt   *utils.SyncSet[int64]
	wg       sync.WaitGroup
	Log      Logger
}

func NewRunner(h Handler, c RunnerConfig) *Runner {
	r := &Runner{
		h:        h,
		sem:      make(chan struct{}, getInt(c.MaxWorkers, 64)),
		limit:    rate.Inf,
		burst:    getInt(c.PerUserBurst, 5),
		limiters: utils.NewSyncMap[int64, *rate.Limiter](),
		exempt:   utils.NewSyncSet[int64](),
		Log:      c.Logger,
	}
	if c.PerUserRate > 0 {
		r.limit = rate.Limit(c.PerUserRate)
	}
	for _, id := range c.Exempt {
		r.exempt.Add(id)
	}
	if r.Log == nil {
		r.Log = NewLogger(LoggerConfig{Level: LogInfo, Prefix: "tghelper runner", Color: true})
	}
	return r
}

// Exempt removes the rate limit for a user.
func (r *Runner) Exempt(userID int64) {
	r.exempt.Add(userID)
	r.limiters.Delete(userID)
}

// Allow reports whether the user may be dispatched another update now.
func (r *Runner) Allow(userID int64) bool {
	if r.limit == rate.Inf || r.exempt.Has(userID) {
		return true
	}
	l, ok := r.limiters.Get(userID)
	if !ok {
		r.limiters.Add(userID, rate.NewLimiter(r.limit, r.burst))
		l, _ = r.limiters.Get(userID)
	}
	return l.Allow()
}

// Run dispatches updates until ctx ends or the channel is closed. It
// returns without waiting for in-flight updates; use Wait for that.
func (r *Runner) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if user := SenderOf(&u); user != nil && !r.Allow(user.ID) {
				r.Log.WithField("user", user.ID).Warn("flood limit exceeded, dropping update %d", u.UpdateID)
				continue
			}

			select {
			case r.sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			r.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-r.sem
					r.wg.Done()
				}()
				if err := r.h.Dispatch(ctx, &u); err != nil {
					r.Log.WithError(err).WithField("update", u.UpdateID).Error("[Dispatch]")
				}
			}(u)
		}
	}
}

// Wait blocks until every dispatched update finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
