// Copyright (c) 2024 RoseLoverX

package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SnifferID identifies one queued sniffer.
type SnifferID string

// Sniffer is a one-shot interceptor queued for a single user. The first
// queued sniffer whose kinds contain an incoming update's kind absorbs that
// update: it leaves the queue once Validate returns true, and stays queued
// (after OnFailure) when Validate returns false.
type Sniffer interface {
	Kinds() []UpdateKind
	Validate(ctx context.Context, u *tgbotapi.Update) (bool, error)
	OnSuccess(ctx context.Context, u *tgbotapi.Update) error
	OnFailure(ctx context.Context, u *tgbotapi.Update) error
}

type (
	SnifferValidate     func(ctx context.Context, u *tgbotapi.Update) (bool, error)
	SnifferContinuation func(ctx context.Context, u *tgbotapi.Update) error
)

type funcSniffer struct {
	kinds     []UpdateKind
	validate  SnifferValidate
	onSuccess SnifferContinuation
	onFailure SnifferContinuation
}

// NewSniffer builds a sniffer from functions. A nil validate accepts every
// update; nil continuations do nothing.
func NewSniffer(kinds []UpdateKind, validate SnifferValidate, onSuccess, onFailure SnifferContinuation) Sniffer {
	return &funcSniffer{
		kinds:     kinds,
		validate:  validate,
		onSuccess: onSuccess,
		onFailure: onFailure,
	}
}

func (s *funcSniffer) Kinds() []UpdateKind {
	return s.kinds
}

func (s *funcSniffer) Validate(ctx context.Context, u *tgbotapi.Update) (bool, error) {
	if s.validate == nil {
		return true, nil
	}
	return s.validate(ctx, u)
}

func (s *funcSniffer) OnSuccess(ctx context.Context, u *tgbotapi.Update) error {
	if s.onSuccess == nil {
		return nil
	}
	return s.onSuccess(ctx, u)
}

func (s *funcSniffer) OnFailure(ctx context.Context, u *tgbotapi.Update) error {
	if s.onFailure == nil {
		return nil
	}
	return s.onFailure(ctx, u)
}

type snifferItem struct {
	id      SnifferID
	kinds   kindSet
	sniffer Sniffer
}

// snifferEntry is the queue of one user. turn serializes interceptions for
// that user; busy (guarded by the queue lock) keeps the entry in the map
// while an interception holds it, so later updates wait on the same turn.
type snifferEntry struct {
	turn  sync.Mutex
	mu    sync.Mutex
	items []*snifferItem
	busy  int
}

// SnifferQueue holds the pending sniffers of every user.
type SnifferQueue struct {
	mu    sync.Mutex
	users map[int64]*snifferEntry
}

func NewSnifferQueue() *SnifferQueue {
	return &SnifferQueue{users: make(map[int64]*snifferEntry)}
}

// Enqueue appends s to the user's queue and returns its ticket.
func (q *SnifferQueue) Enqueue(userID int64, s Sniffer) SnifferID {
	item := &snifferItem{
		id:      SnifferID(uuid.NewString()),
		kinds:   newKindSet(s.Kinds()),
		sniffer: s,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.users[userID]
	if !ok {
		e = &snifferEntry{}
		q.users[userID] = e
	}
	e.mu.Lock()
	e.items = append(e.items, item)
	e.mu.Unlock()
	return item.id
}

// Remove retires a queued sniffer. It reports false when the sniffer
// already left the queue.
func (q *SnifferQueue) Remove(userID int64, id SnifferID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.users[userID]
	if !ok {
		return false
	}
	removed := e.remove(id)
	q.pruneLocked(userID, e)
	return removed
}

// Len returns the number of sniffers queued for the user.
func (q *SnifferQueue) Len(userID int64) int {
	q.mu.Lock()
	e, ok := q.users[userID]
	q.mu.Unlock()
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Users returns how many users have a non-empty queue.
func (q *SnifferQueue) Users() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.users {
		e.mu.Lock()
		if len(e.items) > 0 {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// Intercept offers u to the user's sniffers. consumed is true whenever a
// sniffer with a matching kind was found, whatever it decided; normal
// routing must not run for a consumed update.
func (q *SnifferQueue) Intercept(ctx context.Context, userID int64, u *tgbotapi.Update) (consumed bool, err error) {
	q.mu.Lock()
	e, ok := q.users[userID]
	if !ok {
		q.mu.Unlock()
		return false, nil
	}
	e.busy++
	q.mu.Unlock()
	defer q.release(userID, e)

	e.turn.Lock()
	defer e.turn.Unlock()

	item := e.first(KindOf(u))
	if item == nil {
		return false, nil
	}

	ok, err = item.sniffer.Validate(ctx, u)
	if err != nil {
		return true, errors.Wrap(err, "validating sniffer")
	}
	if !ok {
		return true, item.sniffer.OnFailure(ctx, u)
	}

	q.mu.Lock()
	e.remove(item.id)
	q.mu.Unlock()
	return true, item.sniffer.OnSuccess(ctx, u)
}

func (q *SnifferQueue) release(userID int64, e *snifferEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e.busy--
	q.pruneLocked(userID, e)
}

// pruneLocked drops an idle empty entry. Callers hold q.mu.
func (q *SnifferQueue) pruneLocked(userID int64, e *snifferEntry) {
	if e.busy > 0 || q.users[userID] != e {
		return
	}
	e.mu.Lock()
	empty := len(e.items) == 0
	e.mu.Unlock()
	if empty {
		delete(q.users, userID)
	}
}

func (e *snifferEntry) first(kind UpdateKind) *snifferItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.items {
		if item.kinds.has(kind) {
			return item
		}
	}
	return nil
}

func (e *snifferEntry) remove(id SnifferID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, item := range e.items {
		if item.id == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return true
		}
	}
	return false
}
