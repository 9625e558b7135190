// Copyright (c) 2024, amarnathcjd

package telegram

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Filter describes a message declaratively. Zero fields don't restrict;
// set fields must all hold. Blacklist inverts the result.
type Filter struct {
	Private, Group, Channel, Media, Command, Reply, Forward, FromBot, Blacklist bool
	Users, Chats                                                               []int64
	Func                                                                       func(m *NewMessage) bool
	// Advanced filters
	MinLength, MaxLength int      // Message text length constraints, in runes
	HasText, Edited      bool     // Text messages, edited messages only
	MediaTypes           []string // Allowed media types (e.g., ["photo", "video"])
}

func (f Filter) IsPrivate() Filter                         { f.Private = true; return f }
func (f Filter) IsGroup() Filter                           { f.Group = true; return f }
func (f Filter) IsChannel() Filter                         { f.Channel = true; return f }
func (f Filter) IsMedia() Filter                           { f.Media = true; return f }
func (f Filter) IsCommand() Filter                         { f.Command = true; return f }
func (f Filter) IsReply() Filter                           { f.Reply = true; return f }
func (f Filter) IsForward() Filter                         { f.Forward = true; return f }
func (f Filter) IsFromBot() Filter                         { f.FromBot = true; return f }
func (f Filter) IsEdited() Filter                          { f.Edited = true; return f }
func (f Filter) WithText() Filter                          { f.HasText = true; return f }
func (f Filter) FromUsers(users ...int64) Filter           { f.Users = users; return f }
func (f Filter) FromChats(chats ...int64) Filter           { f.Chats = chats; return f }
func (f Filter) MinLen(length int) Filter                  { f.MinLength = length; return f }
func (f Filter) MaxLen(length int) Filter                  { f.MaxLength = length; return f }
func (f Filter) WithMediaTypes(types ...string) Filter     { f.MediaTypes = types; return f }
func (f Filter) AsBlacklist() Filter                       { f.Blacklist = true; return f }
func (f Filter) Custom(fn func(m *NewMessage) bool) Filter { f.Func = fn; return f }

func NewFilter() Filter { return Filter{} }

var (
	FilterPrivate = Filter{Private: true}
	FilterGroup   = Filter{Group: true}
	FilterChannel = Filter{Channel: true}
	FilterMedia   = Filter{Media: true}
	FilterCommand = Filter{Command: true}
	FilterReply   = Filter{Reply: true}
	FilterForward = Filter{Forward: true}
)

func FilterUsers(users ...int64) Filter {
	return Filter{Users: users}
}

func FilterChats(chats ...int64) Filter {
	return Filter{Chats: chats}
}

// Predicate turns the filter into an expression handler predicate.
func (f Filter) Predicate() Predicate {
	return func(m *NewMessage) bool {
		return f.match(m) != f.Blacklist
	}
}

func (f Filter) match(m *NewMessage) bool {
	if f.Private && !m.IsPrivate() {
		return false
	}
	if f.Group && !m.IsGroup() {
		return false
	}
	if f.Channel && !m.IsChannel() {
		return false
	}
	if f.Media && !m.IsMedia() {
		return false
	}
	if f.Command && !m.IsCommand() {
		return false
	}
	if f.Reply && !m.IsReply() {
		return false
	}
	if f.Forward && m.ForwardDate == 0 {
		return false
	}
	if f.FromBot && (m.From == nil || !m.From.IsBot) {
		return false
	}
	if f.Edited && !m.IsEdited() {
		return false
	}
	if f.HasText && !m.IsText() {
		return false
	}
	if len(f.Users) > 0 && !slices.Contains(f.Users, m.SenderID()) {
		return false
	}
	if len(f.Chats) > 0 && !slices.Contains(f.Chats, m.ChatID()) {
		return false
	}
	if f.MinLength > 0 || f.MaxLength > 0 {
		n := utf8.RuneCountInString(m.Text)
		if f.MinLength > 0 && n < f.MinLength {
			return false
		}
		if f.MaxLength > 0 && n > f.MaxLength {
			return false
		}
	}
	if len(f.MediaTypes) > 0 && !slices.ContainsFunc(f.MediaTypes, func(t string) bool {
		return strings.EqualFold(t, m.MediaType())
	}) {
		return false
	}
	if f.Func != nil && !f.Func(m) {
		return false
	}
	return true
}
