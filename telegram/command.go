// Copyright (c) 2024 RoseLoverX

package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Command is callback data split on the dispatcher's separator. Used as a
// registration pattern, a blank segment matches any value at its position.
type Command []string

// ParseCommand splits data on sep. Empty segments are kept, so
// "a~~b" has three segments.
func ParseCommand(data string, sep rune) Command {
	return Command(strings.Split(data, string(sep)))
}

// JoinCommand encodes parts as callback data understood by ParseCommand.
func JoinCommand(sep rune, parts ...any) string {
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = fmt.Sprint(p)
	}
	return strings.Join(segments, string(sep))
}

// Matches reports whether the payload c satisfies pattern: both must have
// the same number of segments and every non-blank pattern segment must be
// equal to the payload segment at the same index.
func (c Command) Matches(pattern Command) bool {
	if len(c) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if c[i] != p {
			return false
		}
	}
	return true
}

func (c Command) Len() int {
	return len(c)
}

// Arg returns segment i, or "" when out of range.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

func (c Command) Int(i int) (int, error) {
	if i < 0 || i >= len(c) {
		return 0, errors.Errorf("command has %d segments, no index %d", len(c), i)
	}
	n, err := strconv.Atoi(c[i])
	if err != nil {
		return 0, errors.Wrapf(err, "command segment %d", i)
	}
	return n, nil
}

func (c Command) String() string {
	return strings.Join(c, " | ")
}
