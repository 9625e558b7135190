package telegram

import "time"

func getStr(a string, b string) string {
	if a == "" {
		return b
	}
	return a
}

func getInt(a int, b int) int {
	if a == 0 {
		return b
	}
	return a
}

func getRune(a rune, b rune) rune {
	if a == 0 {
		return b
	}
	return a
}

func getDuration(a time.Duration, b time.Duration) time.Duration {
	if a <= 0 {
		return b
	}
	return a
}

func getVariadic[T comparable](opts []T, def T) T {
	if len(opts) == 0 {
		return def
	}
	first := opts[0]
	var zero T
	if first == zero {
		return def
	}
	return first
}
