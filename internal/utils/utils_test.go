package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/tghelper/internal/utils"
)

func newBufferLogger(level utils.LogLevel, formatter utils.LogFormatter) (*utils.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return utils.NewLoggerWithConfig(&utils.LoggerConfig{
		Level:     level,
		Prefix:    "test",
		Output:    buf,
		Formatter: formatter,
	}), buf
}

func TestLoggerLevels(t *testing.T) {
	log, buf := newBufferLogger(utils.WarnLevel, nil)
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown %d", 1)
	log.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  test shown 1")
	assert.Contains(t, out, "ERROR test shown 2")

	buf.Reset()
	log.SetLevel(utils.NoLevel)
	log.Error("silenced")
	assert.Empty(t, buf.String())
}

func TestLoggerFields(t *testing.T) {
	log, buf := newBufferLogger(utils.TraceLevel, nil)
	child := log.WithField("user", 7).WithFields(map[string]any{"kind": "message"}).WithError(errors.New("boom"))
	child.Info("dispatched")
	log.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "dispatched [kind=message user=7] error=boom")
	assert.NotContains(t, lines[1], "user=", "fields must not leak into the parent")
}

func TestLoggerJSON(t *testing.T) {
	log, buf := newBufferLogger(utils.InfoLevel, &utils.JSONFormatter{})
	log.WithPrefix("json").WithField("update", 3).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "json", entry["prefix"])
	assert.Equal(t, float64(3), entry["update"])
}

func TestLoggerCaller(t *testing.T) {
	log, buf := newBufferLogger(utils.InfoLevel, nil)
	log.ShowCaller(true).Info("where")
	assert.Contains(t, buf.String(), "utils_test.go:")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]utils.LogLevel{
		"trace":   utils.TraceLevel,
		"DEBUG":   utils.DebugLevel,
		" info ":  utils.InfoLevel,
		"warning": utils.WarnLevel,
		"error":   utils.ErrorLevel,
		"disable": utils.NoLevel,
		"bogus":   utils.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, utils.ParseLevel(in), in)
	}
}

func TestSyncMap(t *testing.T) {
	m := utils.NewSyncMap[string, int]()
	assert.True(t, m.Add("b", 1))
	assert.False(t, m.Add("b", 2))
	m.Set("a", 3)

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a", "b"}, utils.SortedKeys(m))

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 1, m.Len())
}

func TestSyncMapConcurrentAdd(t *testing.T) {
	m := utils.NewSyncMap[int, int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if m.Add(1, i) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestSyncSet(t *testing.T) {
	s := utils.NewSyncSet[int64](1, 2)
	assert.True(t, s.Has(1))
	assert.False(t, s.Add(2))
	assert.True(t, s.Add(3))
	s.Delete(1)
	assert.False(t, s.Has(1))
	assert.Equal(t, 2, s.Len())
}
