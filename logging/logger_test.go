package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any

	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		m := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}

	return out
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown", "column", "email")
	l.Error("also shown", "type", "User", "err", "boom")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, "email", lines[0]["column"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "User", lines[1]["type"])
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "chatty")
	l.Info("hidden")
	l.Warn("shown")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestOddKeysAndValues(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "debug")
	l.Debug("odd", "dangling", 42, "tail")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.InDelta(t, 42, lines[0]["dangling"], 0)
	assert.Contains(t, lines[0], "tail")
	assert.Nil(t, lines[0]["tail"])
}

func TestNopAndOrDefault(t *testing.T) {
	n := Nop()
	n.Error("nothing happens")

	assert.Same(t, n, OrDefault(n))
	assert.NotNil(t, OrDefault(nil))
}

func TestErrorValuesAreMessages(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "info")
	l.Info("failed", "err", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "boom", lines[0]["err"])
}
