package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/foundry/core/factory"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Warnw("warn", map[string]any{"k": 2})
	l.Errorf("error")
}

func TestZerologLogger_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("lvl", &buf)
	l.Infof("hidden")
	l.Warnf("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func decodeLines(t *testing.T, s string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestObserver(t *testing.T) {
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	var buf bytes.Buffer
	o := NewObserver(NewZerologLoggerWithWriter("factory", &buf))
	o.Observe(factory.Event{Op: factory.OpCreate, Scope: "connectors", Key: "a.json", Duration: 2 * time.Millisecond})
	o.Observe(factory.Event{Op: factory.OpCreate, Scope: "connectors", Key: "a.csv",
		Err: &factory.UnsupportedDiscriminatorError{Discriminator: "a.csv"}})

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "factory", lines[0]["component"])
	assert.Equal(t, "a.json", lines[0]["key"])
	assert.Equal(t, "ok", lines[0]["outcome"])
	assert.InDelta(t, 2.0, lines[0]["duration_ms"], 1e-9)
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "unsupported", lines[1]["outcome"])
	assert.Contains(t, lines[1]["error"], "a.csv")

	NewObserver(nil).Observe(factory.Event{Err: errors.New("ignored")})
}
