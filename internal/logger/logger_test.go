package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := NewWithWriter(EnvLocal, &buf)

	log.With(slog.String("op", "booking.create")).
		WithGroup("req").
		Debug("booking stored", slog.Int("total", 14999), Err(errors.New("none")))

	out := buf.String()
	assert.Contains(t, out, "DEBUG:")
	assert.Contains(t, out, "booking stored")
	assert.Contains(t, out, `"op": "booking.create"`)
	assert.Contains(t, out, `"req.total": 14999`)
	assert.Contains(t, out, `"req.error": "none"`)
}

func TestPrettyHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.New(h).Info("hidden")
	assert.Empty(t, buf.String())
}

func TestJSONEnvironments(t *testing.T) {
	for _, env := range []string{EnvDev, EnvProd, "staging"} {
		var buf bytes.Buffer
		NewWithWriter(env, &buf).Info("ready", slog.String("env", env))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), env)
		assert.Equal(t, "ready", rec["msg"])
		assert.Equal(t, env, rec["env"])
	}

	var buf bytes.Buffer
	NewWithWriter(EnvProd, &buf).Debug("dropped")
	assert.Empty(t, buf.String())
}

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "", Err(nil).Value.String())
}
