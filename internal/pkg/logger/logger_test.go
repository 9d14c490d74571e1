package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_ErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "pricing", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithQuoteID(ctx, "q-9")
	log.Error(ctx, "boom", errors.New("spanner down"))

	entry := decode(t, buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "q-9", entry["quote_id"])
	assert.Equal(t, "spanner down", entry["error"])
	assert.Equal(t, "pricing", entry["service"])
	assert.Equal(t, "error", entry["level"])
}

func TestLogger_FieldsDoNotLeakToParentContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "pricing", Output: buf})

	parent := context.Background()
	_ = log.WithFields(parent, map[string]any{"rule_count": 3})
	log.Info(parent, "hello")

	entry := decode(t, buf)
	assert.NotContains(t, entry, "rule_count")
}

func TestLogger_InfoFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "pricing", Output: buf})

	log.InfoFields(context.Background(), "evaluated", map[string]any{"applied": []string{"a", "b"}})

	entry := decode(t, buf)
	assert.Equal(t, []any{"a", "b"}, entry["applied"])
}

func TestLogger_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "pricing", Level: zerolog.WarnLevel, Output: buf})

	log.Info(context.Background(), "quiet")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "loud", nil)
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error(log.WithRequestID(context.Background(), "x"), "ignored", errors.New("x"))
	})
}
