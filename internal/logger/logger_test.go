package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
	}{
		{name: "console info", json: false, debug: false},
		{name: "json debug", json: true, debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  component  ", Value: "  matching  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "component", fields[0].Key)
	assert.Equal(t, "matching", fields[0].String)
	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])
}

func TestWithFields_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithFields(nil, zap.String("foo", "bar")).Info("dropped")
	})
}

func TestComponent(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	Component(zap.New(core), "embedding").Warn("unavailable")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "embedding", entries[0].ContextMap()[FieldComponent])
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "hello", TruncateForLog("  hello  ", 10))
	assert.Equal(t, "hel...", TruncateForLog("hello", 3))
	assert.Equal(t, "", TruncateForLog("hello", 0))
	assert.Equal(t, "résu...", TruncateForLog("résumé", 4))
}
