package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestNew(t *testing.T) {
	t.Run("nil config uses production defaults", func(t *testing.T) {
		l, err := New(nil, DefaultServiceName)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("file output at requested level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "warn", Format: "console", Output: path}, "test")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
		_ = l.Sync()
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New(&Config{Format: "xml"}, "test")
		assert.ErrorIs(t, err, ErrInvalidLogFormat)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := New(&Config{Level: "loud"}, "test")
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}
