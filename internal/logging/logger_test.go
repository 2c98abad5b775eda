package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":       zapcore.WarnLevel,
		"debug":  zapcore.DebugLevel,
		"INFO":   zapcore.InfoLevel,
		" warn ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, "level %q", in)
		require.Equal(t, want, got, "level %q", in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("warn", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("key", "counter-storage"))
	require.NoError(t, log.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "counter-storage")
}
