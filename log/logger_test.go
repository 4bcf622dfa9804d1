package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	SetLevel(Notice)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")
	logger.Info("hidden")
	logger.Notice("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[test] [NOTICE]")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value %d", 42)
	require.Contains(t, buf.String(), "value 42")

	buf.Reset()
	SetLevel(Error)
	logger.Warning("quiet")
	require.Empty(t, buf.String())
}

func TestSetSinkKeepsLevel(t *testing.T) {
	defer SetLevel(Notice)
	SetLevel(Debug)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	New("sink").Debug("still verbose")
	require.Contains(t, buf.String(), "still verbose")
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"debug":   Debug,
		"info":    Info,
		"notice":  Notice,
		"warn":    Warning,
		"warning": Warning,
		"error":   Error,
	} {
		level, err := ParseLevel(name)
		require.NoError(t, err, name)
		require.Equal(t, want, level, name)
	}

	_, err := ParseLevel("verbose")
	require.EqualError(t, err, `unknown log level "verbose"`)
}
