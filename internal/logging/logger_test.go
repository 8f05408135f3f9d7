package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/config"
	"jobly/internal/logging/adapters"
)

func newBufferedLogger(t *testing.T) (*MultiLogger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	l := NewMultiLogger()
	require.NoError(t, l.AddAdapter(adapters.NewStdoutAdapter("buf", adapters.StdoutConfig{Format: "json", Writer: &buf})))
	return l, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestMultiLoggerLevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.SetLevel(WarnLevel)

	l.Info("dropped")
	l.Warn("kept")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
	assert.Equal(t, "warn", lines[0]["level"])
}

func TestMultiLoggerDerivedFields(t *testing.T) {
	l, buf := newBufferedLogger(t)

	derived := l.WithField("request_id", "abc").WithError(errors.New("boom"))
	derived.Error("failed", map[string]interface{}{"job_id": 3})
	l.Info("plain")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0]["request_id"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, float64(3), lines[0]["job_id"])
	assert.NotContains(t, lines[1], "request_id")

	// level changes made through a derived logger are shared
	derived.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, l.GetLevel())
}

func TestMultiLoggerAdapters(t *testing.T) {
	l, _ := newBufferedLogger(t)

	require.Error(t, l.AddAdapter(adapters.NewStdoutAdapter("buf", adapters.StdoutConfig{})))
	require.NoError(t, l.RemoveAdapter("buf"))
	require.Error(t, l.RemoveAdapter("buf"))
}

func TestManagerInitialize(t *testing.T) {
	t.Run("falls back to stdout without adapters", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Level = "debug"

		m := NewManager()
		require.NoError(t, m.Initialize(cfg))
		assert.Equal(t, DebugLevel, m.GetLogger().GetLevel())
		require.NoError(t, m.Close())
	})

	t.Run("builds configured adapters", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Adapters = append(cfg.Logging.Adapters, config.LogAdapterConfig{
			Name:    "file",
			Type:    "file",
			Enabled: true,
			Options: map[string]interface{}{"file_path": filepath.Join(t.TempDir(), "jobly.log")},
		})

		m := NewManager()
		require.NoError(t, m.Initialize(cfg))
		require.NoError(t, m.Close())
	})

	t.Run("unknown adapter type fails", func(t *testing.T) {
		_, err := NewAdapterFactory().CreateAdapter(AdapterConfig{Name: "x", Type: "carrier-pigeon"})
		require.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, WarnLevel, ParseLogLevel("WARNING"))
	assert.Equal(t, InfoLevel, ParseLogLevel("nonsense"))
}
