package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("writes JSON entries to a file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("service started", zap.String("port", "8080"))
		require.NoError(t, Sync(log))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "service started", entry["msg"])
		assert.Equal(t, "8080", entry["port"])
		assert.NotEmpty(t, entry["time"])
		assert.NotEmpty(t, entry["caller"])
	})

	t.Run("suppresses entries below the configured level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(&Config{Level: "warn", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("ignored")
		log.Warn("kept")
		require.NoError(t, Sync(log))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "ignored")
		assert.Contains(t, string(raw), "kept")
	})

	t.Run("rejects an unwritable file sink", func(t *testing.T) {
		_, err := New(&Config{
			Level:  "info",
			Format: "json",
			Output: filepath.Join(t.TempDir(), "missing", "app.log"),
		})
		assert.ErrorContains(t, err, "failed to open log output")
	})

	t.Run("console and stdout work without a file", func(t *testing.T) {
		log, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}

func TestLevelFor(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"warn":     zapcore.WarnLevel,
		"WARNING":  zapcore.WarnLevel,
		"error":    zapcore.ErrorLevel,
		"fatal":    zapcore.FatalLevel,
		"":         zapcore.InfoLevel,
		"verbose":  zapcore.InfoLevel,
		"CRITICAL": zapcore.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, levelFor(input), "level %q", input)
	}
}

func TestOpenSink(t *testing.T) {
	t.Run("stdout and stderr need no filesystem", func(t *testing.T) {
		for _, out := range []string{"stdout", "STDERR", ""} {
			sink, err := openSink(out)
			require.NoError(t, err, "output %q", out)
			assert.NotNil(t, sink)
		}
	})

	t.Run("file sink appends across reopens", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		for i := 0; i < 2; i++ {
			sink, err := openSink(path)
			require.NoError(t, err)
			_, err = sink.Write([]byte("line\n"))
			require.NoError(t, err)
		}

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "line\nline\n", string(raw))
	})
}

func TestBuildEncoder(t *testing.T) {
	t.Run("defaults the timestamp layout", func(t *testing.T) {
		enc := buildEncoder(&Config{Format: "json"})
		assert.NotNil(t, enc)
	})

	t.Run("honors a custom layout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(&Config{
			Level:      "info",
			Format:     "json",
			Output:     path,
			TimeFormat: "2006-01-02",
		})
		require.NoError(t, err)

		log.Info("dated")
		require.NoError(t, Sync(log))

		var entry map[string]interface{}
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &entry))
		assert.Len(t, entry["time"], len("2006-01-02"))
	})
}
