package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbspec/internal/errs"
)

func newBuffered(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(&Config{Level: level, Format: "json", Output: buf}), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json config", config: &Config{Level: "debug", Format: "json"}},
		{name: "console config", config: &Config{Level: "info", Format: "console", Output: io.Discard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	logger, buf := newBuffered("info")

	logger.Info("test message")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "test message", lines[0]["message"])
	assert.NotEmpty(t, lines[0]["time"])
}

func TestLogger_WithFields(t *testing.T) {
	logger, buf := newBuffered("info")

	logger.With().
		Str("engine", "mysql").
		Err(errors.New("connection refused")).
		Logger().
		Info("probe started")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "mysql", lines[0]["engine"])
	assert.Equal(t, "connection refused", lines[0]["error"])
	assert.Equal(t, "probe started", lines[0]["message"])
}

func TestLogger_ErrorWith(t *testing.T) {
	logger, buf := newBuffered("error")

	logger.ErrorWith("probe failed", errors.New("connection refused"), map[string]any{
		"host": "localhost",
		"port": 3306,
	})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "connection refused", lines[0]["error"])
	assert.Equal(t, "localhost", lines[0]["host"])
	assert.Equal(t, float64(3306), lines[0]["port"])
}

func TestLogger_Context(t *testing.T) {
	logger, buf := newBuffered("info")

	FromContext(logger.WithContext(context.Background())).Info("from context")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "from context", lines[0]["message"])

	// Nothing stored: the returned logger is disabled rather than nil.
	assert.NotPanics(t, func() { FromContext(context.Background()).Info("dropped") })
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFunc  func(*Logger)
		expected bool
	}{
		{"debug level logs unmatched", "debug", func(l *Logger) { l.Diagnosis("MySQL", "odd", nil) }, true},
		{"info level skips unmatched", "info", func(l *Logger) { l.Diagnosis("MySQL", "odd", nil) }, false},
		{"warn level logs warn", "warn", func(l *Logger) { l.Warn("warn message") }, true},
		{"error level skips warn", "error", func(l *Logger) { l.Warn("warn message") }, false},
		{"error level logs error", "error", func(l *Logger) { l.ErrorWith("error message", errors.New("x"), nil) }, true},
		{"error level skips info", "error", func(l *Logger) { l.Info("info message") }, false},
		{"unknown level means info", "loud", func(l *Logger) { l.Info("info message") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBuffered(tt.level)

			tt.logFunc(logger)

			if tt.expected {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestLogger_Diagnosis(t *testing.T) {
	t.Run("matched", func(t *testing.T) {
		logger, buf := newBuffered("info")
		found := []errs.Error{*errs.New(errs.TypeAccessDenied, `Either the username "x" or the password is incorrect.`,
			errs.Extra{EngineName: "MySQL", Invalid: []string{"username", "password"}})}

		logger.Diagnosis("MySQL", "Access denied for user 'x'@'h'", found)

		lines := decodeLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "info", lines[0]["level"])
		assert.Equal(t, "CONNECTION_ACCESS_DENIED_ERROR", lines[0]["error_type"])
		assert.Equal(t, []any{float64(1014), float64(1015)}, lines[0]["issue_codes"])
		assert.Equal(t, []any{"username", "password"}, lines[0]["invalid"])
	})

	t.Run("unmatched at debug", func(t *testing.T) {
		logger, buf := newBuffered("debug")

		logger.Diagnosis("MySQL", "something odd", nil)

		lines := decodeLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "debug", lines[0]["level"])
		assert.Equal(t, "something odd", lines[0]["raw"])
	})

	t.Run("unmatched hidden at info", func(t *testing.T) {
		logger, buf := newBuffered("info")
		logger.Diagnosis("MySQL", "something odd", nil)
		assert.Empty(t, buf.String())
	})
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Warn("nothing") })
}

func TestLogger_TimeFormat(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, v any)
	}{
		{"rfc3339", func(t *testing.T, v any) {
			s, ok := v.(string)
			require.True(t, ok, "%T", v)
			_, err := time.Parse(time.RFC3339, s)
			assert.NoError(t, err)
		}},
		{"unix", func(t *testing.T, v any) {
			assert.InDelta(t, float64(time.Now().Unix()), v, 5)
		}},
		{"unixms", func(t *testing.T, v any) {
			assert.InDelta(t, float64(time.Now().UnixMilli()), v, 5000)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			New(&Config{Level: "info", Format: "json", TimeFormat: tt.format, Output: buf}).Info("tick")

			lines := decodeLines(t, buf)
			require.Len(t, lines, 1)
			tt.check(t, lines[0]["time"])
		})
	}
}

func TestNew_LeavesGlobalTimeFormat(t *testing.T) {
	before := zerolog.TimeFieldFormat

	var wg sync.WaitGroup
	for _, format := range []string{"unix", "unixms", "unixmicro", "rfc3339"} {
		wg.Add(1)
		go func(format string) {
			defer wg.Done()
			New(&Config{Level: "info", TimeFormat: format, Output: io.Discard}).Info("x")
		}(format)
	}
	wg.Wait()

	assert.Equal(t, before, zerolog.TimeFieldFormat)
}

func BenchmarkLogger_Diagnosis(b *testing.B) {
	logger := New(&Config{Level: "info", Format: "json", Output: io.Discard})
	found := []errs.Error{*errs.Generic("MySQL", "boom")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Diagnosis("MySQL", "boom", found)
	}
}
