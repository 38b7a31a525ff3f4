package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestDefaultLoggerIsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before init", zap.Int("n", 1))
		Sugar.Debugf("before init %d", 2)
	})
}

func TestInitWritesRotatingFile(t *testing.T) {
	prev, prevSugar := Log, Sugar
	t.Cleanup(func() { Log, Sugar = prev, prevSugar })

	path := filepath.Join(t.TempDir(), "gridcaster.log")
	require.NoError(t, InitWithFileConfig("debug", DefaultFileConfig(path), false))

	Debug("frame rendered", zap.Int("frame", 7))
	Warn("texture missing", zap.String("name", "brick"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "frame rendered"))
	assert.True(t, strings.Contains(out, `"name":"brick"`))
}

func TestLevelFiltersFileOutput(t *testing.T) {
	prev, prevSugar := Log, Sugar
	t.Cleanup(func() { Log, Sugar = prev, prevSugar })

	path := filepath.Join(t.TempDir(), "quiet.log")
	require.NoError(t, InitWithFileConfig("error", DefaultFileConfig(path), false))

	Info("dropped")
	Error("kept")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
