package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/scenes"
)

func TestLoadConfig_WithFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	cfg := "logLevel: debug\nwindow:\n  scale: 0.5\ndata: levels/hard.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	require.NoError(t, LoadConfig(path))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 0.5, viper.GetFloat64("window.scale"))
	assert.Equal(t, "levels/hard.yaml", viper.GetString("data"))
	assert.Equal(t, "console", viper.GetString("logFormat"))
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "console", viper.GetString("logFormat"))
	assert.Equal(t, "", viper.GetString("logFile"))
	assert.Equal(t, config.DefaultGameConfigPath, viper.GetString("data"))
	assert.Equal(t, 60, viper.GetInt("tps"))
	assert.Equal(t, "waterguns", viper.GetString("settings.appName"))
	assert.Equal(t, "Water Guns", viper.GetString("window.title"))
	assert.Equal(t, 1.0, viper.GetFloat64("window.scale"))
	assert.Equal(t, true, viper.GetBool("sound.enabled"))
}

func TestLoadConfig_FoundInWorkingDir(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waterguns.yaml"), []byte("tps: 30\n"), 0o644))

	require.NoError(t, LoadConfig(""))
	assert.Equal(t, 30, viper.GetInt("tps"))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := LoadConfig("/nonexistent/waterguns.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WATERGUNS_WINDOW_SCALE", "2")
	t.Setenv("WATERGUNS_LOGLEVEL", "warn")

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, 2.0, viper.GetFloat64("window.scale"))
	assert.Equal(t, "warn", viper.GetString("logLevel"))
}

func TestLoadGameData(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("data", "../../data/game.yaml")
	cfg, err := LoadGameData()
	require.NoError(t, err)
	assert.Equal(t, 1280.0, cfg.Field.Width)

	viper.Set("data", "/nonexistent/game.yaml")
	_, err = LoadGameData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load game data")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" Warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"off", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestSetupLogging(t *testing.T) {
	original := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		viper.Reset()
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})

	t.Run("JSON 格式", func(t *testing.T) {
		viper.Set("logLevel", "debug")
		viper.Set("logFormat", "json")
		var buf bytes.Buffer

		cleanup, err := SetupLogging(&buf)
		require.NoError(t, err)
		defer cleanup()

		log.Debug().Str("system", "Test").Msg("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["message"])
		assert.Equal(t, "Test", entry["system"])
		assert.Equal(t, "debug", entry["level"])
	})

	t.Run("级别过滤", func(t *testing.T) {
		viper.Set("logLevel", "error")
		viper.Set("logFormat", "json")
		var buf bytes.Buffer

		cleanup, err := SetupLogging(&buf)
		require.NoError(t, err)
		defer cleanup()

		log.Info().Msg("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("同时写入日志文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "waterguns.log")
		viper.Set("logLevel", "info")
		viper.Set("logFormat", "console")
		viper.Set("logFile", path)
		var buf bytes.Buffer

		cleanup, err := SetupLogging(&buf)
		require.NoError(t, err)
		log.Info().Msg("to both")
		cleanup()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to both")
		assert.Contains(t, buf.String(), "to both")
	})

	t.Run("日志文件无法打开", func(t *testing.T) {
		viper.Set("logFile", filepath.Join(t.TempDir(), "missing", "x.log"))
		_, err := SetupLogging(&bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestNewApp(t *testing.T) {
	cfg := config.DefaultGameConfig()
	a, err := NewApp(cfg, game.NewSettingsManager(nil), nil)
	require.NoError(t, err)

	w, h := a.Layout(1920, 1080)
	assert.Equal(t, int(cfg.Field.Width), w)
	assert.Equal(t, int(cfg.Field.Height), h)

	_, ok := a.SceneManager().CurrentScene().(*scenes.BattleScene)
	assert.True(t, ok, "first scene should be a battle")
	assert.True(t, a.SceneManager().SaveOnExit())
}
