package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/lumen/config"
	"github.com/plus3/lumen/particles"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/engine.toml")
	require.NoError(t, err)

	assert.Equal(t, "bouncing balls", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, "headless", cfg.Window.Backend)
	assert.Equal(t, 60, cfg.Window.TargetFPS, "missing keys keep defaults")
	assert.Equal(t, 0.5, cfg.Physics.Restitution)
	assert.True(t, cfg.Physics.DebugDraw)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "presets.yaml", cfg.Particles.Presets)
	assert.Equal(t, "scripts", cfg.Script.Dir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("testdata/nope.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read config testdata/nope.toml")
}

func TestParseUnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("[window]\nwidht = 10\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestParseSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\n"), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
	assert.InDelta(t, 1.0/60, config.Default().Window.FrameInterval(), 1e-12)
}

func TestValidateCollectsEveryError(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Width = 0
	cfg.Window.TargetFPS = -1
	cfg.Window.Backend = "sdl"
	cfg.Physics.Restitution = -1
	cfg.Logging.Format = "xml"
	cfg.Audio.Volume = 3

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 6)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewLogger(t *testing.T) {
	for _, tc := range []struct {
		cfg   config.LoggingConfig
		level zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "loud", Format: "console"}, zapcore.InfoLevel},
	} {
		log, err := config.NewLogger(tc.cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tc.level))
		assert.False(t, log.Core().Enabled(tc.level-1))
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.log")
	log, err := config.NewLogger(config.LoggingConfig{Level: "info", Format: "console", File: path})
	require.NoError(t, err)
	log.Info("hello file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.Contains(t, string(data), "INFO")
}

func TestLoadPresets(t *testing.T) {
	presets, err := config.LoadPresets("testdata/presets.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"explosion", "sparks"}, presets.Names())

	sparks, err := presets.Get("sparks")
	require.NoError(t, err)
	assert.Equal(t, particles.Cone, sparks.Shape)
	assert.Equal(t, 40.0, sparks.EmissionRate)
	assert.Equal(t, 60, sparks.MaxParticles)
	assert.Equal(t, uint8(200), sparks.StartColor.G)
	assert.Equal(t, uint8(0), sparks.EndColor.A)
	assert.Equal(t, particles.DefaultConfig().SizeMax, sparks.SizeMax, "unlisted fields keep defaults")

	boom, err := presets.Get("explosion")
	require.NoError(t, err)
	assert.False(t, boom.Emitting)
	assert.False(t, boom.Loop)
	assert.Equal(t, 200.0, boom.VelocityMax.X)
	assert.Equal(t, 0.0, boom.Acceleration.Y)
}

func TestLoadPresetsReportsEveryBadEntry(t *testing.T) {
	_, err := config.LoadPresets("testdata/bad_presets.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, particles.ErrInvalidEmissionRate)
	assert.Contains(t, err.Error(), `preset "broken"`)
	assert.Contains(t, err.Error(), `preset "weird"`)
	assert.NotContains(t, err.Error(), `preset "fine"`)
}
