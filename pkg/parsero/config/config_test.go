package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("nil data yields empty config", func(t *testing.T) {
		cfg := New(nil)
		assert.False(t, cfg.Has("anything"))
		assert.Equal(t, "fallback", cfg.String("anything", "fallback"))
	})

	t.Run("values are readable", func(t *testing.T) {
		cfg := New(map[string]any{"name": "parsero"})
		assert.True(t, cfg.Has("name"))
		assert.Equal(t, "parsero", cfg.String("name", ""))
	})
}

func TestConfig_String(t *testing.T) {
	cfg := New(map[string]any{
		"name":  "parsero",
		"count": 3,
	})

	assert.Equal(t, "parsero", cfg.String("name", "default"))
	assert.Equal(t, "default", cfg.String("missing", "default"))
	assert.Equal(t, "default", cfg.String("count", "default"), "wrong type falls back")
}

func TestConfig_Bool(t *testing.T) {
	cfg := New(map[string]any{
		"tracing": true,
		"name":    "parsero",
	})

	assert.True(t, cfg.Bool("tracing", false))
	assert.True(t, cfg.Bool("missing", true))
	assert.False(t, cfg.Bool("name", false), "wrong type falls back")
}

func TestConfig_Int(t *testing.T) {
	cfg := New(map[string]any{
		"int":        42,
		"int64":      int64(43),
		"whole":      float64(44),
		"fractional": 44.5,
		"name":       "parsero",
	})

	assert.Equal(t, 42, cfg.Int("int", 0))
	assert.Equal(t, 43, cfg.Int("int64", 0))
	assert.Equal(t, 44, cfg.Int("whole", 0))
	assert.Equal(t, -1, cfg.Int("fractional", -1), "fractional float falls back")
	assert.Equal(t, -1, cfg.Int("name", -1))
	assert.Equal(t, 100, cfg.Int("missing", 100))
}

func TestConfig_Float(t *testing.T) {
	cfg := New(map[string]any{
		"float": 1.5,
		"int":   2,
		"int64": int64(3),
		"name":  "parsero",
	})

	assert.Equal(t, 1.5, cfg.Float("float", 0))
	assert.Equal(t, 2.0, cfg.Float("int", 0))
	assert.Equal(t, 3.0, cfg.Float("int64", 0))
	assert.Equal(t, -1.0, cfg.Float("name", -1.0))
	assert.Equal(t, 9.9, cfg.Float("missing", 9.9))
}

func TestFromYAML(t *testing.T) {
	t.Run("valid yaml", func(t *testing.T) {
		cfg, err := FromYAML([]byte("app_name: parsero\nmax_iterations: 50\ntracing: true\n"))
		require.NoError(t, err)

		assert.Equal(t, "parsero", cfg.String("app_name", ""))
		assert.Equal(t, 50, cfg.Int("max_iterations", 0))
		assert.True(t, cfg.Bool("tracing", false))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := FromYAML([]byte("{invalid"))
		assert.Error(t, err)
	})
}

func TestFromJSON(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		cfg, err := FromJSON([]byte(`{"app_name": "parsero", "max_iterations": 50}`))
		require.NoError(t, err)

		assert.Equal(t, "parsero", cfg.String("app_name", ""))
		assert.Equal(t, 50, cfg.Int("max_iterations", 0))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := FromJSON([]byte("not json"))
		assert.Error(t, err)
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("app_name: parsero\n"), 0o600))

		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "parsero", cfg.String("app_name", ""))
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"metrics": true}`), 0o600))

		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.True(t, cfg.Bool("metrics", false))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
