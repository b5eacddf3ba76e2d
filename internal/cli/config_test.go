package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetree/pkg/urdf"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "absent.yaml"), false)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Missing required file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "absent.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "kinetree.yaml")
		err := os.WriteFile(path, []byte(`
log_level: debug
parts: ./parts
render:
  indent: tab
  materials: multi
store:
  driver: redis
  prefix: "robots:"
  ttl: 90s
  redis:
    addr: cache:6379
`), 0o644)
		require.NoError(t, err)

		cfg, err := LoadConfig(path, true)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "./parts", cfg.Parts)
		assert.Equal(t, DriverRedis, cfg.Store.Driver)
		assert.Equal(t, 90*time.Second, cfg.Store.TTL)
		assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
		assert.Equal(t, ".kinetree/robots.db", cfg.Store.Path, "unset keys keep their default")
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: [1, 2"), 0o644))
		_, err := LoadConfig(path, true)
		assert.ErrorContains(t, err, "parse config")
	})
}

func TestRenderConfig_URDF(t *testing.T) {
	cfg, err := RenderConfig{Indent: "4", Materials: "inline", Target: "gazebo"}.URDF()
	require.NoError(t, err)
	assert.Equal(t, urdf.Indent{Char: ' ', Width: 4}, cfg.Indent)
	assert.Equal(t, urdf.AlwaysInline, cfg.MaterialReferences)
	assert.Equal(t, urdf.Gazebo, cfg.Target)

	cfg, err = RenderConfig{}.URDF()
	require.NoError(t, err)
	assert.Equal(t, urdf.NewConfig(), cfg)

	for _, bad := range []RenderConfig{{Indent: "-1"}, {Materials: "some"}, {Target: "mujoco"}} {
		_, err := bad.URDF()
		assert.Error(t, err, "%+v", bad)
	}
}
