package gerkit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
mode: assembly
undo:
  scope: delete
assembly:
  interval: 500ms
camera:
  position: [1, 2, 3]
`))
	require.NoError(t, err)

	assert.Equal(t, ModeAssembly, cfg.Mode)
	assert.Equal(t, "delete", cfg.Undo.Scope)
	assert.Equal(t, 30, cfg.Undo.Limit, "unset keys keep defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Assembly.Interval)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, [3]float32{0, 5, 0}, cfg.Camera.Target)
	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, 60, cfg.TickRate)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	for _, doc := range []string{
		"mode: paint",
		"undo: {limit: 0}",
		"undo: {scope: sometimes}",
		"tick_rate: -1",
		"camera: {fov: 200}",
		"mode: [",
	} {
		_, err := ParseConfig([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gerkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets_dir: /srv/models\nlog: {debug: true}\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", cfg.AssetsDir)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "gerkit", cfg.Log.Prefix)
}

func TestWithOverrides(t *testing.T) {
	base := DefaultConfig()
	base.AssetsDir = "from-file"

	cfg, err := base.WithOverrides(Overrides{Mode: ModeInfo, StateFile: "ger.json", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, ModeInfo, cfg.Mode)
	assert.Equal(t, "from-file", cfg.AssetsDir, "empty override keeps the file value")
	assert.Equal(t, "ger.json", cfg.StateFile)
	assert.True(t, cfg.Log.Debug)

	_, err = base.WithOverrides(Overrides{Mode: "paint"})
	assert.Error(t, err)
}
