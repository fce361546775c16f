package gerkit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gerkit/gerkit/gerrt/rt/editor"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeEditor   Mode = "editor"
	ModeAssembly Mode = "assembly"
	ModeInfo     Mode = "info"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeEditor, ModeAssembly, ModeInfo:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want editor, assembly or info)", s)
}

type UndoConfig struct {
	Limit int    `yaml:"limit"`
	Scope string `yaml:"scope"`
}

type AssemblyConfig struct {
	Interval time.Duration `yaml:"interval"`
	Audio    bool          `yaml:"audio"`
}

type CameraConfig struct {
	Fov      float32    `yaml:"fov"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

type Config struct {
	Mode        Mode           `yaml:"mode"`
	AssetsDir   string         `yaml:"assets_dir"`
	CatalogFile string         `yaml:"catalog_file"`
	StateFile   string         `yaml:"state_file"`
	TickRate    int            `yaml:"tick_rate"`
	Undo        UndoConfig     `yaml:"undo"`
	Assembly    AssemblyConfig `yaml:"assembly"`
	Camera      CameraConfig   `yaml:"camera"`
	Log         LogConfig      `yaml:"log"`
}

func DefaultConfig() Config {
	return Config{
		Mode:      ModeEditor,
		AssetsDir: ".",
		TickRate:  60,
		Undo: UndoConfig{
			Limit: editor.DefaultUndoLimit,
			Scope: editor.ScopeAll.String(),
		},
		Assembly: AssemblyConfig{
			Interval: 1200 * time.Millisecond,
			Audio:    true,
		},
		Camera: CameraConfig{
			Fov:      60,
			Position: [3]float32{0, 15, 35},
			Target:   [3]float32{0, 5, 0},
		},
		Log: LogConfig{Prefix: "gerkit"},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default; a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Undo.Limit <= 0 {
		return fmt.Errorf("undo.limit must be positive, got %d", c.Undo.Limit)
	}
	if _, err := editor.ParseUndoScope(c.Undo.Scope); err != nil {
		return err
	}
	if c.Assembly.Interval <= 0 {
		return fmt.Errorf("assembly.interval must be positive, got %s", c.Assembly.Interval)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera.fov out of range: %v", c.Camera.Fov)
	}
	return nil
}

// Overrides are command line values; empty fields leave the config alone.
type Overrides struct {
	Mode        Mode
	AssetsDir   string
	CatalogFile string
	StateFile   string
	Debug       bool
}

func (c Config) WithOverrides(o Overrides) (Config, error) {
	out := c
	if err := copier.CopyWithOption(&out, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return c, fmt.Errorf("apply overrides: %w", err)
	}
	if o.Debug {
		out.Log.Debug = true
	}
	return out, out.Validate()
}
