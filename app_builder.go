package gerkit

import (
	"context"
	"fmt"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
)

type AppBuilder struct {
	cfg     Config
	loader  asset.Loader
	log     Logger
	modules []Module
}

func NewAppBuilder(cfg Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithLoader replaces the glTF loader, mostly for tests.
func (b *AppBuilder) WithLoader(l asset.Loader) *AppBuilder {
	b.loader = l
	return b
}

func (b *AppBuilder) WithLogger(l Logger) *AppBuilder {
	b.log = l
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// UseMode installs the standard module set for the configured mode.
func (b *AppBuilder) UseMode() *AppBuilder {
	return b.UseModule(ModeModules(b.cfg.Mode)...)
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	log := b.log
	if log == nil {
		log = NewDefaultLogger(b.cfg.Log.Prefix, b.cfg.Log.Debug)
	}

	s, err := NewSession(ctx, b.cfg, b.loader, log)
	if err != nil {
		return nil, err
	}
	app := newApp(s)
	for _, module := range b.modules {
		if err := module.Install(app, s); err != nil {
			app.Close()
			return nil, fmt.Errorf("install %T: %w", module, err)
		}
		app.modules = append(app.modules, module)
	}
	return app, nil
}

// ModeModules lists the modules a mode runs with, UI state first.
func ModeModules(m Mode) []Module {
	base := []Module{UIModule{}, OrbitModule{}}
	switch m {
	case ModeAssembly:
		return append(base, AssemblyModule{})
	case ModeInfo:
		return append(base, InfoModule{})
	default:
		return append(base, EditorModule{})
	}
}
