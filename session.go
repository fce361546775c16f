package gerkit

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/camera"
	"github.com/gerkit/gerkit/gerrt/rt/catalog"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/scene"
)

// Session is everything one running viewer owns. All fields except Queue
// belong to the UI goroutine.
type Session struct {
	Config  Config
	Log     Logger
	Catalog *catalog.Catalog
	Scene   *scene.Scene
	Camera  *core.Camera
	Orbit   *camera.Orbit
	Queue   *asset.Queue
	Time    Time

	Width, Height int

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession builds the scene, camera and load queue for cfg. A nil loader
// reads glTF files from cfg.AssetsDir.
func NewSession(ctx context.Context, cfg Config, loader asset.Loader, log Logger) (*Session, error) {
	log = core.OrNop(log)

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		var err error
		cat, err = catalog.Load(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}

	if loader == nil {
		loader = asset.GLTFLoader{Root: filepath.Clean(cfg.AssetsDir)}
	}

	cam := core.NewCamera(cfg.Camera.Fov, 1, 0.1, 1000)
	cam.Position = cfg.Camera.Position
	cam.Target = cfg.Camera.Target

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		Config:  cfg,
		Log:     log,
		Catalog: cat,
		Scene:   scene.NewScene(),
		Camera:  cam,
		Orbit:   camera.NewOrbit(cam),
		Queue:   asset.NewQueue(sctx, loader, asset.NewCache(), log),
		Width:   1,
		Height:  1,
		ctx:     sctx,
		cancel:  cancel,
	}
	return s, nil
}

func (s *Session) Context() context.Context { return s.ctx }

// Pump applies finished asset loads. Call it from the UI goroutine.
func (s *Session) Pump() int { return s.Queue.Pump() }

func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Width, s.Height = width, height
	s.Camera.SetViewport(width, height)
}

// Close cancels in-flight loads and waits for the workers.
func (s *Session) Close() {
	s.cancel()
	s.Queue.Close()
}
