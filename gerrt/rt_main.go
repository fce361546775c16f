package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gerkit/gerkit"
	"github.com/gerkit/gerkit/gerrt/rt/asset"
	"github.com/gerkit/gerkit/gerrt/rt/core"
	"github.com/gerkit/gerkit/gerrt/rt/preview"
	"github.com/gerkit/gerkit/gerrt/tui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "gerkit.yaml", "YAML config file; missing means defaults")
	mode := flag.String("mode", "", "editor, assembly or info")
	assets := flag.String("assets", "", "directory holding the part models")
	catalogFile := flag.String("catalog", "", "YAML part catalog replacing the built-in one")
	state := flag.String("state", "", "scene state file loaded at start and saved with Ctrl+S")
	thumbs := flag.String("thumbs", "", "write part thumbnails to this directory and exit")
	logFile := flag.String("log", "gerkit.log", "log file used while the terminal UI is active")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := gerkit.NewDefaultLogger("gerkit", *debug)

	cfg, err := gerkit.LoadConfig(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	cfg, err = cfg.WithOverrides(gerkit.Overrides{
		Mode:        gerkit.Mode(*mode),
		AssetsDir:   *assets,
		CatalogFile: *catalogFile,
		StateFile:   *state,
		Debug:       *debug,
	})
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	log.SetDebug(cfg.Log.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *thumbs != "" {
		if err := writeThumbnails(ctx, cfg, *thumbs, log); err != nil {
			log.Errorf("thumbnails: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, *logFile); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg gerkit.Config, logFile string) error {
	// Log lines would tear the screen while it is active
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	log := core.NewWriterLogger(cfg.Log.Prefix, cfg.Log.Debug, f, f)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	app, err := gerkit.NewAppBuilder(cfg).
		WithLogger(log).
		UseMode().
		Build(ctx)
	if err != nil {
		screen.Fini()
		return err
	}
	defer app.Close()
	log.Debugf("starting %s mode", cfg.Mode)
	return tui.Run(ctx, app, screen)
}

func writeThumbnails(ctx context.Context, cfg gerkit.Config, dir string, log gerkit.Logger) error {
	s, err := gerkit.NewSession(ctx, cfg, nil, log)
	if err != nil {
		return err
	}
	defer s.Close()
	n, err := preview.WriteAll(ctx, asset.GLTFLoader{Root: cfg.AssetsDir}, s.Catalog, dir, preview.DefaultOptions(), log)
	if err != nil {
		return err
	}
	log.Infof("wrote %d thumbnails to %s", n, dir)
	return nil
}
