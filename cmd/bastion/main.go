// Command bastion runs the fortress-defense game.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/bastion/engine/assets"
	"github.com/hubastard/bastion/engine/core"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/platform"
	"github.com/hubastard/bastion/engine/profiler"
	"github.com/hubastard/bastion/engine/scratch"
	"github.com/hubastard/bastion/engine/settings"
)

func main() {
	dataPath := flag.String("data", "assets", "directory holding shaders/, data/ and settings.yaml")
	seed := flag.Uint64("seed", 1, "seed for the noise textures and strike flashes")
	flag.Parse()

	logging.SetLogger(logging.New(os.Stderr, logging.LevelInfo, nil))
	store := settings.New()
	if err := store.LoadFile(filepath.Join(*dataPath, "settings.yaml")); err != nil {
		logging.Fatal("load settings", slog.Any("err", err))
	}
	ring := logging.NewRing(store.Int("logConsoleLines"), logging.LevelInfo)
	logging.SetLogger(logging.New(os.Stderr, logging.ParseLevel(store.String("logLevel")), ring))

	profiler.Init(1 << 10)
	scratch.Init(256)

	cfg := core.Config{
		Title:      "Bastion",
		Width:      store.Int("displayWindowedResolutionX"),
		Height:     store.Int("displayWindowedResolutionY"),
		VSync:      store.Bool("displayVSync"),
		ClearColor: [4]float32(store.Color("colorClear")),
		TickRate:   float64(store.Float("logicUpdateFrequency")),
	}
	if store.Bool("displayFPSCap") {
		cfg.FPSCap = float64(store.Float("displayFPS"))
	}

	app := NewGame(store, ring, *seed)
	lib := assets.Library{DataPath: *dataPath}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		app.g = glbackend.New(w, store, lib, *seed)
		return app.g, nil
	}

	err := core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		logging.Fatal("bastion", slog.Any("err", err))
	}
}
