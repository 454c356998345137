package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/profiler"
	"github.com/hubastard/bastion/engine/timing"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	if err := rend.Init(); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) { dispatch(eng, app, ev) })

	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	tick := time.Second / 60
	if cfg.TickRate > 0 {
		tick = time.Duration(float64(time.Second) / cfg.TickRate)
	}
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
		pacer   = timing.NewPacer(nil)
	)

	for !win.ShouldClose() {
		endFrame := profiler.Start("Frame")
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := tick.Seconds()
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			app.OnUpdate(eng, dt)
			accum -= tick
			steps++
		}

		rend.StartFrame()
		app.OnRender(eng)
		rend.FinishFrame()
		eng.frames++
		endFrame()

		if cfg.FPSCap > 0 {
			time.Sleep(pacer.SleepTime(time.Duration(float64(time.Second) / cfg.FPSCap)))
		}
	}

	app.OnShutdown(eng)
	eng.Layers.ForEachReverse(func(l Layer) bool {
		l.OnDetach(eng)
		return false
	})
	logging.Info("engine exit", slog.Uint64("frames", eng.frames), slog.Duration("uptime", eng.Uptime()))
	return nil
}

func dispatch(eng *Engine, app App, ev Event) {
	eng.Input.Handle(ev)
	switch v := ev.(type) {
	case EventResize:
		fw, fh := eng.Window.FramebufferSize()
		if fw < 1 || fh < 1 {
			return
		}
		eng.Renderer.Resize(fw, fh)
	case EventKey:
		if v.Key == KeyUnknown {
			logging.Verbose("unhandled key event")
			return
		}
	}
	if eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) }) {
		return
	}
	app.OnEvent(eng, ev)
}
