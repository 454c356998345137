package main

import (
	"log/slog"
	"time"

	"github.com/hubastard/bastion/engine/core"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/profiler"
)

// debugLayer sits on top of the layer stack: Ctrl+P dumps the profiler
// capture and the frame rate is logged at VERBOSE every interval.
type debugLayer struct {
	interval time.Duration
	since    time.Time
	frames   uint64
}

func (l *debugLayer) OnAttach(e *core.Engine) {
	l.since, l.frames = time.Now(), e.Frames()
}

func (l *debugLayer) OnDetach(*core.Engine) {}

func (l *debugLayer) OnUpdate(e *core.Engine, _ float64) {
	elapsed := time.Since(l.since)
	if elapsed < l.interval {
		return
	}
	n := e.Frames() - l.frames
	logging.Verbose("frame rate",
		slog.Float64("fps", float64(n)/elapsed.Seconds()),
		slog.Duration("uptime", e.Uptime().Round(time.Second)))
	l.since, l.frames = time.Now(), e.Frames()
}

func (l *debugLayer) OnEvent(_ *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down || k.Key != core.KeyP || k.Mods&core.ModCtrl == 0 {
		return false
	}
	path, err := profiler.OpenProfilerGraph()
	switch {
	case err != nil:
		logging.Info("profiler dump failed", slog.Any("err", err))
	case path == "":
		logging.Info("profiler disabled; build with -tags profile")
	default:
		logging.Info("profiler dump", slog.String("path", path))
	}
	return true
}
