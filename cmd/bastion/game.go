package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/core"
	"github.com/hubastard/bastion/engine/drawstack"
	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/hud"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/scene"
	"github.com/hubastard/bastion/engine/scratch"
	"github.com/hubastard/bastion/engine/settings"
	"github.com/hubastard/bastion/engine/world"
)

const (
	helpText = "A/D or arrows  turn the turret\n" +
		"W/S or arrows  raise and lower\n" +
		"Space  fire a shell\n" +
		"Enter  release the EMP wave\n" +
		"B  binoculars\n" +
		"C  switch camera\n" +
		"Escape  pause"

	bannerTexture = "ui/banner"
)

// nodes are created once and shared by every scheme.
type nodes struct {
	sky      *world.Sky
	terrain  *world.Terrain
	water    *world.Water
	tower    *world.Tower
	ships    *world.Ships
	missiles *world.Missiles

	container  *hud.Container
	circle     *hud.Circle
	spot       *hud.Spot
	triangle   *hud.RoundedTriangle
	bar        *hud.ProgressBar
	radar      *hud.Radar
	gauges     *hud.Gauges
	console    *hud.Console
	label      *hud.Label
	texture    *hud.TextureQuad
	cursor     *hud.Cursor
	grayOut    *hud.GrayOut
	strike     *hud.StrikeEffect
	indicators *hud.MissileIndicators
}

// params are owned here for the lifetime of the schemes that bind them.
type params struct {
	world      world.Params
	sky        world.SkyParams
	water      world.WaterParams
	radar      hud.RadarParams
	gauges     hud.GaugesParams
	console    hud.ConsoleParams
	cursor     hud.CursorParams
	grayOut    hud.GrayOutParams
	strike     hud.StrikeParams
	indicators hud.IndicatorParams
	banner     hud.TextureParams

	status                hud.LabelParams
	menuTitle, menuHint   hud.LabelParams
	helpTitle, helpBody   hud.LabelParams
	helpHint              hud.LabelParams
	pauseTitle, pauseHint hud.LabelParams
	overTitle, overScore  hud.LabelParams
	overHint              hud.LabelParams
}

type keys struct {
	enter, escape, help, shell *core.KeyTrap
}

// Game implements core.App: it owns the simulation, the draw nodes and
// the schemes, and moves between schemes on key presses.
type Game struct {
	store *settings.Store
	ring  *logging.Ring
	seed  uint64

	g        *glbackend.Graphics
	sim      *Sim
	registry *drawstack.Registry
	stack    *drawstack.Stack
	n        nodes
	p        params
	keys     keys

	cameras   *scene.CameraSwitch
	orbit     *scene.OrbitController
	worldView *scene.WorldViewCamera

	scheme game.Scheme
}

func NewGame(store *settings.Store, ring *logging.Ring, seed uint64) *Game {
	return &Game{
		store:    store,
		ring:     ring,
		seed:     seed,
		sim:      NewSim(store),
		registry: drawstack.NewRegistry(),
		stack:    drawstack.NewStack(store.Float("hudElementMargin")),
	}
}

// keep registers a freshly built node, passing construction errors through.
func keep[T io.Closer](r *drawstack.Registry, name string, n T, err error) (T, error) {
	if err != nil {
		return n, fmt.Errorf("%s: %w", name, err)
	}
	return drawstack.Register(r, name, n)
}

func (a *Game) buildNodes() error {
	g, st, r := a.g, a.sim.State, a.registry
	n := &a.n

	sk, err := world.NewSky(g)
	if n.sky, err = keep(r, "sky", sk, err); err != nil {
		return err
	}
	t, err := world.NewTerrain(g, st)
	if n.terrain, err = keep(r, "terrain", t, err); err != nil {
		return err
	}
	w, err := world.NewWater(g, st)
	if n.water, err = keep(r, "water", w, err); err != nil {
		return err
	}
	tw, err := world.NewTower(g, st)
	if n.tower, err = keep(r, "tower", tw, err); err != nil {
		return err
	}
	sh, err := world.NewShips(g, st)
	if n.ships, err = keep(r, "ships", sh, err); err != nil {
		return err
	}
	ms, err := world.NewMissiles(g, st)
	if n.missiles, err = keep(r, "missiles", ms, err); err != nil {
		return err
	}

	c, err := hud.NewContainer(g)
	if n.container, err = keep(r, "container", c, err); err != nil {
		return err
	}
	ci, err := hud.NewCircle(g)
	if n.circle, err = keep(r, "circle", ci, err); err != nil {
		return err
	}
	sp, err := hud.NewSpot(g)
	if n.spot, err = keep(r, "spot", sp, err); err != nil {
		return err
	}
	tri, err := hud.NewRoundedTriangle(g)
	if n.triangle, err = keep(r, "triangle", tri, err); err != nil {
		return err
	}
	bar, err := hud.NewProgressBar(g)
	if n.bar, err = keep(r, "progressBar", bar, err); err != nil {
		return err
	}
	rd, err := hud.NewRadar(g, st, n.container, n.circle, n.spot, n.triangle)
	if n.radar, err = keep(r, "radar", rd, err); err != nil {
		return err
	}
	con, err := hud.NewConsole(g, n.container, a.ring)
	if n.console, err = keep(r, "console", con, err); err != nil {
		return err
	}
	lb, err := hud.NewLabel(g)
	if n.label, err = keep(r, "label", lb, err); err != nil {
		return err
	}
	tq, err := hud.NewTextureQuad(g)
	if n.texture, err = keep(r, "textureQuad", tq, err); err != nil {
		return err
	}
	if err := n.texture.Preload(bannerTexture); err != nil {
		return err
	}
	cu, err := hud.NewCursor(g)
	if n.cursor, err = keep(r, "cursor", cu, err); err != nil {
		return err
	}
	gr, err := hud.NewGrayOut(g)
	if n.grayOut, err = keep(r, "grayOut", gr, err); err != nil {
		return err
	}
	se, err := hud.NewStrikeEffect(g, st, a.seed)
	if n.strike, err = keep(r, "strikeEffect", se, err); err != nil {
		return err
	}

	// these only borrow registered nodes
	n.gauges = hud.NewGauges(g, st, n.container, n.bar)
	n.indicators = hud.NewMissileIndicators(g, st, n.triangle)
	return nil
}

func (a *Game) label(text, sizeKey, colorKey string) hud.LabelParams {
	return hud.LabelParams{
		Text:     text,
		FontSize: a.store.Int(sizeKey),
		Color:    a.store.Color(colorKey),
	}
}

func (a *Game) buildParams() {
	s := a.store
	p := &a.p
	p.sky = world.DefaultSky(s)
	p.water = world.DefaultWater(s)
	p.radar = hud.DefaultRadar(s)
	p.gauges = hud.DefaultGauges(s)
	p.console = hud.ConsoleParams{
		Chrome:   hud.DefaultChrome(s),
		FontSize: s.Int("fontSizeSmall"),
		Color:    s.Color("fontColorLight"),
	}
	p.cursor = hud.CursorParams{
		Size:      s.Float("hudCursorSize"),
		Thickness: s.Float("hudCursorThickness"),
		Color:     s.Color("hudCursorColor"),
	}
	p.grayOut = hud.GrayOutParams{Color: s.Color("hudGrayOutColor")}
	p.banner = hud.TextureParams{Texture: bannerTexture}

	p.status = a.label("", "fontSizeMedium", "fontColorLight")
	p.menuTitle = a.label("BASTION", "fontSizeSuper", "fontColorLight")
	p.menuHint = a.label("Enter to play   H for help   Escape to quit", "fontSizeMedium", "fontColorDark")
	p.helpTitle = a.label("Controls", "fontSizeLarge", "fontColorLight")
	p.helpBody = a.label(helpText, "fontSizeMedium", "fontColorLight")
	p.helpHint = a.label("Escape to go back", "fontSizeSmall", "fontColorDark")
	p.pauseTitle = a.label("Paused", "fontSizeLarge", "fontColorLight")
	p.pauseHint = a.label("Escape to resume   H for the main menu", "fontSizeMedium", "fontColorDark")
	p.overTitle = a.label("The fortress has fallen", "fontSizeLarge", "fontColorLight")
	p.overScore = a.label("", "fontSizeMedium", "fontColorLight")
	p.overHint = a.label("Enter for the main menu", "fontSizeMedium", "fontColorDark")
}

// worldEntries draws the 3D scene back to front.
func (a *Game) worldEntries() []drawstack.Entry {
	n, p := &a.n, &a.p
	return []drawstack.Entry{
		drawstack.Bind("sky", n.sky, &p.sky),
		drawstack.Bind("terrain", n.terrain, &p.world),
		drawstack.Bind("tower", n.tower, &p.world),
		drawstack.Bind("ships", n.ships, &p.world),
		drawstack.Bind("missiles", n.missiles, &p.world),
		drawstack.Bind("water", n.water, &p.water),
	}
}

func (a *Game) hudEntries() []drawstack.Entry {
	n, p := &a.n, &a.p
	return []drawstack.Entry{
		drawstack.Bind("strikeEffect", n.strike, &p.strike),
		drawstack.Bind("missileIndicators", n.indicators, &p.indicators),
		drawstack.Place("status", n.label, &p.status, drawstack.Top),
		drawstack.Place("console", n.console, &p.console, drawstack.TopLeft),
		drawstack.Place("gauges", n.gauges, &p.gauges, drawstack.BottomLeft),
		drawstack.Place("radar", n.radar, &p.radar, drawstack.BottomRight),
	}
}

func (a *Game) buildSchemes() {
	n, p := &a.n, &a.p
	scheme := func(name game.Scheme, parts ...[]drawstack.Entry) {
		sc := &drawstack.Scheme{Name: string(name)}
		for _, es := range parts {
			sc.Entries = append(sc.Entries, es...)
		}
		a.stack.Add(sc)
	}
	dim := []drawstack.Entry{drawstack.Bind("grayOut", n.grayOut, &p.grayOut)}

	scheme(game.SchemeMainMenu, a.worldEntries(), dim, []drawstack.Entry{
		drawstack.Place("banner", n.texture, &p.banner, drawstack.Top),
		drawstack.Place("title", n.label, &p.menuTitle, drawstack.Center),
		drawstack.Place("hint", n.label, &p.menuHint, drawstack.Bottom),
	})
	scheme(game.SchemeHelp, a.worldEntries(), dim, []drawstack.Entry{
		drawstack.Place("title", n.label, &p.helpTitle, drawstack.Center),
		drawstack.Place("body", n.label, &p.helpBody, drawstack.Center),
		drawstack.Place("hint", n.label, &p.helpHint, drawstack.Bottom),
	})
	scheme(game.SchemePlaying, a.worldEntries(), a.hudEntries(), []drawstack.Entry{
		drawstack.Bind("cursor", n.cursor, &p.cursor),
	})
	scheme(game.SchemePaused, a.worldEntries(), a.hudEntries(), dim, []drawstack.Entry{
		drawstack.Place("title", n.label, &p.pauseTitle, drawstack.Center),
		drawstack.Place("hint", n.label, &p.pauseHint, drawstack.Center),
	})
	scheme(game.SchemeGameOver, a.worldEntries(), dim, []drawstack.Entry{
		drawstack.Place("title", n.label, &p.overTitle, drawstack.Center),
		drawstack.Place("score", n.label, &p.overScore, drawstack.Center),
		drawstack.Place("hint", n.label, &p.overHint, drawstack.Bottom),
	})
}

func (a *Game) activate(s game.Scheme) {
	if err := a.stack.Activate(string(s)); err != nil {
		logging.Fatal("activate scheme", slog.Any("err", err))
	}
	a.scheme = s
	logging.Info("scheme", slog.String("name", string(s)))
}

func (a *Game) OnStart(e *core.Engine) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, a.registry.Close())
		}
	}()
	a.sim.Reset()
	if err := a.buildNodes(); err != nil {
		return err
	}
	a.buildParams()
	a.buildSchemes()

	width := a.store.Float("islandMaximumWidth")
	orbit := scene.NewOrbitCamera(width * 0.6)
	a.orbit = scene.NewOrbitController(orbit)
	a.worldView = &scene.WorldViewCamera{Radius: width * 1.2, Height: width * 0.5, Speed: 4}
	tower := &scene.TowerCamera{Origin: a.n.tower.CameraOrigin()}
	a.cameras = scene.NewCameraSwitch(tower, orbit, a.worldView, e.Input.Trap(core.KeyC))

	a.keys = keys{
		enter:  e.Input.Trap(core.KeyEnter),
		escape: e.Input.Trap(core.KeyEscape),
		help:   e.Input.Trap(core.KeyH),
		shell:  e.Input.Trap(core.KeySpace),
	}
	debug := &debugLayer{interval: 5 * time.Second}
	e.Layers.Push(debug)
	debug.OnAttach(e)

	a.activate(game.SchemeMainMenu)
	logging.Info("bastion ready", slog.Int("nodes", a.registry.Len()))
	return nil
}

func axis(in *core.Input, neg, neg2, pos, pos2 core.Key) float32 {
	var v float32
	if in.IsKeyDown(neg) || in.IsKeyDown(neg2) {
		v--
	}
	if in.IsKeyDown(pos) || in.IsKeyDown(pos2) {
		v++
	}
	return v
}

func (a *Game) OnUpdate(e *core.Engine, dt float64) {
	// every trap is polled each tick so held keys never fire late
	enter, escape := a.keys.enter.NewPress(), a.keys.escape.NewPress()
	help, shell := a.keys.help.NewPress(), a.keys.shell.NewPress()

	switch a.scheme {
	case game.SchemeMainMenu:
		switch {
		case enter:
			a.sim.Reset()
			a.activate(game.SchemePlaying)
		case help:
			a.activate(game.SchemeHelp)
		case escape:
			e.Window.SetShouldClose(true)
		}
	case game.SchemeHelp:
		if escape || enter || help {
			a.activate(game.SchemeMainMenu)
		}
	case game.SchemePaused:
		switch {
		case escape:
			a.activate(game.SchemePlaying)
		case help:
			a.activate(game.SchemeMainMenu)
		}
	case game.SchemeGameOver:
		if enter || escape {
			a.activate(game.SchemeMainMenu)
		}
	case game.SchemePlaying:
		if escape {
			a.activate(game.SchemePaused)
			break
		}
		if a.cameras.Poll() {
			logging.Info("camera", slog.String("mode", a.cameras.Mode().String()))
		}
		in := Controls{Shell: shell, EMP: enter, Binoculars: e.Input.IsKeyDown(core.KeyB)}
		if a.cameras.Mode() == scene.ModeFirstPerson {
			a.orbit.Update(e.Input, float32(dt))
		} else {
			in.Turn = axis(e.Input, core.KeyA, core.KeyLeft, core.KeyD, core.KeyRight)
			in.Raise = axis(e.Input, core.KeyS, core.KeyDown, core.KeyW, core.KeyUp)
		}
		a.sim.Step(float32(dt), in)
		if a.sim.Over() {
			a.p.overScore.Text = fmt.Sprintf("Missiles destroyed: %d", a.sim.State.Score)
			a.activate(game.SchemeGameOver)
		}
	}
	a.cameras.Update(a.sim.State, float32(dt))
}

func (a *Game) OnRender(e *core.Engine) {
	scratch.Reset()
	st := a.sim.State
	a.p.status.Text = scratch.F().
		S("Score ").I(st.Score).
		Pad(4, ' ').Clock(st.Time).
		Pad(4, ' ').S(a.cameras.Mode().String()).
		View()
	a.p.cursor.Position = mgl32.Vec2{}

	var cam scene.Camera = a.worldView
	if a.scheme == game.SchemePlaying || a.scheme == game.SchemePaused {
		cam = a.cameras.Active()
	}
	a.g.SetCamera(cam)
	a.stack.Frame(a.g.Width(), a.g.Height())
}

func (a *Game) OnEvent(e *core.Engine, ev core.Event) {
	if v, ok := ev.(core.EventScroll); ok && a.scheme == game.SchemePlaying && a.cameras.Mode() == scene.ModeFirstPerson {
		a.orbit.Scroll(v.Yoff)
	}
}

func (a *Game) OnShutdown(e *core.Engine) {
	if err := a.registry.Close(); err != nil {
		logging.Info("closing nodes", slog.Any("err", err))
	}
}
