package hud

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/drawstack"
	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
	"github.com/hubastard/bastion/engine/mesh"
	"github.com/hubastard/bastion/engine/settings"
	"github.com/hubastard/bastion/engine/terrain"
	"github.com/hubastard/bastion/engine/texture"
)

// heightmapTexture renders the island top-down: land brightens with
// height, water is transparent. Pixel (x, y) covers world (x, z) over the
// island square of side width centred on the origin.
func heightmapTexture(m *mesh.Mesh, res int, width, depth, maxHeight float32) *texture.Texture {
	t := texture.New(res, res, texture.RGBA)
	cell := func(v float32) int {
		i := int((v/(width/2)/2 + 0.5) * float32(res))
		return min(max(i, 0), res-1)
	}
	for _, name := range m.GroupNames() {
		for _, f := range m.Groups[name] {
			v := m.Vertices[f.Vertices[0]]
			var c, a uint8
			if v.Y() >= 0 {
				c = uint8(clamp01((v.Y()+depth)/maxHeight) * 255)
				a = 255
			}
			t.SetPixel(cell(v.X()), cell(v.Z()), c, c, c, a)
		}
	}
	t.SetDepth(8)
	return t
}

// progressionSide is the power of two above the radar's inner pixel size.
func progressionSide(radarPercent float32, resY int, padding float32) int {
	inner := radarPercent/100*float32(resY) - padding*2
	if inner < 1 {
		inner = 1
	}
	return 1 << (int(math.Log2(float64(inner))) + 1)
}

// progressionTexture is the sweep trail: a black disc whose alpha grows
// with the angle from +X, up to 127 just before the beam, with a soft rim.
func progressionTexture(side int, softEdge float32) *texture.Texture {
	t := texture.New(side, side, texture.RGBA)
	c := float32(side) / 2
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			dx, dy := float32(x)-c, float32(y)-c
			dist := float32(math.Hypot(float64(dx), float64(dy)))
			alpha := float32(127)
			switch {
			case dist > c:
				alpha = 0
			case softEdge > 0 && c-dist <= softEdge:
				alpha *= (c - dist) / softEdge
			}
			angle := float32(math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi)
			if angle < 0 {
				angle += 360
			}
			alpha *= angle / 360
			t.SetPixel(x, y, 0, 0, 0, uint8(alpha))
		}
	}
	return t
}

// radarMirror turns world (x, z) into a right-handed screen plane: bearings
// grow clockwise on the radar while they grow towards +Z in the world.
var radarMirror = mgl32.Scale3D(1, -1, 1)

// radarWorldMatrix maps world (x, z, 0, 1) into NDC on a radar centred at
// center with inner half extent half. The fortress heading points up.
func radarWorldMatrix(fortress mgl32.Vec3, heading float32, center, half mgl32.Vec2, radius float32) mgl32.Mat4 {
	return mgl32.Translate3D(center.X(), center.Y(), 0).
		Mul4(mgl32.Scale3D(half.X()/radius, half.Y()/radius, 1)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90 + heading))).
		Mul4(radarMirror).
		Mul4(mgl32.Translate3D(-fortress.X(), -fortress.Z(), 0))
}

// radarSweepMatrix places the unit progression quad with its leading edge
// on the beam bearing.
func radarSweepMatrix(heading, sweep float32, center, half mgl32.Vec2) mgl32.Mat4 {
	return mgl32.Translate3D(center.X(), center.Y(), 0).
		Mul4(mgl32.Scale3D(half.X(), half.Y(), 1)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90 + heading - sweep))).
		Mul4(radarMirror)
}

// RadarPoint projects a world position onto the radar.
func RadarPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec2 {
	v := m.Mul4x1(mgl32.Vec4{p.X(), p.Z(), 0, 1})
	return mgl32.Vec2{v.X() / v.W(), v.Y() / v.W()}
}

type RadarParams struct {
	drawstack.Placement
	Chrome
}

// DefaultRadar fills the chrome from the settings.
func DefaultRadar(s *settings.Store) RadarParams {
	return RadarParams{Chrome: DefaultChrome(s)}
}

// Radar draws the top-down island map around the fortress with a rotating
// beam that reveals missiles as it passes them. It borrows the container,
// circle, spot and triangle nodes.
type Radar struct {
	g     *glbackend.Graphics
	s     *settings.Store
	state *game.State

	container *Container
	circle    *Circle
	spot      *Spot
	cone      *RoundedTriangle
	batch     *renderer2d.Batch

	heightmapID   uint32
	progressionID uint32
	loaded        bool
	version       int

	sweep Sweep

	frame   ContainerParams
	cParams CircleParams
	sParams SpotParams
	tParams TriangleParams
}

func NewRadar(g *glbackend.Graphics, st *game.State, c *Container, circle *Circle, spot *Spot, cone *RoundedTriangle) (*Radar, error) {
	b, err := renderer2d.New(g, 1)
	if err != nil {
		return nil, err
	}
	return &Radar{
		g:         g,
		s:         g.Settings(),
		state:     st,
		container: c,
		circle:    circle,
		spot:      spot,
		cone:      cone,
		batch:     b,
	}, nil
}

// ReloadState rebuilds the heightmap and progression textures from the
// island mesh and clears the decay cache.
func (r *Radar) ReloadState(island *mesh.Mesh) {
	s := r.s
	res := terrain.Side(s.Int("islandTerrainBaseDensity"), s.Int("islandTerrainDetail"))
	hm := heightmapTexture(island, res,
		s.Float("islandMaximumWidth"), s.Float("terrainDepth"), s.Float("islandMaximumHeight"))
	r.heightmapID = r.g.Upload(r.heightmapID, hm, false)

	side := progressionSide(s.Float("radarSize"), r.g.Height(), s.Float("hudGaugePadding"))
	r.progressionID = r.g.Upload(r.progressionID, progressionTexture(side, s.Float("hudContainerSoftEdge")), true)

	r.sweep.Reset()
	r.loaded = true
}

// Blips exposes the decay cache.
func (r *Radar) Blips() []Blip { return r.sweep.Blips() }

func (r *Radar) Size(*RadarParams) mgl32.Vec2 {
	pct := r.s.Float("radarSize") / 100
	return mgl32.Vec2{pct / r.g.Aspect() * 2, pct * 2}
}

func (r *Radar) Execute(p *RadarParams) {
	st := r.state
	if st.Terrain != nil && (!r.loaded || st.TerrainVersion != r.version) {
		r.ReloadState(st.Terrain)
		r.version = st.TerrainVersion
	}

	actual := r.Size(p)
	r.frame.Chrome = p.Chrome
	r.frame.Metrics = p.Metrics
	r.frame.Size = actual
	r.container.Execute(&r.frame)

	center := p.Metrics.Position
	pad := r.g.PixelsToNDC(p.Padding, p.Padding)
	half := actual.Mul(0.5).Sub(pad)
	radius := r.s.Float("radarRadius")
	width := r.s.Float("islandMaximumWidth")
	f := st.Fortress
	period := int64(r.s.Float("radarRefreshSpeed") * 1000)
	sweep := SweepAngle(st.Time, period)

	restore := r.g.Begin2D()
	r.g.Scissor(center, half.Mul(2))
	if r.heightmapID != 0 {
		r.batch.Begin(radarWorldMatrix(f.Position, f.Rotation, center, half, radius), r.heightmapID, false)
		r.batch.Quad(mgl32.Vec2{}, mgl32.Vec2{width, width}, 0, colors.White, renderer2d.Full)
		r.batch.End()
	}
	if r.progressionID != 0 {
		r.batch.Begin(radarSweepMatrix(f.Rotation, sweep, center, half), r.progressionID, false)
		r.batch.Quad(mgl32.Vec2{}, mgl32.Vec2{2, 2}, 0, colors.White, renderer2d.Full)
		r.batch.End()
	}
	restore()

	fov := r.s.Float("renderingPerspectiveFOV")
	if st.Binoculars {
		fov = r.s.Float("renderingPerspectiveBinocularsFOV")
	}
	coneH := actual.Y()/2 - pad.Y()/2
	coneW := coneH / r.g.Aspect() * float32(math.Tan(float64(mgl32.DegToRad(fov)))) * 2
	coneBorder := r.s.Color("radarViewConeBorderColor")
	r.tParams = TriangleParams{
		Position:     center.Add(mgl32.Vec2{0, coneH / 2}),
		Size:         mgl32.Vec2{coneW, coneH},
		Rotation:     180,
		Border:       r.s.Float("hudContainerBorder"),
		SoftEdge:     r.s.Float("hudContainerSoftEdge"),
		InsideColor:  r.s.Color("radarViewConeColor"),
		BorderColor:  coneBorder,
		OutsideColor: coneBorder.WithAlpha(0),
	}
	r.cone.Execute(&r.tParams)

	r.sweep.Advance(sweep, st, radius)
	world := radarWorldMatrix(f.Position, f.Rotation, center, half, radius)
	r.sParams.Radius = r.s.Float("radarSpotSize")
	r.sParams.SoftEdge = r.s.Float("hudContainerSoftEdge")
	r.sParams.Color = r.s.Color("radarSpotColor")
	for _, b := range r.sweep.Blips() {
		r.sParams.Position = RadarPoint(world, b.Position)
		r.spot.Execute(&r.sParams)
	}

	if f.EMP > 0 && f.EMP < 1 {
		emp := r.s.Color("radarEMPColor")
		reach := (1 - f.EMP) * r.s.Float("stateEMPRange") / radius
		r.cParams = CircleParams{
			Position:     center,
			Size:         half.Mul(reach * 2),
			SoftEdge:     r.s.Float("hudContainerSoftEdge"),
			InsideColor:  emp,
			BorderColor:  emp.WithAlpha(0),
			OutsideColor: emp.WithAlpha(0),
		}
		r.circle.Execute(&r.cParams)
	}

	r.sParams.Position = center
	r.sParams.Radius = r.s.Float("radarCenterSpotSize")
	r.sParams.Color = r.s.Color("hudGaugeHealthBarColor")
	r.spot.Execute(&r.sParams)
}

// Close frees the radar textures and batch; borrowed nodes stay open.
func (r *Radar) Close() error {
	r.g.DeleteTexture(&r.heightmapID)
	r.g.DeleteTexture(&r.progressionID)
	return r.batch.Close()
}
