// Package glbackend is the OpenGL 3.3 render context shared by every draw
// node: shader, program and texture caches, the global matrices, noise
// textures, the font atlas uploads and frame bracketing.
package glbackend

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/assets"
	"github.com/hubastard/bastion/engine/core"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/scene"
	"github.com/hubastard/bastion/engine/settings"
	"github.com/hubastard/bastion/engine/terrain"
	"github.com/hubastard/bastion/engine/text"
	"github.com/hubastard/bastion/engine/texture"
)

type shaderKey struct {
	stage assets.Stage
	name  string
}

// Graphics implements core.Renderer. New performs no GL calls so the CPU
// side (matrices, sizes, binding bookkeeping) is usable without a context;
// Init does the GL setup.
type Graphics struct {
	win      core.Window
	lib      assets.Library
	settings *settings.Store

	width, height int
	matrices      scene.Matrices
	camera        scene.Camera
	seed          uint64

	shaders    map[shaderKey]uint32
	programs   map[string]*Program
	textures   map[string]*texture.Texture
	textureIDs map[string]uint32
	atlasIDs   map[int]uint32

	noise, fourDepthNoise     *texture.Texture
	noiseID, fourDepthNoiseID uint32

	fonts       *text.FontManager
	raster      *text.OpenTypeRasterizer
	multisample bool
	bindings    Bindings
}

func New(win core.Window, store *settings.Store, lib assets.Library, seed uint64) *Graphics {
	g := &Graphics{
		win:        win,
		lib:        lib,
		settings:   store,
		seed:       seed,
		shaders:    map[shaderKey]uint32{},
		programs:   map[string]*Program{},
		textures:   map[string]*texture.Texture{},
		textureIDs: map[string]uint32{},
		atlasIDs:   map[int]uint32{},
	}
	g.Resize(store.Int("displayWindowedResolutionX"), store.Int("displayWindowedResolutionY"))
	return g
}

// Init checks the driver, sets default state, builds the noise textures
// and pre-warms the font atlases.
func (g *Graphics) Init() error {
	var units int32
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &units)
	version := gl.GoStr(gl.GetString(gl.VERSION))
	if err := checkSystem(version, int(units), g.settings.Int("renderingMinimumTextureUnits")); err != nil {
		return err
	}
	logging.Verbose("OpenGL Version: "+version, slog.Int("textureUnits", int(units)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	g.multisample = gl.IsEnabled(gl.MULTISAMPLE)

	g.noise, g.fourDepthNoise = g.noiseTextures()
	g.noiseID = g.Upload(0, g.noise, true)
	g.fourDepthNoiseID = g.Upload(0, g.fourDepthNoise, true)

	if err := g.initFonts(); err != nil {
		return err
	}
	return nil
}

func (g *Graphics) initFonts() error {
	file := g.settings.String("fontFile")
	data, err := g.lib.LoadFont(file)
	if err != nil {
		return err
	}
	r, err := text.NewOpenTypeRasterizer(data)
	if err != nil {
		return fmt.Errorf("font %q: %w", file, err)
	}
	g.raster = r
	g.fonts = text.NewFontManager(r, g)
	for _, key := range []string{"fontSizeSmall", "fontSizeMedium", "fontSizeLarge", "fontSizeSuper"} {
		if err := g.fonts.PopulateCommonChars(g.settings.Int(key)); err != nil {
			return fmt.Errorf("populate %s: %w", key, err)
		}
	}
	return nil
}

// noiseTextures builds the persistent diamond-square textures: noise at
// full depth and fourDepthNoise requantized to 16 levels.
func (g *Graphics) noiseTextures() (*texture.Texture, *texture.Texture) {
	density := g.settings.Int("terrainNoiseTextureDensity")
	rough := g.settings.Float("terrainNoiseTextureRoughness")
	rng := rand.New(rand.NewPCG(g.seed, g.seed+1))

	build := func() *texture.Texture {
		n := terrain.DiamondSquare(density, rough, rng)
		t := texture.New(density, density, texture.RGB)
		for i := range n {
			for p, v := range n[i] {
				b := terrain.Byte(v)
				t.SetPixel(i, p, b, b, b, 255)
			}
		}
		return t
	}
	noise := build()
	four := build()
	four.SetDepth(16)
	return noise, four
}

// Resize records the framebuffer size and rebuilds the projections. The
// viewport itself is applied in StartFrame.
func (g *Graphics) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	g.width, g.height = w, h
	g.matrices = scene.Projection{
		FOV:           g.settings.Float("renderingPerspectiveFOV"),
		BinocularsFOV: g.settings.Float("renderingPerspectiveBinocularsFOV"),
		Near:          g.settings.Float("renderingPerspectiveNearClip"),
		Far:           g.settings.Float("renderingPerspectiveFarClip"),
	}.Matrices(w, h)
}

func (g *Graphics) SetCamera(c scene.Camera) { g.camera = c }

func (g *Graphics) StartFrame() {
	gl.Viewport(0, 0, int32(g.width), int32(g.height))
	c := g.settings.Color("colorClear")
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// FinishFrame presents the frame and logs every pending GL error.
func (g *Graphics) FinishFrame() {
	g.win.SwapBuffers()
	drainErrors(gl.GetError)
}

func (g *Graphics) Shutdown() { g.Close() }

// Accessors used by the draw nodes.

func (g *Graphics) Settings() *settings.Store { return g.settings }
func (g *Graphics) Library() assets.Library   { return g.lib }
func (g *Graphics) Fonts() *text.FontManager  { return g.fonts }

func (g *Graphics) Width() int           { return g.width }
func (g *Graphics) Height() int          { return g.height }
func (g *Graphics) Identity() mgl32.Mat4 { return g.matrices.Identity }
func (g *Graphics) Ortho() mgl32.Mat4    { return g.matrices.Ortho }

func (g *Graphics) NoiseTextureID() uint32          { return g.noiseID }
func (g *Graphics) FourDepthNoiseTextureID() uint32 { return g.fourDepthNoiseID }
func (g *Graphics) SupportsMultisampling() bool     { return g.multisample }

// Aspect is width over height.
func (g *Graphics) Aspect() float32 {
	if g.height == 0 {
		return 1
	}
	return float32(g.width) / float32(g.height)
}

// Perspective returns the binocular projection while zoomed in.
func (g *Graphics) Perspective(binoculars bool) mgl32.Mat4 {
	if binoculars {
		return g.matrices.Binoculars
	}
	return g.matrices.Perspective
}

// View is the active camera's matrix, identity without a camera.
func (g *Graphics) View() mgl32.Mat4 {
	if g.camera == nil {
		return mgl32.Ident4()
	}
	return g.camera.View()
}

// CameraEye is the active camera position.
func (g *Graphics) CameraEye() mgl32.Vec3 {
	if g.camera == nil {
		return mgl32.Vec3{}
	}
	return g.camera.Eye()
}

// PixelsToNDC converts a pixel extent into NDC units along each axis.
func (g *Graphics) PixelsToNDC(px, py float32) mgl32.Vec2 {
	if g.width == 0 || g.height == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{px * 2 / float32(g.width), py * 2 / float32(g.height)}
}

// Close deletes every cached program, shader and texture once. Programs go
// first so their shaders are detached before deletion.
func (g *Graphics) Close() {
	for len(g.programs) > 0 {
		for name, p := range g.programs {
			p.delete()
			delete(g.programs, name)
			break
		}
	}
	for len(g.shaders) > 0 {
		for k, id := range g.shaders {
			if id != 0 {
				gl.DeleteShader(id)
			}
			delete(g.shaders, k)
			break
		}
	}
	for name, id := range g.textureIDs {
		g.DeleteTexture(&id)
		delete(g.textureIDs, name)
	}
	for size, id := range g.atlasIDs {
		g.DeleteTexture(&id)
		delete(g.atlasIDs, size)
	}
	clear(g.textures)
	g.DeleteTexture(&g.noiseID)
	g.DeleteTexture(&g.fourDepthNoiseID)
	if g.raster != nil {
		if err := g.raster.Close(); err != nil {
			logging.Verbose("close font faces", slog.Any("err", err))
		}
		g.raster = nil
	}
}
