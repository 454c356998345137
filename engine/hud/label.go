package hud

import (
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/drawstack"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/text"
)

// glyphRects maps a laid-out block to NDC rectangles (centre, size) with
// the block's bottom-left corner at origin.
func glyphRects(b text.Block, origin mgl32.Vec2, w, h int) (centers, sizes []mgl32.Vec2) {
	sx, sy := 2/float32(w), 2/float32(h)
	for _, q := range b.Quads {
		c := mgl32.Vec2{origin.X() + (q.X0+q.X1)/2*sx, origin.Y() + (q.Y0+q.Y1)/2*sy}
		centers = append(centers, c)
		sizes = append(sizes, mgl32.Vec2{(q.X1 - q.X0) * sx, (q.Y1 - q.Y0) * sy})
	}
	return centers, sizes
}

// textWriter draws laid-out blocks from the font atlas.
type textWriter struct {
	g     *glbackend.Graphics
	batch *renderer2d.Batch
}

func newTextWriter(g *glbackend.Graphics) (*textWriter, error) {
	b, err := renderer2d.New(g, 256)
	if err != nil {
		return nil, err
	}
	return &textWriter{g: g, batch: b}, nil
}

func (t *textWriter) draw(b text.Block, size int, origin mgl32.Vec2, c colors.Color) {
	if len(b.Quads) == 0 {
		return
	}
	centers, sizes := glyphRects(b, origin, t.g.Width(), t.g.Height())
	restore := t.g.Begin2D()
	defer restore()
	t.batch.Begin(t.g.Identity(), t.g.AtlasID(size), true)
	for i, q := range b.Quads {
		t.batch.Quad(centers[i], sizes[i], 0, c, renderer2d.FromGlyph(q.Glyph))
	}
	t.batch.End()
}

func (t *textWriter) Close() error { return t.batch.Close() }

type LabelParams struct {
	drawstack.Placement
	Text     string
	FontSize int
	Color    colors.Color
}

// Label draws one or more lines of text centred in its metrics.
type Label struct {
	g *glbackend.Graphics
	w *textWriter
}

func NewLabel(g *glbackend.Graphics) (*Label, error) {
	w, err := newTextWriter(g)
	if err != nil {
		return nil, err
	}
	return &Label{g: g, w: w}, nil
}

// Size measures with the glyphs already cached; runes seen for the first
// time are added on the next Execute.
func (l *Label) Size(p *LabelParams) mgl32.Vec2 {
	fm := l.g.Fonts()
	if fm == nil {
		return mgl32.Vec2{}
	}
	w, h := fm.Measure(p.Text, p.FontSize)
	return l.g.PixelsToNDC(w, h)
}

func (l *Label) Execute(p *LabelParams) {
	fm := l.g.Fonts()
	if fm == nil || p.Text == "" {
		return
	}
	if err := fm.Ensure(p.Text, p.FontSize); err != nil {
		logging.Verbose("label glyphs", slog.Any("err", err))
	}
	b := fm.Layout(p.Text, p.FontSize, 0, 0)
	size := l.g.PixelsToNDC(b.Width, b.Height)
	l.w.draw(b, p.FontSize, p.Metrics.Position.Sub(size.Mul(0.5)), p.Color)
}

func (l *Label) Close() error { return l.w.Close() }

// LineSource supplies console lines, oldest first.
type LineSource interface {
	Lines() []string
}

type ConsoleParams struct {
	drawstack.Placement
	Chrome
	FontSize int
	Color    colors.Color
}

// consoleSize is the panel extent in screen heights.
var consoleSize = mgl32.Vec2{1.5, 0.333}

// Console shows the tail of the log inside a container, newest line at the
// bottom. It borrows the container node.
type Console struct {
	g         *glbackend.Graphics
	container *Container
	lines     LineSource
	w         *textWriter
	frame     ContainerParams
}

func NewConsole(g *glbackend.Graphics, c *Container, lines LineSource) (*Console, error) {
	w, err := newTextWriter(g)
	if err != nil {
		return nil, err
	}
	return &Console{g: g, container: c, lines: lines, w: w}, nil
}

func (c *Console) Size(*ConsoleParams) mgl32.Vec2 {
	return mgl32.Vec2{consoleSize.X() / c.g.Aspect(), consoleSize.Y()}
}

// contentBox is the text area inside the padding, in pixels, and its
// bottom-left corner in NDC.
func contentBox(m drawstack.UIMetrics, padPx float32, w, h int) (sizePx, origin mgl32.Vec2) {
	sizePx = mgl32.Vec2{
		m.Size.X()*float32(w)/2 - padPx*2,
		m.Size.Y()*float32(h)/2 - padPx*2,
	}
	pad := mgl32.Vec2{padPx * 2 / float32(w), padPx * 2 / float32(h)}
	origin = m.Position.Sub(m.Size.Mul(0.5)).Add(pad)
	return sizePx, origin
}

func (c *Console) Execute(p *ConsoleParams) {
	c.frame.Chrome = p.Chrome
	c.frame.Metrics = p.Metrics
	c.frame.Size = p.Metrics.Size
	c.container.Execute(&c.frame)

	fm := c.g.Fonts()
	if fm == nil || c.lines == nil {
		return
	}
	s := strings.Join(c.lines.Lines(), "\n")
	if s == "" {
		return
	}
	if err := fm.Ensure(s, p.FontSize); err != nil {
		logging.Verbose("console glyphs", slog.Any("err", err))
	}
	box, origin := contentBox(p.Metrics, p.Padding, c.g.Width(), c.g.Height())
	if box.X() <= 0 || box.Y() <= 0 {
		return
	}
	c.w.draw(fm.Layout(s, p.FontSize, box.X(), box.Y()), p.FontSize, origin, p.Color)
}

func (c *Console) Close() error { return c.w.Close() }
