package hud

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/drawstack"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
	"github.com/hubastard/bastion/engine/logging"
)

// TextureParams shows data/textures/<Texture>.png at its pixel size.
type TextureParams struct {
	drawstack.Placement
	Texture string
}

type TextureQuad struct {
	g     *glbackend.Graphics
	batch *renderer2d.Batch
}

func NewTextureQuad(g *glbackend.Graphics) (*TextureQuad, error) {
	b, err := renderer2d.New(g, 1)
	if err != nil {
		return nil, err
	}
	return &TextureQuad{g: g, batch: b}, nil
}

// Preload decodes and uploads the named textures so missing files surface
// at setup instead of mid-frame.
func (q *TextureQuad) Preload(names ...string) error {
	for _, n := range names {
		if _, err := q.g.TextureID(n); err != nil {
			return err
		}
	}
	return nil
}

// Size reads the decoded (CPU side) texture only.
func (q *TextureQuad) Size(p *TextureParams) mgl32.Vec2 {
	t, err := q.g.Texture(p.Texture)
	if err != nil {
		return mgl32.Vec2{}
	}
	return q.g.PixelsToNDC(float32(t.Width), float32(t.Height))
}

func (q *TextureQuad) Execute(p *TextureParams) {
	id, err := q.g.TextureID(p.Texture)
	if err != nil {
		logging.Verbose("texture quad", slog.String("texture", p.Texture), slog.Any("err", err))
		return
	}
	// the actual size keeps the aspect even when the metrics were squeezed
	size := q.Size(p)
	restore := q.g.Begin2D()
	defer restore()
	q.batch.Begin(q.g.Identity(), id, false)
	q.batch.Quad(p.Metrics.Position, size, 0, colors.White, renderer2d.Full)
	q.batch.End()
}

func (q *TextureQuad) Close() error { return q.batch.Close() }
