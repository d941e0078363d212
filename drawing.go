package infinityrunner

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PolygonBatcher receives screen space polygons from a ModelBatch.
type PolygonBatcher interface {
	Clear(clr color.RGBA)
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
	Flush()
}

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// ImageBatcher accumulates polygons and draws them onto an image with as
// few DrawTriangles calls as the 16 bit index range allows.
type ImageBatcher struct {
	dst       *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
	AntiAlias bool
}

func NewImageBatcher(dst *ebiten.Image) *ImageBatcher {
	return &ImageBatcher{
		dst:       dst,
		vertices:  make([]ebiten.Vertex, 0, 4096),
		indices:   make([]uint16, 0, 8192),
		AntiAlias: true,
	}
}

func (b *ImageBatcher) Image() *ebiten.Image {
	return b.dst
}

func (b *ImageBatcher) Clear(clr color.RGBA) {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.dst.Fill(clr)
}

func (b *ImageBatcher) reserve(n int) {
	if len(b.vertices)+n > math.MaxUint16 {
		b.Flush()
	}
}

func (b *ImageBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 || len(xp) != len(yp) {
		return
	}
	b.reserve(len(xp))

	cr, cg, cb, ca := colorToFloats(clr)
	base := uint16(len(b.vertices))
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

func (b *ImageBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.AddPolygon(xp, yp, fillClr)
	if len(xp) < 2 || len(xp) != len(yp) {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	// strokes with joins use several vertices per edge
	b.reserve(len(xp) * 16)

	start := len(b.vertices)
	b.vertices, b.indices = path.AppendVerticesAndIndicesForStroke(b.vertices, b.indices, &vector.StrokeOptions{
		Width: strokeWidth,
	})

	cr, cg, cb, ca := colorToFloats(strokeClr)
	for i := start; i < len(b.vertices); i++ {
		b.vertices[i].ColorR = cr
		b.vertices[i].ColorG = cg
		b.vertices[i].ColorB = cb
		b.vertices[i].ColorA = ca
		b.vertices[i].SrcX = 1
		b.vertices[i].SrcY = 1
	}
}

func (b *ImageBatcher) Flush() {
	if len(b.indices) == 0 {
		b.vertices = b.vertices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: b.AntiAlias}
	b.dst.DrawTriangles(b.vertices, b.indices, whiteSubImage(), op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func colorToFloats(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
