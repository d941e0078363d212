package infinityrunner

import (
	"errors"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrBatchBegun    = errors.New("batch: End must be called before Begin")
	ErrBatchNotBegun = errors.New("batch: Begin must be called first")
	ErrBatchDisposed = errors.New("batch: disposed")
)

type polygon struct {
	xp, yp []float32
	col    color.RGBA
	depth  float64
}

// ModelBatch renders model instances between Begin and End. Polygons are
// collected and drawn far to near when End is called.
type ModelBatch struct {
	camera   *PerspectiveCamera
	target   PolygonBatcher
	polys    []polygon
	begun    bool
	disposed bool

	// Outline, when set, strokes every polygon with OutlineColor.
	Outline      bool
	OutlineColor color.RGBA

	viewPoints  []mgl64.Vec3
	viewNormals []mgl64.Vec3
	facePoints  []mgl64.Vec3
}

func NewModelBatch() *ModelBatch {
	return &ModelBatch{
		polys:        make([]polygon, 0, 256),
		OutlineColor: color.RGBA{R: 50, G: 50, B: 50, A: 25},
	}
}

func (b *ModelBatch) Begin(cam *PerspectiveCamera, target PolygonBatcher) error {
	if b.disposed {
		return ErrBatchDisposed
	}
	if b.begun {
		return ErrBatchBegun
	}
	b.camera = cam
	b.target = target
	b.polys = b.polys[:0]
	b.begun = true
	return nil
}

// Render queues the instances. A nil environment renders them unlit.
func (b *ModelBatch) Render(instances []*ModelInstance, env *Environment) error {
	if !b.begun {
		return ErrBatchNotBegun
	}
	for _, inst := range instances {
		if inst == nil || inst.Model == nil || inst.Model.Disposed() {
			continue
		}
		b.renderInstance(inst, env)
	}
	return nil
}

func (b *ModelBatch) End() error {
	if !b.begun {
		return ErrBatchNotBegun
	}
	b.begun = false

	sort.SliceStable(b.polys, func(i, j int) bool {
		return b.polys[i].depth > b.polys[j].depth
	})

	for _, p := range b.polys {
		if b.Outline {
			b.target.AddPolygonAndOutline(p.xp, p.yp, p.col, b.OutlineColor, 1.0)
		} else {
			b.target.AddPolygon(p.xp, p.yp, p.col)
		}
	}
	b.target.Flush()

	b.polys = b.polys[:0]
	b.camera = nil
	b.target = nil
	return nil
}

func (b *ModelBatch) Dispose() {
	b.disposed = true
	b.polys = nil
	b.viewPoints = nil
	b.viewNormals = nil
	b.facePoints = nil
}

func (b *ModelBatch) Disposed() bool {
	return b.disposed
}

func (b *ModelBatch) renderInstance(inst *ModelInstance, env *Environment) {
	m := inst.Model
	modelView := b.camera.View.Mul4(inst.Transform)

	points := m.Points()
	normals := m.Normals()
	b.viewPoints = grow(b.viewPoints, len(points))
	b.viewNormals = grow(b.viewNormals, len(normals))
	TransformObj(modelView, points, b.viewPoints)
	TransformNormals(modelView, normals, b.viewNormals)

	lit := env != nil && m.Attributes.Has(UsageNormal)
	w := float32(b.camera.ViewportWidth)
	h := float32(b.camera.ViewportHeight)

	for _, part := range m.Parts() {
		b.facePoints = b.facePoints[:0]
		for _, idx := range part.PointIndices {
			b.facePoints = append(b.facePoints, b.viewPoints[idx])
		}

		// back face: the normal points away from the eye at the origin
		normal := b.viewNormals[part.NormalIndex]
		if normal.Dot(b.facePoints[0]) >= 0 {
			continue
		}

		if beyondFarPlane(b.facePoints, b.camera.Far) {
			continue
		}
		clipped := clipPolygonAgainstNearPlane(b.facePoints, b.camera.Near)
		if len(clipped) < 3 {
			continue
		}

		screen := make([]Point, 0, len(clipped))
		for _, p := range clipped {
			sx, sy, ok := b.camera.ProjectView(p)
			if !ok {
				break
			}
			screen = append(screen, Point{X: float32(sx), Y: float32(sy)})
		}
		if len(screen) != len(clipped) {
			continue
		}
		screen = clipPolygon(screen, w, h)
		if len(screen) < 3 {
			continue
		}

		col := part.Color
		if lit {
			worldNormal := RotateVector3(inst.Transform, m.Normals()[part.NormalIndex]).Normalize()
			col = env.Shade(col, worldNormal)
		}

		xp := make([]float32, len(screen))
		yp := make([]float32, len(screen))
		for i, p := range screen {
			xp[i] = p.X
			yp[i] = p.Y
		}

		b.polys = append(b.polys, polygon{
			xp:    xp,
			yp:    yp,
			col:   col,
			depth: -getMidpoint(clipped)[2],
		})
	}
}

func grow(s []mgl64.Vec3, n int) []mgl64.Vec3 {
	if cap(s) < n {
		return make([]mgl64.Vec3, n)
	}
	return s[:n]
}
