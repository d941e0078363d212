package infinityrunner

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoPositionAttribute = errors.New("vertex attributes must include position")

// ModelBuilder creates primitive models from dimensions and a material.
type ModelBuilder struct{}

func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{}
}

// CreateBox builds a box centred on the origin. Faces are wound counter
// clockwise seen from outside so their normals point outward.
// The corners are laid out from the origin and the model centred after.
func (b *ModelBuilder) CreateBox(width, height, depth float64, material *Material, attrs VertexAttributes) (*Model, error) {
	if !attrs.Has(UsagePosition) {
		return nil, ErrNoPositionAttribute
	}
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("box dimensions must be positive, got %vx%vx%v", width, height, depth)
	}
	if material == nil {
		material = NewDiffuseMaterial("default", ColorGrey)
	}

	x, y, z := width, height, depth
	p := []mgl64.Vec3{
		{0, 0, 0}, {x, 0, 0}, {x, y, 0}, {0, y, 0}, // back (0-3)
		{0, 0, z}, {x, 0, z}, {x, y, z}, {0, y, z}, // front (4-7)
	}

	sides := [][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}

	faces := NewFaceStore()
	for _, s := range sides {
		f := NewFace(nil, material.Diffuse)
		for _, idx := range s {
			f.AddPoint(p[idx][0], p[idx][1], p[idx][2])
		}
		f.Finished(FACE_NORMAL)
		faces.AddFace(f)
	}

	m := NewModelFromFaces(material.Name+"-box", faces, attrs)
	m.CentreObject()
	return m, nil
}
