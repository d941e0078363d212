package infinityrunner

import (
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshPart is one polygon of a model: indices into the model's points,
// an index into its normals and a flat colour.
type MeshPart struct {
	PointIndices []int
	NormalIndex  int
	Color        color.RGBA
}

// Model is shared mesh data. Instances reference a model, they never
// modify it.
type Model struct {
	Name       string
	Attributes VertexAttributes
	faceMesh   *FaceMesh
	normalMesh *NormalMesh
	parts      []MeshPart
	xLength    float64
	yLength    float64
	zLength    float64
	disposed   bool
}

// NewModelFromFaces builds a model from the faces of fs. Shared points and
// normals are stored once.
func NewModelFromFaces(name string, fs *FaceStore, attrs VertexAttributes) *Model {
	o := &Model{
		Name:       name,
		Attributes: attrs,
		faceMesh:   NewFaceMesh(),
		normalMesh: NewNormalMesh(),
		parts:      make([]MeshPart, 0, fs.FaceCount()),
	}

	for i := 0; i < fs.FaceCount(); i++ {
		f := fs.GetFace(i)
		if len(f.Points) < 3 {
			continue
		}
		o.parts = append(o.parts, MeshPart{
			PointIndices: o.faceMesh.AddFace(f),
			NormalIndex:  o.normalMesh.AddNormal(f.GetNormal()),
			Color:        f.Col,
		})
	}

	log.Printf("Model %s: points: %d, normals: %d, faces: %d", name, o.faceMesh.Len(), o.normalMesh.Len(), len(o.parts))

	o.CalcSize()
	return o
}

func (o *Model) Points() []mgl64.Vec3 {
	return o.faceMesh.Points
}

func (o *Model) Normals() []mgl64.Vec3 {
	return o.normalMesh.Points
}

func (o *Model) Parts() []MeshPart {
	return o.parts
}

func (o *Model) FaceCount() int {
	return len(o.parts)
}

func (o *Model) bounds() (mgl64.Vec3, mgl64.Vec3) {
	pts := o.faceMesh.Points
	minP, maxP := pts[0], pts[0]
	for _, point := range pts {
		for a := 0; a < 3; a++ {
			if point[a] < minP[a] {
				minP[a] = point[a]
			} else if point[a] > maxP[a] {
				maxP[a] = point[a]
			}
		}
	}
	return minP, maxP
}

// Moves all points so that the 0,0,0 is the center of the object.
// Extents are unchanged.
func (o *Model) CentreObject() {
	if o.faceMesh == nil || o.faceMesh.Len() == 0 {
		return
	}

	minP, maxP := o.bounds()
	center := minP.Add(maxP).Mul(0.5)

	for i := range o.faceMesh.Points {
		o.faceMesh.Points[i] = o.faceMesh.Points[i].Sub(center)
	}
}

func (o *Model) GetExtents() (float64, float64, float64) {
	return o.xLength, o.yLength, o.zLength
}

func (o *Model) XLength() float64 {
	return o.xLength
}

func (o *Model) YLength() float64 {
	return o.yLength
}

func (o *Model) ZLength() float64 {
	return o.zLength
}

func (o *Model) CalcSize() {
	if o.faceMesh == nil || o.faceMesh.Len() == 0 {
		o.xLength = 0
		o.yLength = 0
		o.zLength = 0
		return
	}

	minP, maxP := o.bounds()
	o.xLength = maxP[0] - minP[0]
	o.yLength = maxP[1] - minP[1]
	o.zLength = maxP[2] - minP[2]
}

// Dispose releases the mesh data. It is safe to call more than once.
func (o *Model) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.faceMesh = NewFaceMesh()
	o.normalMesh = NewNormalMesh()
	o.parts = nil
}

func (o *Model) Disposed() bool {
	return o.disposed
}
