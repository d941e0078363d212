package infinityrunner

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a store of unique points. Adding a point that already exists
// returns the index of the existing copy.
type Mesh struct {
	Points     []mgl64.Vec3
	pointIndex map[mgl64.Vec3]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     make([]mgl64.Vec3, 0, 16),
		pointIndex: make(map[mgl64.Vec3]int),
	}
}

func (m *Mesh) AddPoint(point mgl64.Vec3) (mgl64.Vec3, int) {
	if index, found := m.pointIndex[point]; found {
		return m.Points[index], index
	}

	m.Points = append(m.Points, point)
	newIndex := len(m.Points) - 1
	m.pointIndex[point] = newIndex

	return point, newIndex
}

func (m *Mesh) Len() int {
	return len(m.Points)
}

type FaceMesh struct {
	Mesh
}

func NewFaceMesh() *FaceMesh {
	return &FaceMesh{Mesh: *NewMesh()}
}

// AddFace stores the face's points and returns their indices in face order.
func (fm *FaceMesh) AddFace(f *Face) []int {
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		_, indices[i] = fm.AddPoint(p)
	}
	return indices
}

type NormalMesh struct {
	Mesh
}

func NewNormalMesh() *NormalMesh {
	return &NormalMesh{Mesh: *NewMesh()}
}

func (nm *NormalMesh) AddNormal(n mgl64.Vec3) int {
	_, idx := nm.AddPoint(n)
	return idx
}
