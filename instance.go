package infinityrunner

import "github.com/go-gl/mathgl/mgl64"

// ModelInstance places a shared Model in the world.
type ModelInstance struct {
	Model     *Model
	Transform mgl64.Mat4
}

func NewModelInstance(m *Model) *ModelInstance {
	return &ModelInstance{
		Model:     m,
		Transform: mgl64.Ident4(),
	}
}

// Translate moves the instance in its own local space.
func (i *ModelInstance) Translate(x, y, z float64) {
	i.Transform = i.Transform.Mul4(TransMatrix(x, y, z))
}

func (i *ModelInstance) SetTranslation(x, y, z float64) {
	i.Transform.SetCol(3, mgl64.Vec4{x, y, z, 1})
}

func (i *ModelInstance) GetTranslation() mgl64.Vec3 {
	return i.Transform.Col(3).Vec3()
}
