package infinityrunner

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera looks from Position along Direction. View, Projection
// and Combined are only recomputed by Update.
type PerspectiveCamera struct {
	Position       mgl64.Vec3
	Direction      mgl64.Vec3
	Up             mgl64.Vec3
	FieldOfView    float64 // vertical, degrees
	Near           float64
	Far            float64
	ViewportWidth  float64
	ViewportHeight float64

	View       mgl64.Mat4
	Projection mgl64.Mat4
	Combined   mgl64.Mat4
}

func NewPerspectiveCamera(fieldOfView, viewportWidth, viewportHeight float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Direction:      mgl64.Vec3{0, 0, -1},
		Up:             mgl64.Vec3{0, 1, 0},
		FieldOfView:    fieldOfView,
		Near:           1,
		Far:            100,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
	c.Update()
	return c
}

func (c *PerspectiveCamera) Update() {
	aspect := 1.0
	if c.ViewportHeight > 0 {
		aspect = c.ViewportWidth / c.ViewportHeight
	}
	c.Projection = mgl64.Perspective(mgl64.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
	c.View = mgl64.LookAtV(c.Position, c.Position.Add(c.Direction), c.Up)
	c.Combined = c.Projection.Mul4(c.View)
}

// LookAt points the camera at the given world position, keeping the up
// vector orthogonal to the new direction.
func (c *PerspectiveCamera) LookAt(x, y, z float64) {
	d := mgl64.Vec3{x, y, z}.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	c.Direction = d.Normalize()
	c.normalizeUp()
}

func (c *PerspectiveCamera) normalizeUp() {
	right := c.Direction.Cross(c.Up)
	if right.Len() == 0 {
		return
	}
	c.Up = right.Normalize().Cross(c.Direction).Normalize()
}

func (c *PerspectiveCamera) SetPosition(x, y, z float64) {
	c.Position = mgl64.Vec3{x, y, z}
}

func (c *PerspectiveCamera) Translate(v mgl64.Vec3) {
	c.Position = c.Position.Add(v)
}

// Rotate turns direction and up around axis by angle degrees.
func (c *PerspectiveCamera) Rotate(axis mgl64.Vec3, angle float64) {
	if axis.Len() == 0 {
		return
	}
	m := mgl64.HomogRotate3D(mgl64.DegToRad(angle), axis.Normalize())
	c.Direction = RotateVector3(m, c.Direction).Normalize()
	c.Up = RotateVector3(m, c.Up).Normalize()
}

// RotateAround orbits the camera around point, turning it by the same
// angle so the point stays at the same spot in view.
func (c *PerspectiveCamera) RotateAround(point, axis mgl64.Vec3, angle float64) {
	if axis.Len() == 0 {
		return
	}
	m := mgl64.HomogRotate3D(mgl64.DegToRad(angle), axis.Normalize())
	offset := c.Position.Sub(point)
	c.Position = point.Add(RotateVector3(m, offset))
	c.Rotate(axis, angle)
}

// ToViewSpace maps a world point into camera space (camera at origin,
// looking down -Z).
func (c *PerspectiveCamera) ToViewSpace(world mgl64.Vec3) mgl64.Vec3 {
	return c.View.Mul4x1(world.Vec4(1)).Vec3()
}

// ProjectView maps a camera space point to screen pixels with y growing
// downwards. ok is false for points at or behind the eye.
func (c *PerspectiveCamera) ProjectView(view mgl64.Vec3) (float64, float64, bool) {
	clip := c.Projection.Mul4x1(view.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	sx := (ndcX + 1) * 0.5 * c.ViewportWidth
	sy := (1 - ndcY) * 0.5 * c.ViewportHeight
	return sx, sy, true
}

// Project maps a world point to screen pixels.
func (c *PerspectiveCamera) Project(world mgl64.Vec3) (float64, float64, bool) {
	return c.ProjectView(c.ToViewSpace(world))
}
