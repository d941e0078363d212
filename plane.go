package infinityrunner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is Ax + By + Cz + D = 0 with (A, B, C) the unit normal.
type Plane struct {
	A, B, C, D float64
}

const planeThickness = 1e-9

func NewPlaneFromPoint(point mgl64.Vec3, normal mgl64.Vec3) *Plane {
	n := normal.Normalize()
	return &Plane{
		A: n[0],
		B: n[1],
		C: n[2],
		D: -n.Dot(point),
	}
}

// PointOnPlane returns the signed distance of the point from the plane,
// snapped to zero inside the plane thickness.
func (p *Plane) PointOnPlane(point mgl64.Vec3) float64 {
	num := p.A*point[0] + p.B*point[1] + p.C*point[2] + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

// LineIntersect returns the point where the segment p1-p2 crosses the
// plane. A segment parallel to the plane returns p1.
func (p *Plane) LineIntersect(p1, p2 mgl64.Vec3) mgl64.Vec3 {
	d := p2.Sub(p1)
	denom := p.A*d[0] + p.B*d[1] + p.C*d[2]
	if denom == 0 {
		return p1
	}
	t := -(p.A*p1[0] + p.B*p1[1] + p.C*p1[2] + p.D) / denom
	return p1.Add(d.Mul(t))
}

// ClipPolygon keeps the part of a convex polygon on the positive side of
// the plane (points on the plane are kept).
func (p *Plane) ClipPolygon(points []mgl64.Vec3) []mgl64.Vec3 {
	if len(points) == 0 {
		return []mgl64.Vec3{}
	}

	out := make([]mgl64.Vec3, 0, len(points)+2)
	for i := range points {
		current := points[i]
		next := points[(i+1)%len(points)]
		dc := p.PointOnPlane(current)
		dn := p.PointOnPlane(next)

		if dc >= 0 {
			out = append(out, current)
		}
		if (dc > 0 && dn < 0) || (dc < 0 && dn > 0) {
			out = append(out, p.LineIntersect(current, next))
		}
	}
	return out
}
