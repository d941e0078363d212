package infinityrunner

import "github.com/go-gl/mathgl/mgl64"

// Point is a screen space position.
type Point struct {
	X, Y float32
}

// clipPolygonAgainstNearPlane keeps the part of a camera space polygon at
// least near units in front of the eye (the camera looks down -Z).
func clipPolygonAgainstNearPlane(points []mgl64.Vec3, near float64) []mgl64.Vec3 {
	plane := NewPlaneFromPoint(mgl64.Vec3{0, 0, -near}, mgl64.Vec3{0, 0, -1})
	return plane.ClipPolygon(points)
}

// beyondFarPlane reports whether every point is further than far.
func beyondFarPlane(points []mgl64.Vec3, far float64) bool {
	for _, p := range points {
		if -p[2] <= far {
			return false
		}
	}
	return true
}

type screenEdge int

const (
	edgeLeft screenEdge = iota
	edgeRight
	edgeTop
	edgeBottom
)

func (e screenEdge) inside(p Point, w, h float32) bool {
	switch e {
	case edgeLeft:
		return p.X >= 0
	case edgeRight:
		return p.X <= w
	case edgeTop:
		return p.Y >= 0
	default:
		return p.Y <= h
	}
}

func (e screenEdge) intersect(a, b Point, w, h float32) Point {
	switch e {
	case edgeLeft, edgeRight:
		x := float32(0)
		if e == edgeRight {
			x = w
		}
		t := (x - a.X) / (b.X - a.X)
		return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
	default:
		y := float32(0)
		if e == edgeBottom {
			y = h
		}
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + t*(b.X-a.X), Y: y}
	}
}

// clipPolygon clips a convex screen polygon to the w x h viewport.
func clipPolygon(points []Point, w, h float32) []Point {
	out := points
	for _, e := range []screenEdge{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		for i := range in {
			cur := in[i]
			prev := in[(i+len(in)-1)%len(in)]
			curIn := e.inside(cur, w, h)
			prevIn := e.inside(prev, w, h)
			if curIn {
				if !prevIn {
					out = append(out, e.intersect(prev, cur, w, h))
				}
				out = append(out, cur)
			} else if prevIn {
				out = append(out, e.intersect(prev, cur, w, h))
			}
		}
	}
	if len(out) == 0 {
		return []Point{}
	}
	return out
}
