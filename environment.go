package infinityrunner

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// LightColor is a linear colour, components normally in [0, 1].
type LightColor struct {
	R, G, B, A float64
}

type DirectionalLight struct {
	Color     LightColor
	Direction mgl64.Vec3
}

func NewDirectionalLight(r, g, b, dirX, dirY, dirZ float64) DirectionalLight {
	return DirectionalLight{
		Color:     LightColor{R: r, G: g, B: b, A: 1},
		Direction: mgl64.Vec3{dirX, dirY, dirZ}.Normalize(),
	}
}

// Environment is the lighting applied to lit instances: one ambient term
// plus any number of directional lights.
type Environment struct {
	Ambient LightColor
	Lights  []DirectionalLight
}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (e *Environment) SetAmbient(r, g, b, a float64) {
	e.Ambient = LightColor{R: r, G: g, B: b, A: a}
}

func (e *Environment) Add(l DirectionalLight) {
	e.Lights = append(e.Lights, l)
}

// Shade lights base with a world space unit normal.
func (e *Environment) Shade(base color.RGBA, normal mgl64.Vec3) color.RGBA {
	r, g, b := e.Ambient.R, e.Ambient.G, e.Ambient.B
	for _, l := range e.Lights {
		diffuse := -normal.Dot(l.Direction)
		if diffuse <= 0 {
			continue
		}
		r += l.Color.R * diffuse
		g += l.Color.G * diffuse
		b += l.Color.B * diffuse
	}

	return color.RGBA{
		R: scaleChannel(base.R, r),
		G: scaleChannel(base.G, g),
		B: scaleChannel(base.B, b),
		A: base.A,
	}
}

func scaleChannel(c uint8, f float64) uint8 {
	if f > 1 {
		f = 1
	}
	return uint8(clamp(int(float64(c)*f+0.5), 0, 255))
}
