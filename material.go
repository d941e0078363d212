package infinityrunner

import (
	"image/color"
	"strings"
)

// VertexAttributes is a bitmask of the per-vertex data a model carries.
type VertexAttributes uint8

const (
	UsagePosition VertexAttributes = 1 << iota
	UsageNormal
	UsageColor
)

func (a VertexAttributes) Has(u VertexAttributes) bool {
	return a&u == u
}

func (a VertexAttributes) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a.Has(UsagePosition) {
		parts = append(parts, "position")
	}
	if a.Has(UsageNormal) {
		parts = append(parts, "normal")
	}
	if a.Has(UsageColor) {
		parts = append(parts, "color")
	}
	return strings.Join(parts, "|")
}

// Material is a flat diffuse colour.
type Material struct {
	Name    string
	Diffuse color.RGBA
}

func NewDiffuseMaterial(name string, diffuse color.RGBA) *Material {
	return &Material{Name: name, Diffuse: diffuse}
}

var (
	ColorGreen = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorBlue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ColorGrey  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ColorBlack = color.RGBA{A: 255}
)
