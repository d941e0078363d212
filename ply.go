package infinityrunner

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

var ErrBadModelData = errors.New("bad model data")

// Represents a vertex with its color.
type Vertex struct {
	X, Y, Z float64
	Color   color.RGBA
}

// LoadModelFromPLY reads an ASCII PLY model. Face colours come from the face
// element when present, otherwise from the average of the vertex colours,
// otherwise grey.
func LoadModelFromPLY(name string, reader io.Reader, reverse int) (*Model, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor, sawHeaderEnd bool
	var currentElement string

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrBadModelData)
	}

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("%w: only ascii PLY is supported", ErrBadModelData)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: malformed element line %q", ErrBadModelData, scanner.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", ErrBadModelData, parts[2])
			}
			currentElement = parts[1]
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			last := parts[len(parts)-1]
			if last == "red" || last == "diffuse_red" {
				if currentElement == "vertex" {
					hasVertexColor = true
				} else if currentElement == "face" {
					hasFaceColor = true
				}
			}
		case "end_header":
			sawHeaderEnd = true
			break header
		}
	}
	if !sawHeaderEnd {
		return nil, fmt.Errorf("%w: missing end_header", ErrBadModelData)
	}

	vertices := make([]Vertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading vertices", ErrBadModelData)
		}
		parts := strings.Fields(scanner.Text())

		want := 3
		if hasVertexColor {
			want = 6
		}
		if len(parts) < want {
			return nil, fmt.Errorf("%w: invalid vertex data on vertex %d", ErrBadModelData, i)
		}

		xyz, err := parseFloats(parts[:3])
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		v := Vertex{X: xyz[0], Y: xyz[1], Z: xyz[2], Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		if hasVertexColor {
			rgb, err := parseBytes(parts[3:6])
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			v.Color = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
		}
		vertices = append(vertices, v)
	}

	faces := NewFaceStore()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading faces", ErrBadModelData)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("%w: empty face on face %d", ErrBadModelData, i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 {
			return nil, fmt.Errorf("%w: bad vertex count on face %d", ErrBadModelData, i)
		}

		want := numFaceVerts + 1
		if hasFaceColor {
			want += 3
		}
		if len(parts) != want {
			return nil, fmt.Errorf("%w: invalid face data on face %d", ErrBadModelData, i)
		}

		aFace := NewFace(nil, ColorGrey)
		var r, g, b uint32
		for j := 1; j <= numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: bad vertex index %q on face %d", ErrBadModelData, parts[j], i)
			}
			vert := vertices[idx]
			aFace.AddPoint(vert.X, vert.Y, vert.Z)
			r += uint32(vert.Color.R)
			g += uint32(vert.Color.G)
			b += uint32(vert.Color.B)
		}

		switch {
		case hasFaceColor:
			rgb, err := parseBytes(parts[numFaceVerts+1 : numFaceVerts+4])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			aFace.SetColor(color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		case hasVertexColor:
			n := uint32(numFaceVerts)
			aFace.SetColor(color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255})
		}

		aFace.Finished(reverse)
		faces.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	attrs := UsagePosition | UsageNormal
	if hasFaceColor || hasVertexColor {
		attrs |= UsageColor
	}
	return NewModelFromFaces(name, faces, attrs), nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse float value %q", ErrBadModelData, s)
		}
		out[i] = v
	}
	return out, nil
}

func parseBytes(fields []string) ([]uint8, error) {
	out := make([]uint8, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse colour value %q", ErrBadModelData, s)
		}
		out[i] = uint8(v)
	}
	return out, nil
}
