package infinityrunner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadModelFromDXF reads the 3DFACE entities of a simplified DXF file.
// Each face has four corners; DXF carries no colour so faces are grey.
func LoadModelFromDXF(name string, reader io.Reader, reverse int) (*Model, error) {
	scanner := bufio.NewScanner(reader)

	// Helper function to read the next line and parse it as a float64
	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w: unexpected end of file", ErrBadModelData)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: could not parse float value '%s'", ErrBadModelData, scanner.Text())
		}
		return val, nil
	}

	faces := NewFaceStore()
	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("%w: unexpected end of file while parsing 3DFACE header", ErrBadModelData)
			}
		}

		aFace := NewFace(nil, ColorGrey)

		for c := 0; c < 4; c++ {
			var xyz [3]float64
			for axis := 0; axis < 3; axis++ {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d for vertex %d: %w", axis, c, err)
				}
				xyz[axis] = v
				scanner.Scan() // group code of the next value
			}
			aFace.AddPoint(xyz[0], xyz[1], xyz[2])
		}

		aFace.Finished(reverse)
		faces.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if faces.FaceCount() == 0 {
		return nil, fmt.Errorf("%w: no 3DFACE entities", ErrBadModelData)
	}

	return NewModelFromFaces(name, faces, UsagePosition|UsageNormal), nil
}
