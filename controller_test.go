package infinityrunner

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

// scriptedInput is an InputSource whose state the test sets directly.
type scriptedInput struct {
	x, y    int
	buttons map[ebiten.MouseButton]bool
	keys    map[ebiten.Key]bool
	wheelY  float64
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{
		buttons: make(map[ebiten.MouseButton]bool),
		keys:    make(map[ebiten.Key]bool),
	}
}

func (s *scriptedInput) CursorPosition() (int, int) { return s.x, s.y }

func (s *scriptedInput) IsMouseButtonPressed(b ebiten.MouseButton) bool { return s.buttons[b] }

func (s *scriptedInput) Wheel() (float64, float64) { return 0, s.wheelY }

func (s *scriptedInput) IsKeyPressed(k ebiten.Key) bool { return s.keys[k] }

func newControlledCamera() (*PerspectiveCamera, *scriptedInput, *CameraInputController) {
	cam := newTestCamera()
	in := newScriptedInput()
	return cam, in, NewCameraInputController(cam, in)
}

func TestControllerIdle(t *testing.T) {
	cam, _, ctl := newControlledCamera()
	before := *cam

	ctl.Update()
	assert.Equal(t, before.Position, cam.Position)
	assert.Equal(t, before.Direction, cam.Direction)
}

func TestControllerWheelZooms(t *testing.T) {
	cam, in, ctl := newControlledCamera()

	in.wheelY = 1
	ctl.Update()
	assertVecsInDelta(t, []mgl64.Vec3{{0, 0, 9}}, []mgl64.Vec3{cam.Position})

	in.wheelY = -2
	ctl.Update()
	assertVecsInDelta(t, []mgl64.Vec3{{0, 0, 11}}, []mgl64.Vec3{cam.Position})
}

func TestControllerKeys(t *testing.T) {
	cam, in, ctl := newControlledCamera()

	in.keys[ebiten.KeyW] = true
	ctl.Update()
	assert.InDelta(t, 10-1.0/6, cam.Position[2], 1e-9)
	assert.InDelta(t, -1.0/6, ctl.Target[2], 1e-9)

	in.keys[ebiten.KeyW] = false
	in.keys[ebiten.KeyD] = true
	dist := cam.Position.Sub(ctl.Target).Len()
	ctl.Update()
	assert.InDelta(t, dist, cam.Position.Sub(ctl.Target).Len(), 1e-9)
	assert.Less(t, cam.Position[0], 0.0)
}

func TestControllerDragRotates(t *testing.T) {
	cam, in, ctl := newControlledCamera()
	view := cam.View

	in.x, in.y = 100, 100
	in.buttons[ebiten.MouseButtonLeft] = true
	ctl.Update()
	assert.Equal(t, view, cam.View, "pressing only starts the drag")

	in.x = 164
	ctl.Update()
	assert.NotEqual(t, view, cam.View)
	assert.InDelta(t, 10, cam.Position.Len(), 1e-9)

	// the target stays in the centre of the view
	sx, sy, ok := cam.Project(ctl.Target)
	assert.True(t, ok)
	assert.InDelta(t, 320, sx, 1e-6)
	assert.InDelta(t, 240, sy, 1e-6)

	in.buttons[ebiten.MouseButtonLeft] = false
	ctl.Update()
	pos := cam.Position
	in.x = 300
	ctl.Update()
	assert.Equal(t, pos, cam.Position, "released drags do nothing")
}

func TestControllerDragTranslates(t *testing.T) {
	cam, in, ctl := newControlledCamera()

	in.x, in.y = 100, 100
	in.buttons[ebiten.MouseButtonRight] = true
	ctl.Update()

	in.x = 164
	ctl.Update()
	assertVecsInDelta(t, []mgl64.Vec3{{-1, 0, 10}}, []mgl64.Vec3{cam.Position})
	assertVecsInDelta(t, []mgl64.Vec3{{-1, 0, 0}}, []mgl64.Vec3{ctl.Target})
}

func TestControllerWithoutAutoUpdate(t *testing.T) {
	cam, in, ctl := newControlledCamera()
	ctl.AutoUpdate = false
	view := cam.View

	in.wheelY = 1
	ctl.Update()
	assert.NotEqual(t, mgl64.Vec3{0, 0, 10}, cam.Position)
	assert.Equal(t, view, cam.View)
}
