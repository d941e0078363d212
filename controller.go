package infinityrunner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSource is the raw pointer and keyboard state polled once per frame.
type InputSource interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	Wheel() (float64, float64)
	IsKeyPressed(k ebiten.Key) bool
}

// EbitenInput reads input from the running ebiten game.
type EbitenInput struct{}

func (EbitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (EbitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

func (EbitenInput) IsKeyPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// CameraInputController turns mouse drags, the wheel and WASD into
// orbit, pan and zoom of a camera around Target.
type CameraInputController struct {
	camera *PerspectiveCamera
	input  InputSource

	Target mgl64.Vec3
	// degrees turned when dragging across the whole viewport
	RotateAngle float64
	// world units moved when dragging across the whole viewport
	TranslateUnits float64
	ScrollFactor   float64
	// per second, for held keys
	KeyTranslateUnits float64
	KeyRotateAngle    float64
	DeltaTime         float64
	TranslateTarget   bool
	AutoUpdate        bool

	RotateButton    ebiten.MouseButton
	TranslateButton ebiten.MouseButton
	ForwardKey      ebiten.Key
	BackwardKey     ebiten.Key
	RotateLeftKey   ebiten.Key
	RotateRightKey  ebiten.Key

	dragButton   ebiten.MouseButton
	dragging     bool
	lastX, lastY int
}

func NewCameraInputController(cam *PerspectiveCamera, input InputSource) *CameraInputController {
	return &CameraInputController{
		camera:            cam,
		input:             input,
		RotateAngle:       360,
		TranslateUnits:    10,
		ScrollFactor:      -0.1,
		KeyTranslateUnits: 10,
		KeyRotateAngle:    360,
		DeltaTime:         1.0 / 60.0,
		TranslateTarget:   true,
		AutoUpdate:        true,
		RotateButton:      ebiten.MouseButtonLeft,
		TranslateButton:   ebiten.MouseButtonRight,
		ForwardKey:        ebiten.KeyW,
		BackwardKey:       ebiten.KeyS,
		RotateLeftKey:     ebiten.KeyA,
		RotateRightKey:    ebiten.KeyD,
	}
}

// Update applies this frame's input to the camera.
func (c *CameraInputController) Update() {
	changed := c.updateKeys()
	if c.updateDrag() {
		changed = true
	}
	if c.updateWheel() {
		changed = true
	}
	if changed && c.AutoUpdate {
		c.camera.Update()
	}
}

func (c *CameraInputController) updateKeys() bool {
	changed := false
	if c.input.IsKeyPressed(c.RotateRightKey) {
		c.camera.RotateAround(c.Target, YAxis, -c.DeltaTime*c.KeyRotateAngle)
		changed = true
	}
	if c.input.IsKeyPressed(c.RotateLeftKey) {
		c.camera.RotateAround(c.Target, YAxis, c.DeltaTime*c.KeyRotateAngle)
		changed = true
	}
	if c.input.IsKeyPressed(c.ForwardKey) {
		c.moveForward(c.DeltaTime * c.KeyTranslateUnits)
		changed = true
	}
	if c.input.IsKeyPressed(c.BackwardKey) {
		c.moveForward(-c.DeltaTime * c.KeyTranslateUnits)
		changed = true
	}
	return changed
}

func (c *CameraInputController) updateDrag() bool {
	x, y := c.input.CursorPosition()
	if !c.dragging {
		for _, b := range []ebiten.MouseButton{c.RotateButton, c.TranslateButton} {
			if c.input.IsMouseButtonPressed(b) {
				c.dragging = true
				c.dragButton = b
				c.lastX, c.lastY = x, y
				break
			}
		}
		return false
	}

	if !c.input.IsMouseButtonPressed(c.dragButton) {
		c.dragging = false
		return false
	}

	if x == c.lastX && y == c.lastY {
		return false
	}
	deltaX := float64(x-c.lastX) / c.camera.ViewportWidth
	deltaY := float64(c.lastY-y) / c.camera.ViewportHeight
	c.lastX, c.lastY = x, y
	return c.process(deltaX, deltaY, c.dragButton)
}

func (c *CameraInputController) process(deltaX, deltaY float64, button ebiten.MouseButton) bool {
	switch button {
	case c.RotateButton:
		side := c.camera.Direction.Cross(c.camera.Up)
		side[1] = 0
		c.camera.RotateAround(c.Target, side, deltaY*c.RotateAngle)
		c.camera.RotateAround(c.Target, YAxis, deltaX*-c.RotateAngle)
	case c.TranslateButton:
		side := c.camera.Direction.Cross(c.camera.Up)
		if side.Len() > 0 {
			side = side.Normalize()
		}
		move := side.Mul(-deltaX * c.TranslateUnits).Add(c.camera.Up.Mul(-deltaY * c.TranslateUnits))
		c.camera.Translate(move)
		if c.TranslateTarget {
			c.Target = c.Target.Add(move)
		}
	default:
		return false
	}
	return true
}

func (c *CameraInputController) updateWheel() bool {
	_, dy := c.input.Wheel()
	if dy == 0 {
		return false
	}
	// ebiten reports wheel up as positive
	c.camera.Translate(c.camera.Direction.Mul(-dy * c.ScrollFactor * c.TranslateUnits))
	return true
}

func (c *CameraInputController) moveForward(amount float64) {
	move := c.camera.Direction.Mul(amount)
	c.camera.Translate(move)
	if c.TranslateTarget {
		c.Target = c.Target.Add(move)
	}
}
