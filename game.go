package infinityrunner

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Platform is what the host hands an application when it is created.
type Platform struct {
	Width, Height int
	Input         InputSource
}

// Application is driven by a Game: Create once, Render every frame and
// Dispose at shutdown.
type Application interface {
	Create(p Platform) error
	Render(target PolygonBatcher) error
	Dispose() error
}

// Game runs an Application inside ebiten. Frames are rendered during
// Update so that errors stop the loop, then copied to the screen in Draw.
type Game struct {
	app           Application
	width, height int
	input         InputSource

	batcher *ImageBatcher

	// Overlay returns the text printed over the frame while ShowOverlay is set.
	Overlay     func() string
	ShowOverlay bool
	OverlayKey  ebiten.Key
	QuitKey     ebiten.Key

	created bool
	closed  bool
}

func NewGame(app Application, width, height int) *Game {
	return &Game{
		app:        app,
		width:      width,
		height:     height,
		input:      EbitenInput{},
		OverlayKey: ebiten.KeyF3,
		QuitKey:    ebiten.KeyEscape,
	}
}

func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(g.QuitKey) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(g.OverlayKey) {
		g.ShowOverlay = !g.ShowOverlay
	}

	if !g.created {
		g.batcher = NewImageBatcher(ebiten.NewImage(g.width, g.height))
		log.Printf("Creating application at %dx%d", g.width, g.height)
		if err := g.app.Create(Platform{Width: g.width, Height: g.height, Input: g.input}); err != nil {
			return fmt.Errorf("create: %w", err)
		}
		g.created = true
	}

	if err := g.app.Render(g.batcher); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.batcher != nil {
		screen.DrawImage(g.batcher.Image(), nil)
	}
	if g.ShowOverlay {
		msg := fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS())
		if g.Overlay != nil {
			msg += "\n" + g.Overlay()
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close disposes the application. Calls after the first are no-ops.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.app.Dispose()
}
