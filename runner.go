package infinityrunner

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	PlaneBoxAsset = "plane_box.ply"
	DomeAsset     = "dome.ply"
)

var (
	ErrNotCreated     = errors.New("application not created")
	ErrAlreadyCreated = errors.New("application already created")
	ErrDisposed       = errors.New("application already disposed")
)

// LoadState is Pending until every requested asset has loaded, then Ready
// for the rest of the process.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// Renderer is the batch the runner submits its scene to every frame.
type Renderer interface {
	Begin(cam *PerspectiveCamera, target PolygonBatcher) error
	Render(instances []*ModelInstance, env *Environment) error
	End() error
	Dispose()
}

// AssetLoader queues model files and is polled once per frame.
type AssetLoader interface {
	Load(fileName string, t AssetType) error
	Update() (bool, error)
	Get(fileName string) (*Model, error)
	Dispose()
}

type RunnerOption func(*Runner)

func WithRenderer(r Renderer) RunnerOption {
	return func(rn *Runner) { rn.batch = r }
}

func WithAssetLoader(l AssetLoader) RunnerOption {
	return func(rn *Runner) { rn.assets = l }
}

// Runner is the infinity runner scene: a lit box world, a sky dome and a
// player marker that walks forward with the camera trailing it.
type Runner struct {
	cfg  Config
	fsys fs.FS

	camera     *PerspectiveCamera
	batch      Renderer
	env        *Environment
	controller *CameraInputController
	assets     AssetLoader
	builder    *ModelBuilder
	scene      *Scene
	owned      []*Model

	player       *ModelInstance
	playerCoords mgl64.Vec3
	state        LoadState

	created  bool
	disposed bool
}

func NewRunner(cfg Config, fsys fs.FS, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:     cfg,
		fsys:    fsys,
		builder: NewModelBuilder(),
		scene:   NewScene(),
		state:   LoadPending,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Create(p Platform) error {
	if r.created {
		return ErrAlreadyCreated
	}
	if r.disposed {
		return ErrDisposed
	}
	log.Printf("Initializing %s scene...", r.cfg.Mode)

	if r.batch == nil {
		mb := NewModelBatch()
		mb.Outline = r.cfg.Outlines
		r.batch = mb
	}
	r.env = NewEnvironment()
	r.setupLights()
	r.setCamera(p)

	input := p.Input
	if input == nil {
		input = EbitenInput{}
	}
	r.controller = NewCameraInputController(r.camera, input)
	r.created = true

	if r.cfg.Mode == ModePrimitive {
		if err := r.buildPrimitiveScene(); err != nil {
			return err
		}
		r.state = LoadReady
		log.Println("Initialization Complete.")
		return nil
	}

	r.controller.Target = r.lookAtTarget()
	if r.assets == nil {
		r.assets = NewAssetManager(r.fsys)
	}
	for _, name := range []string{PlaneBoxAsset, DomeAsset} {
		if err := r.assets.Load(name, AssetModel); err != nil {
			return fmt.Errorf("queueing %s: %w", name, err)
		}
	}
	r.state = LoadPending
	log.Println("Initialization Complete, loading assets...")
	return nil
}

func (r *Runner) setupLights() {
	r.env.SetAmbient(0.4, 0.4, 0.4, 1)
	r.env.Add(NewDirectionalLight(0.8, 0.8, 0.8, -1, -0.8, -0.2))
}

func (r *Runner) lookAtTarget() mgl64.Vec3 {
	return mgl64.Vec3{r.playerCoords[0], r.cfg.Camera.Height, r.playerCoords[2] + r.cfg.Camera.Trail}
}

func (r *Runner) setCamera(p Platform) {
	r.camera = NewPerspectiveCamera(r.cfg.Camera.FieldOfView, float64(p.Width), float64(p.Height))
	if r.cfg.Mode == ModePrimitive {
		r.camera.SetPosition(10, 10, 10)
		r.camera.LookAt(0, 0, 0)
	} else {
		r.camera.SetPosition(20, 10, 0)
		t := r.lookAtTarget()
		r.camera.LookAt(t[0], t[1], t[2])
	}
	r.camera.Near = r.cfg.Camera.Near
	r.camera.Far = r.cfg.Camera.Far
	r.camera.Update()
}

func (r *Runner) buildPrimitiveScene() error {
	box, err := r.builder.CreateBox(5, 5, 5, NewDiffuseMaterial("box", ColorGreen), UsagePosition|UsageNormal)
	if err != nil {
		return err
	}
	r.owned = append(r.owned, box)
	r.scene.AddInstance(NewModelInstance(box))
	return nil
}

func (r *Runner) Render(target PolygonBatcher) error {
	if r.disposed {
		return ErrDisposed
	}
	if !r.created {
		return ErrNotCreated
	}

	if r.state == LoadPending {
		done, err := r.assets.Update()
		if err != nil {
			return fmt.Errorf("loading assets: %w", err)
		}
		if done {
			if err := r.doneLoading(); err != nil {
				return err
			}
			if r.player != nil {
				r.playerCoords = r.player.GetTranslation()
			}
		}
	}

	// Input first: the trailing position below overrides any drag or zoom,
	// only the orientation survives.
	r.controller.Update()

	if r.state == LoadReady && r.player != nil {
		r.updatePlayer()
		r.playerCoords = r.player.GetTranslation()
		r.camera.SetPosition(r.playerCoords[0], r.cfg.Camera.Height, r.playerCoords[2]+r.cfg.Camera.Trail)
		r.camera.Update()
	}

	target.Clear(ColorBlack)
	if err := r.batch.Begin(r.camera, target); err != nil {
		return err
	}
	renderErr := r.scene.Render(r.batch, r.env)
	if err := r.batch.End(); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

func (r *Runner) updatePlayer() {
	r.player.Translate(r.cfg.Player.Step, 0, 0)
}

// doneLoading assembles the scene from the loaded models. It runs once.
func (r *Runner) doneLoading() error {
	plane, err := r.assets.Get(PlaneBoxAsset)
	if err != nil {
		return err
	}
	dome, err := r.assets.Get(DomeAsset)
	if err != nil {
		return err
	}

	r.scene.AddInstance(NewModelInstance(plane))

	second := NewModelInstance(plane)
	second.SetTranslation(0, 0, -30)
	r.scene.AddInstance(second)

	r.scene.SetSkyDome(NewModelInstance(dome))

	if err := r.createSimpleGroundPlane(); err != nil {
		return err
	}
	if r.cfg.Mode == ModeRunner {
		if err := r.playerPlaceHolder(); err != nil {
			return err
		}
	}

	r.state = LoadReady
	log.Printf("Scene assembled with %d instances", r.scene.Len())
	return nil
}

// createSimpleGroundPlane covers the void underneath the dome.
func (r *Runner) createSimpleGroundPlane() error {
	ground, err := r.builder.CreateBox(600, 1, 600, NewDiffuseMaterial("ground", ColorGreen), UsagePosition|UsageNormal)
	if err != nil {
		return err
	}
	r.owned = append(r.owned, ground)
	r.scene.AddInstance(NewModelInstance(ground))
	return nil
}

func (r *Runner) playerPlaceHolder() error {
	model, err := r.builder.CreateBox(5, 18, 3, NewDiffuseMaterial("player", ColorBlue), UsagePosition|UsageNormal)
	if err != nil {
		return err
	}
	r.owned = append(r.owned, model)
	r.player = NewModelInstance(model)
	r.scene.AddInstance(r.player)
	return nil
}

// Dispose releases the renderer, then the instances, then the loader.
// Only the first call does anything.
func (r *Runner) Dispose() error {
	if r.disposed {
		return ErrDisposed
	}
	r.disposed = true

	if r.batch != nil {
		r.batch.Dispose()
	}

	r.scene.Clear()
	r.player = nil
	for _, m := range r.owned {
		m.Dispose()
	}
	r.owned = nil

	if r.assets != nil {
		r.assets.Dispose()
	}
	log.Println("Disposed.")
	return nil
}

func (r *Runner) State() LoadState {
	return r.state
}

func (r *Runner) Scene() *Scene {
	return r.scene
}

func (r *Runner) Camera() *PerspectiveCamera {
	return r.camera
}

func (r *Runner) Player() *ModelInstance {
	return r.player
}

func (r *Runner) PlayerPosition() mgl64.Vec3 {
	return r.playerCoords
}

// Status is the one line shown by the debug overlay.
func (r *Runner) Status() string {
	s := fmt.Sprintf("mode: %s state: %s", r.cfg.Mode, r.state)
	if p, ok := r.assets.(interface{ Progress() float64 }); ok && r.state == LoadPending {
		s += fmt.Sprintf(" loaded: %.0f%%", p.Progress()*100)
	}
	if r.player != nil {
		s += fmt.Sprintf(" player x: %.0f", r.playerCoords[0])
	}
	return s
}
