package infinityrunner

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

//go:embed assets/*.ply
var embeddedAssets embed.FS

// DefaultAssets holds the models shipped with the binary.
func DefaultAssets() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

type AssetType int

const (
	AssetModel AssetType = iota + 1
)

func (t AssetType) String() string {
	switch t {
	case AssetModel:
		return "model"
	}
	return fmt.Sprintf("AssetType(%d)", int(t))
}

var (
	ErrUnknownAsset     = errors.New("asset was never requested")
	ErrAssetNotLoaded   = errors.New("asset is not loaded yet")
	ErrUnsupportedAsset = errors.New("unsupported asset")
	ErrLoaderDisposed   = errors.New("asset manager disposed")
)

// ModelDecoder turns the contents of a model file into a Model.
type ModelDecoder func(name string, data []byte) (*Model, error)

type assetState int

const (
	assetQueued assetState = iota
	assetLoading
	assetLoaded
	assetFailed
)

type asset struct {
	name  string
	typ   AssetType
	state assetState
	model *Model
	err   error
}

// AssetManager loads model files from a file system in the background.
// Load queues requests, Update starts them and reports, without
// blocking, whether everything requested so far has finished.
type AssetManager struct {
	fsys     fs.FS
	decoders map[string]ModelDecoder

	mu       sync.Mutex
	assets   map[string]*asset
	order    []string
	running  bool
	done     chan struct{}
	batchErr error

	ctx      context.Context
	cancel   context.CancelFunc
	disposed bool
}

func NewAssetManager(fsys fs.FS) *AssetManager {
	ctx, cancel := context.WithCancel(context.Background())
	am := &AssetManager{
		fsys:     fsys,
		decoders: make(map[string]ModelDecoder),
		assets:   make(map[string]*asset),
		ctx:      ctx,
		cancel:   cancel,
	}
	am.RegisterDecoder(".ply", func(name string, data []byte) (*Model, error) {
		return LoadModelFromPLY(name, bytes.NewReader(data), FACE_NORMAL)
	})
	am.RegisterDecoder(".dxf", func(name string, data []byte) (*Model, error) {
		return LoadModelFromDXF(name, bytes.NewReader(data), FACE_NORMAL)
	})
	return am
}

// RegisterDecoder sets the decoder used for files with the given
// extension (including the dot).
func (am *AssetManager) RegisterDecoder(ext string, dec ModelDecoder) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.decoders[strings.ToLower(ext)] = dec
}

// Load queues fileName. Requesting the same file twice is a no-op.
func (am *AssetManager) Load(fileName string, t AssetType) error {
	if t != AssetModel {
		return fmt.Errorf("%w: type %s for %s", ErrUnsupportedAsset, t, fileName)
	}

	am.mu.Lock()
	defer am.mu.Unlock()

	if am.disposed {
		return ErrLoaderDisposed
	}
	if _, ok := am.decoders[strings.ToLower(path.Ext(fileName))]; !ok {
		return fmt.Errorf("%w: no decoder for %s", ErrUnsupportedAsset, fileName)
	}
	if _, exists := am.assets[fileName]; exists {
		return nil
	}

	am.assets[fileName] = &asset{name: fileName, typ: t, state: assetQueued}
	am.order = append(am.order, fileName)
	return nil
}

// Update never blocks. It returns true once every requested asset is
// loaded, and the first load error if any asset failed.
func (am *AssetManager) Update() (bool, error) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if am.disposed {
		return false, ErrLoaderDisposed
	}

	if am.running {
		select {
		case <-am.done:
			am.running = false
			if am.batchErr != nil {
				return false, am.batchErr
			}
		default:
			return false, nil
		}
	}

	for _, name := range am.order {
		if a := am.assets[name]; a.state == assetFailed {
			return false, a.err
		}
	}

	var queued []*asset
	for _, name := range am.order {
		if a := am.assets[name]; a.state == assetQueued {
			queued = append(queued, a)
		}
	}
	if len(queued) == 0 {
		return true, nil
	}

	am.startBatch(queued)
	return false, nil
}

// startBatch must be called with mu held.
func (am *AssetManager) startBatch(queued []*asset) {
	am.running = true
	am.batchErr = nil
	done := make(chan struct{})
	am.done = done

	g, ctx := errgroup.WithContext(am.ctx)
	for _, a := range queued {
		a := a // per-iteration copy; go.mod targets go1.21 (pre-1.22 loop semantics)
		a.state = assetLoading
		dec := am.decoders[strings.ToLower(path.Ext(a.name))]
		g.Go(func() error {
			m, err := am.loadOne(ctx, a.name, dec)

			am.mu.Lock()
			defer am.mu.Unlock()
			if err != nil {
				a.state = assetFailed
				a.err = fmt.Errorf("loading %s: %w", a.name, err)
				return a.err
			}
			a.state = assetLoaded
			a.model = m
			return nil
		})
	}

	go func() {
		err := g.Wait()
		am.mu.Lock()
		am.batchErr = err
		am.mu.Unlock()
		close(done)
	}()
}

func (am *AssetManager) loadOne(ctx context.Context, name string, dec ModelDecoder) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(am.fsys, name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := dec(name, data)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s (%d faces)", name, m.FaceCount())
	return m, nil
}

// Get returns a loaded model. It is only valid after Update returned true.
func (am *AssetManager) Get(fileName string) (*Model, error) {
	am.mu.Lock()
	defer am.mu.Unlock()

	a, ok := am.assets[fileName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, fileName)
	}
	if a.state != assetLoaded {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotLoaded, fileName)
	}
	return a.model, nil
}

func (am *AssetManager) IsLoaded(fileName string) bool {
	am.mu.Lock()
	defer am.mu.Unlock()
	a, ok := am.assets[fileName]
	return ok && a.state == assetLoaded
}

// Progress is the loaded fraction of the requested assets, 1 when nothing
// was requested.
func (am *AssetManager) Progress() float64 {
	am.mu.Lock()
	defer am.mu.Unlock()
	if len(am.order) == 0 {
		return 1
	}
	loaded := 0
	for _, name := range am.order {
		if am.assets[name].state == assetLoaded {
			loaded++
		}
	}
	return float64(loaded) / float64(len(am.order))
}

// Dispose cancels in-flight loads, waits for them and disposes every
// loaded model.
func (am *AssetManager) Dispose() {
	am.mu.Lock()
	if am.disposed {
		am.mu.Unlock()
		return
	}
	am.disposed = true
	am.cancel()
	done := am.done
	running := am.running
	am.mu.Unlock()

	if running {
		<-done
	}

	am.mu.Lock()
	defer am.mu.Unlock()
	for _, name := range am.order {
		if a := am.assets[name]; a.model != nil {
			a.model.Dispose()
			a.model = nil
		}
	}
	am.assets = make(map[string]*asset)
	am.order = nil
	am.running = false
}
