package infinityrunner

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPolygon struct {
	xp, yp   []float32
	fill     color.RGBA
	outlined bool
}

// recordingBatcher is a PolygonBatcher that keeps what it was given.
type recordingBatcher struct {
	cleared  []color.RGBA
	polygons []recordedPolygon
	flushes  int
}

func (b *recordingBatcher) Clear(clr color.RGBA) {
	b.cleared = append(b.cleared, clr)
	b.polygons = b.polygons[:0]
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.polygons = append(b.polygons, recordedPolygon{xp: xp, yp: yp, fill: clr})
}

func (b *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.polygons = append(b.polygons, recordedPolygon{xp: xp, yp: yp, fill: fillClr, outlined: true})
}

func (b *recordingBatcher) Flush() {
	b.flushes++
}

func newTestBox(t *testing.T, col color.RGBA) *Model {
	t.Helper()
	box, err := NewModelBuilder().CreateBox(2, 2, 2, NewDiffuseMaterial("test", col), UsagePosition|UsageNormal)
	require.NoError(t, err)
	return box
}

func renderFrame(t *testing.T, batch *ModelBatch, cam *PerspectiveCamera, env *Environment, instances ...*ModelInstance) *recordingBatcher {
	t.Helper()
	target := &recordingBatcher{}
	require.NoError(t, batch.Begin(cam, target))
	require.NoError(t, batch.Render(instances, env))
	require.NoError(t, batch.End())
	return target
}

func TestModelBatchScoping(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()
	target := &recordingBatcher{}

	assert.ErrorIs(t, batch.Render(nil, nil), ErrBatchNotBegun)
	assert.ErrorIs(t, batch.End(), ErrBatchNotBegun)

	require.NoError(t, batch.Begin(cam, target))
	assert.ErrorIs(t, batch.Begin(cam, target), ErrBatchBegun)
	require.NoError(t, batch.End())
	assert.Equal(t, 1, target.flushes)

	batch.Dispose()
	assert.True(t, batch.Disposed())
	assert.ErrorIs(t, batch.Begin(cam, target), ErrBatchDisposed)
}

func TestModelBatchCullsBackFaces(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()

	target := renderFrame(t, batch, cam, nil, NewModelInstance(newTestBox(t, ColorBlue)))

	// looking straight down -Z only the +Z side faces the eye
	require.Len(t, target.polygons, 1)
	p := target.polygons[0]
	assert.Equal(t, ColorBlue, p.fill)
	assert.False(t, p.outlined)
	assert.Len(t, p.xp, 4)
	for i := range p.xp {
		assert.InDelta(t, 320, p.xp[i], 100)
		assert.InDelta(t, 240, p.yp[i], 100)
	}
}

func TestModelBatchLighting(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()
	env := NewEnvironment()
	env.SetAmbient(0.5, 0.5, 0.5, 1)

	box := newTestBox(t, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	target := renderFrame(t, batch, cam, env, NewModelInstance(box))
	require.Len(t, target.polygons, 1)
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 255}, target.polygons[0].fill)

	// models without normals are never lit
	flat, err := NewModelBuilder().CreateBox(2, 2, 2, NewDiffuseMaterial("flat", ColorGreen), UsagePosition)
	require.NoError(t, err)
	target = renderFrame(t, batch, cam, env, NewModelInstance(flat))
	require.Len(t, target.polygons, 1)
	assert.Equal(t, ColorGreen, target.polygons[0].fill)
}

func TestModelBatchSortsFarToNear(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()

	near := NewModelInstance(newTestBox(t, ColorGreen))
	far := NewModelInstance(newTestBox(t, ColorBlue))
	far.SetTranslation(0, 0, -20)

	target := renderFrame(t, batch, cam, nil, near, far)
	require.Len(t, target.polygons, 2)
	assert.Equal(t, ColorBlue, target.polygons[0].fill)
	assert.Equal(t, ColorGreen, target.polygons[1].fill)
}

func TestModelBatchSkipsClippedAndDisposed(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()

	behind := NewModelInstance(newTestBox(t, ColorGreen))
	behind.SetTranslation(0, 0, 20)

	beyond := NewModelInstance(newTestBox(t, ColorGreen))
	beyond.SetTranslation(0, 0, -200)

	offscreen := NewModelInstance(newTestBox(t, ColorGreen))
	offscreen.SetTranslation(500, 0, 0)

	disposed := NewModelInstance(newTestBox(t, ColorGreen))
	disposed.Model.Dispose()

	target := renderFrame(t, batch, cam, nil, behind, beyond, offscreen, disposed, nil, NewModelInstance(nil))
	assert.Empty(t, target.polygons)
	assert.Equal(t, 1, target.flushes)
}

func TestModelBatchOutline(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()
	batch.Outline = true

	target := renderFrame(t, batch, cam, nil, NewModelInstance(newTestBox(t, ColorBlue)))
	require.Len(t, target.polygons, 1)
	assert.True(t, target.polygons[0].outlined)
}

func TestModelBatchClipsToNearPlane(t *testing.T) {
	cam := newTestCamera()
	batch := NewModelBatch()

	// a long slab from behind the eye to well in front of it
	slab, err := NewModelBuilder().CreateBox(2, 1, 40, NewDiffuseMaterial("slab", ColorGreen), UsagePosition|UsageNormal)
	require.NoError(t, err)
	inst := NewModelInstance(slab)
	inst.SetTranslation(0, -2, 0)

	target := renderFrame(t, batch, cam, nil, inst)
	require.NotEmpty(t, target.polygons)
	for _, p := range target.polygons {
		for i := range p.xp {
			assert.GreaterOrEqual(t, p.xp[i], float32(0))
			assert.LessOrEqual(t, p.xp[i], float32(640))
			assert.GreaterOrEqual(t, p.yp[i], float32(0))
			assert.LessOrEqual(t, p.yp[i], float32(480))
		}
	}
}
