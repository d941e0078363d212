package infinityrunner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderCall struct {
	instances []*ModelInstance
	env       *Environment
}

// fakeRenderer records what the scene or runner submits to it.
type fakeRenderer struct {
	begins, ends int
	calls        []renderCall
	renderErr    error
	disposed     int
	onDispose    func()
}

func (r *fakeRenderer) Begin(cam *PerspectiveCamera, target PolygonBatcher) error {
	r.begins++
	return nil
}

func (r *fakeRenderer) Render(instances []*ModelInstance, env *Environment) error {
	r.calls = append(r.calls, renderCall{instances: append([]*ModelInstance(nil), instances...), env: env})
	return r.renderErr
}

func (r *fakeRenderer) End() error {
	r.ends++
	return nil
}

func (r *fakeRenderer) Dispose() {
	r.disposed++
	if r.onDispose != nil {
		r.onDispose()
	}
}

func TestSceneRender(t *testing.T) {
	s := NewScene()
	env := NewEnvironment()
	a := NewModelInstance(nil)
	b := NewModelInstance(nil)
	s.AddInstance(a)
	s.AddInstance(b)

	r := &fakeRenderer{}
	require.NoError(t, s.Render(r, env))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []*ModelInstance{a, b}, r.calls[0].instances)
	assert.Same(t, env, r.calls[0].env)

	dome := NewModelInstance(nil)
	s.SetSkyDome(dome)
	r = &fakeRenderer{}
	require.NoError(t, s.Render(r, env))
	require.Len(t, r.calls, 2)
	assert.Equal(t, []*ModelInstance{dome}, r.calls[1].instances)
	assert.Nil(t, r.calls[1].env, "the sky dome is unlit")
}

func TestSceneRenderError(t *testing.T) {
	s := NewScene()
	s.SetSkyDome(NewModelInstance(nil))
	boom := errors.New("boom")

	r := &fakeRenderer{renderErr: boom}
	assert.ErrorIs(t, s.Render(r, nil), boom)
	assert.Len(t, r.calls, 1)
}

func TestSceneClear(t *testing.T) {
	s := NewScene()
	s.AddInstance(NewModelInstance(nil))
	s.SetSkyDome(NewModelInstance(nil))
	require.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Instances())
	assert.Nil(t, s.SkyDome())
	assert.NoError(t, s.Render(&fakeRenderer{}, nil))
}
