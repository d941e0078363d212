package infinityrunner

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingApp struct {
	creates, renders, disposes int
	createErr, renderErr       error
	disposeErr                 error
	platform                   Platform
}

func (a *countingApp) Create(p Platform) error {
	a.creates++
	a.platform = p
	return a.createErr
}

func (a *countingApp) Render(target PolygonBatcher) error { a.renders++; return a.renderErr }

func (a *countingApp) Dispose() error { a.disposes++; return a.disposeErr }

func TestGameLayout(t *testing.T) {
	g := NewGame(&countingApp{}, 320, 200)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestGameUpdate(t *testing.T) {
	boom := errors.New("boom")

	testCases := []struct {
		name        string
		app         *countingApp
		updates     int
		wantErr     error
		wantCreates int
		wantRenders int
	}{
		{
			name:        "creates once and renders every frame",
			app:         &countingApp{},
			updates:     2,
			wantCreates: 1,
			wantRenders: 2,
		},
		{
			name:        "render error stops the loop",
			app:         &countingApp{renderErr: boom},
			updates:     1,
			wantErr:     boom,
			wantCreates: 1,
			wantRenders: 1,
		},
		{
			name:        "create error skips render",
			app:         &countingApp{createErr: boom},
			updates:     1,
			wantErr:     boom,
			wantCreates: 1,
			wantRenders: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGame(tc.app, 320, 200)

			var err error
			for i := 0; i < tc.updates; i++ {
				err = g.Update()
			}

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantCreates, tc.app.creates)
			assert.Equal(t, tc.wantRenders, tc.app.renders)
			assert.Equal(t, Platform{Width: 320, Height: 200, Input: EbitenInput{}}, tc.app.platform)
		})
	}
}

func TestGameUpdateWrapsErrors(t *testing.T) {
	boom := errors.New("boom")

	err := NewGame(&countingApp{createErr: boom}, 320, 200).Update()
	assert.EqualError(t, err, "create: boom")

	err = NewGame(&countingApp{renderErr: boom}, 320, 200).Update()
	assert.EqualError(t, err, "render: boom")
}

func TestGameCloseDisposesOnce(t *testing.T) {
	boom := errors.New("boom")
	app := &countingApp{disposeErr: boom}
	g := NewGame(app, 320, 200)

	assert.ErrorIs(t, g.Close(), boom)
	assert.NoError(t, g.Close())
	assert.Equal(t, 1, app.disposes)
	assert.Equal(t, 0, app.creates)

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, 0, app.renders)
}
