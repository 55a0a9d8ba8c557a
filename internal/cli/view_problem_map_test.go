package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDriver wraps teatest.Driver with access to the map browser's state.
type mapDriver struct {
	*teatest.Driver
}

func newMapDriver(t *testing.T, app *App, w *domain.Workshop) *mapDriver {
	t.Helper()
	d := teatest.New(t, newProblemMapModel(app.Problems, w), teatest.WithSize(100, 40))
	d.DrainInit()
	return &mapDriver{Driver: d}
}

func (d *mapDriver) model() *problemMapModel {
	return d.Model.(*problemMapModel)
}

func (d *mapDriver) selected() *domain.Problem {
	return d.model().selected()
}

func seedMap(t *testing.T, app *App) *domain.Workshop {
	t.Helper()
	w := seedWorkshop(t, app, "Browse")
	ctx := context.Background()
	_, err := app.Problems.AddProblem(ctx, w.ID, "Both matter", 8, 8, "")
	require.NoError(t, err)
	_, err = app.Problems.AddProblem(ctx, w.ID, "Urgent fix", 9, 2, "")
	require.NoError(t, err)
	_, err = app.Problems.AddProblem(ctx, w.ID, "Nice to have", 2, 2, "")
	require.NoError(t, err)
	return w
}

func TestProblemMap_RendersQuadrants(t *testing.T) {
	app := testApp(t)
	d := newMapDriver(t, app, seedMap(t, app))

	d.RequireViewContains("Browse", "Both matter", "Urgent fix", "Nice to have")
	for _, q := range domain.Quadrants {
		d.RequireViewContains(q.Label())
	}
	require.Len(t, d.model().rows, 3)
	assert.Equal(t, "Both matter", d.selected().Description, "rows follow quadrant order")
}

func TestProblemMap_Navigation(t *testing.T) {
	app := testApp(t)
	d := newMapDriver(t, app, seedMap(t, app))

	d.PressUp()
	assert.Equal(t, 0, d.model().cursor)

	d.PressDown()
	assert.Equal(t, "Urgent fix", d.selected().Description)
	d.PressKey('j')
	d.PressKey('j')
	assert.Equal(t, 2, d.model().cursor, "cursor stops at the last row")

	d.PressKey('k')
	assert.Equal(t, 1, d.model().cursor)
}

func TestProblemMap_ToggleAndReset(t *testing.T) {
	app := testApp(t)
	d := newMapDriver(t, app, seedMap(t, app))

	require.False(t, d.selected().IsFocalArea)
	d.PressKey('f')
	assert.True(t, d.selected().IsFocalArea)
	assert.Equal(t, domain.FocalManual, d.selected().FocalSource)

	stored, err := app.Problems.GetByID(context.Background(), d.selected().ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFocalArea)

	d.PressSpace()
	assert.False(t, d.selected().IsFocalArea)

	d.PressKey('r')
	assert.False(t, d.selected().IsFocalArea)
	assert.Equal(t, domain.FocalDerived, d.selected().FocalSource)
	assert.Contains(t, d.model().status, "Both matter")
}

func TestProblemMap_EmptyWorkshop(t *testing.T) {
	app := testApp(t)
	w := seedWorkshop(t, app, "Empty")
	d := newMapDriver(t, app, w)

	d.RequireViewContains("No problems recorded")
	d.PressKey('f')
	assert.Empty(t, d.model().status)
}

func TestProblemMap_Quit(t *testing.T) {
	for _, quit := range []func(*mapDriver){
		func(d *mapDriver) { d.PressKey('q') },
		func(d *mapDriver) { d.PressEsc() },
		func(d *mapDriver) { d.PressCtrlC() },
	} {
		app := testApp(t)
		d := newMapDriver(t, app, seedMap(t, app))
		quit(d)
		assert.True(t, d.Quitting)
	}
}
