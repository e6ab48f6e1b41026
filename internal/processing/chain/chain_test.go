package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterkit/internal/logger"
	"rasterkit/internal/processing/filters"
	"rasterkit/internal/raster"
)

type recordingFilter struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingFilter) Name() string { return r.name }

func (r recordingFilter) Apply(g *raster.Grid) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func gradient(t *testing.T) *raster.Grid {
	g, err := raster.New(10, 10, 1)
	require.NoError(t, err)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.Set(x, y, 0, float64(x*25))
		}
	}
	return g
}

func TestExecuteRunsStepsInOrder(t *testing.T) {
	var calls []string
	c := New(nil,
		recordingFilter{name: "a", calls: &calls},
		recordingFilter{name: "b", calls: &calls},
	)
	c.AddStep(recordingFilter{name: "c", calls: &calls})

	require.NoError(t, c.Execute(context.Background(), gradient(t)))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestExecuteStopsAtFailingStep(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	c := New(logger.NopLogger{},
		recordingFilter{name: "a", calls: &calls},
		recordingFilter{name: "b", calls: &calls, err: boom},
		recordingFilter{name: "c", calls: &calls},
	)

	err := c.Execute(context.Background(), gradient(t))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step b failed")
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestExecuteHonoursCancellation(t *testing.T) {
	var calls []string
	c := New(nil, recordingFilter{name: "a", calls: &calls})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Execute(ctx, gradient(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestDoubleNegateRestoresGrid(t *testing.T) {
	g := gradient(t)
	want := g.Clone()

	c := New(nil, filters.NewNegateFilter(), filters.NewNegateFilter())
	require.NoError(t, c.Execute(context.Background(), g))

	assert.True(t, want.Equal(g))
}

func TestStepEditing(t *testing.T) {
	var calls []string
	c := New(nil, recordingFilter{name: "a", calls: &calls})

	require.NoError(t, c.InsertStep(0, recordingFilter{name: "first", calls: &calls}))
	require.NoError(t, c.InsertStep(2, recordingFilter{name: "last", calls: &calls}))
	assert.Equal(t, []string{"first", "a", "last"}, c.StepNames())

	require.NoError(t, c.RemoveStep(1))
	assert.Equal(t, 2, c.StepCount())
	assert.Equal(t, []string{"first", "last"}, c.StepNames())

	assert.Error(t, c.InsertStep(5, recordingFilter{name: "x", calls: &calls}))
	assert.Error(t, c.RemoveStep(-1))
}
