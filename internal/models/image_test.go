package models

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterkit/internal/processing/filters"
	"rasterkit/internal/raster"
)

type failingFilter struct{}

func (failingFilter) Name() string { return "failing" }

func (failingFilter) Apply(g *raster.Grid) error {
	g.Fill(0)
	return errors.New("boom")
}

func rgbBuffer(w, h int) []byte {
	buf := make([]byte, w*h*3)
	for i := range buf {
		buf[i] = byte(i % 256)
	}
	return buf
}

func TestEmptyImage(t *testing.T) {
	im := NewImage()

	assert.Nil(t, im.Current())
	_, err := im.Apply(filters.NewNegateFilter())
	assert.ErrorIs(t, err, ErrNoImage)
	assert.ErrorIs(t, im.SaveOriginal(), ErrNoImage)
	assert.ErrorIs(t, im.RestoreOriginal(), ErrNoImage)
	_, err = im.Sample(0, 0, 0)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestSample(t *testing.T) {
	im := NewImage()
	buf := rgbBuffer(3, 2)
	require.NoError(t, im.LoadInterleaved(buf, 3, 2))

	v, err := im.Sample(2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(buf[(1*3+2)*3+1]), v)

	_, err = im.Sample(3, 0, 0)
	assert.ErrorIs(t, err, raster.ErrInvalidDimensions)
}

func TestSaveOriginalAfterChannelChange(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(2, 2), 2, 2))

	gray, err := filters.NewGrayscaleConverter(filters.Rec601)
	require.NoError(t, err)
	_, err = im.Apply(gray)
	require.NoError(t, err)
	require.NoError(t, im.SaveOriginal())

	_, err = im.Apply(filters.NewNegateFilter())
	require.NoError(t, err)
	require.NoError(t, im.RestoreOriginal())

	assert.Equal(t, 1, im.Current().Channels())
	assert.True(t, im.Original().Equal(im.Current()))
}

func TestLoadApplyRestore(t *testing.T) {
	im := NewImage()
	buf := rgbBuffer(4, 3)
	require.NoError(t, im.LoadInterleaved(buf, 4, 3))

	result, err := im.Apply(filters.NewNegateFilter())
	require.NoError(t, err)
	assert.Equal(t, "negate_filter", result.Filter)
	assert.Equal(t, 255-float64(buf[0]), im.Current().At(0, 0, 0))

	require.NoError(t, im.RestoreOriginal())
	assert.Equal(t, buf, im.Current().Interleaved())
	assert.Empty(t, im.History())
}

func TestSaveOriginalMovesRestorePoint(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(4, 4), 4, 4))

	_, err := im.Apply(filters.NewNegateFilter())
	require.NoError(t, err)
	require.NoError(t, im.SaveOriginal())
	saved := im.Current()

	_, err = im.Apply(filters.NewNegateFilter())
	require.NoError(t, err)
	require.NoError(t, im.RestoreOriginal())

	assert.True(t, saved.Equal(im.Current()))
}

func TestFailedApplyLeavesImageUntouched(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(4, 4), 4, 4))
	before := im.Current()

	_, err := im.Apply(failingFilter{})
	require.Error(t, err)
	assert.True(t, before.Equal(im.Current()))
}

func TestCurrentIsACopy(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(2, 2), 2, 2))

	c := im.Current()
	c.Fill(7)
	assert.NotEqual(t, 7.0, im.Current().At(0, 0, 0))
}

func TestHistoryIsBounded(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(2, 2), 2, 2))

	for i := 0; i < 15; i++ {
		_, err := im.Apply(filters.NewNegateFilter())
		require.NoError(t, err)
	}
	assert.Len(t, im.History(), 10)
}

func TestConcurrentReadersDuringApply(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.LoadInterleaved(rgbBuffer(16, 16), 16, 16))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				g := im.Current()
				assert.Equal(t, 16, g.Width())
			}
		}()
	}
	for j := 0; j < 10; j++ {
		_, err := im.Apply(filters.NewNegateFilter())
		require.NoError(t, err)
	}
	wg.Wait()
}
