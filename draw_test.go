package seamcarve

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraw_PaintsRemovedPixels(t *testing.T) {
	g := newTestGrid(t, 4, 4, uniform(Pixel{R: 10, G: 20, B: 30}))
	p := &Processor{NewWidth: 3}

	_, report, err := p.Carve(g)
	require.NoError(t, err)

	img, err := DrawSeams(g, report, "#00ff00")
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, img.NRGBAAt(0, y))
		assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, img.NRGBAAt(1, y))
	}
}

func TestDraw_DefaultColor(t *testing.T) {
	g := newTestGrid(t, 2, 1, uniform(Pixel{}))
	report := &Report{Width: 2, Height: 1, Removed: []bool{false, true}}

	img, err := DrawSeams(g, report, "")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, img.NRGBAAt(1, 0))
}

func TestDraw_ShortHexColor(t *testing.T) {
	col, err := seamColor("#00f")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, col)
}

func TestDraw_RejectsInvalidInput(t *testing.T) {
	g := newTestGrid(t, 2, 2, uniform(Pixel{}))

	_, err := DrawSeams(g, &Report{Width: 2, Height: 2, Removed: make([]bool, 4)}, "red")
	assert.Error(t, err)

	_, err = DrawSeams(g, &Report{Width: 3, Height: 2, Removed: make([]bool, 6)}, "#fff")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
