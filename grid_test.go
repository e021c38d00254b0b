package seamcarve

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGrid builds a grid filled by fn.
func newTestGrid(t testing.TB, width, height int, fn func(x, y int) Pixel) *Grid {
	t.Helper()

	g, err := NewGrid(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, fn(x, y))
		}
	}
	return g
}

// randomGrid builds a grid with reproducible random colors.
func randomGrid(t testing.TB, width, height int, seed int64) *Grid {
	rnd := rand.New(rand.NewSource(seed))
	return newTestGrid(t, width, height, func(x, y int) Pixel {
		return Pixel{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256))}
	})
}

// indexGrid encodes the row-major index of every pixel in its color.
func indexGrid(t testing.TB, width, height int) *Grid {
	return newTestGrid(t, width, height, func(x, y int) Pixel {
		i := y*width + x
		return Pixel{R: uint8(i % 256), G: uint8(i / 256)}
	})
}

func uniform(p Pixel) func(x, y int) Pixel {
	return func(x, y int) Pixel { return p }
}

func TestGrid_NewGridRejectsEmptySize(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {0, 0}, {-3, 2}} {
		_, err := NewGrid(size[0], size[1])
		assert.ErrorIs(t, err, ErrDegenerateGrid, "size %v", size)
	}
}

func TestGrid_NewGridRejectsOversizedGrid(t *testing.T) {
	_, err := NewGrid(1<<20, 1<<20)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestGrid_SetAndAt(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, Pixel{}, g.At(2, 1))

	g.Set(2, 1, Pixel{R: 1, G: 2, B: 3})
	assert.Equal(t, Pixel{R: 1, G: 2, B: 3}, g.At(2, 1))
	assert.Equal(t, Pixel{R: 1, G: 2, B: 3}, g.pix[5])
}

func TestGrid_FromImageDropsAlphaAndOffset(t *testing.T) {
	img := image.NewNRGBA(image.Rect(-1, -1, 2, 1))
	img.SetNRGBA(-1, -1, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 0xff})

	g, err := FromImage(img)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, Pixel{R: 10, G: 20, B: 30}, g.At(0, 0))
	assert.Equal(t, Pixel{R: 40, G: 50, B: 60}, g.At(2, 1))
}

func TestGrid_FromImageRejectsEmptyImage(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 4)))
	assert.ErrorIs(t, err, ErrDegenerateGrid)
}

func TestGrid_ImageRoundTrip(t *testing.T) {
	g := randomGrid(t, 7, 4, 1)

	back, err := FromImage(g.Image())
	require.NoError(t, err)

	if diff := cmp.Diff(g.pix, back.pix); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint8(0xff), g.Image().Pix[3])
}

func TestGrid_Transpose(t *testing.T) {
	g := indexGrid(t, 3, 2)
	tr := g.Transpose()

	assert.Equal(t, 2, tr.Width())
	assert.Equal(t, 3, tr.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, g.At(x, y), tr.At(y, x))
		}
	}
	if diff := cmp.Diff(g.pix, tr.Transpose().pix); diff != "" {
		t.Errorf("double transpose mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := indexGrid(t, 2, 2)
	c := g.Clone()
	c.Set(0, 0, Pixel{R: 99})

	assert.Equal(t, Pixel{}, g.At(0, 0))
	assert.Equal(t, Pixel{R: 99}, c.At(0, 0))
}
