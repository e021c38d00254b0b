package seamcarve

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// maxGridPixels caps the number of pixels a single grid may hold.
const maxGridPixels = 1 << 28

// Pixel is a single opaque RGB sample.
type Pixel struct {
	R, G, B uint8
}

// Grid is a rectangular, row-major arrangement of pixels.
// A grid never changes its dimensions: carving produces a new grid.
type Grid struct {
	width  int
	height int
	pix    []Pixel
}

// NewGrid allocates a black grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "cannot create a %dx%d grid", width, height)
	}
	if width > maxGridPixels/height {
		return nil, errors.Wrapf(ErrAllocation, "%dx%d exceeds the maximum of %d pixels", width, height, maxGridPixels)
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}, nil
}

// FromImage converts any image into a grid. The alpha channel is dropped.
func FromImage(img image.Image) (*Grid, error) {
	src := imaging.Clone(img)
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	g, err := NewGrid(dx, dy)
	if err != nil {
		return nil, err
	}
	for i := range g.pix {
		g.pix[i] = Pixel{
			R: src.Pix[i*4+0],
			G: src.Pix[i*4+1],
			B: src.Pix[i*4+2],
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the pixel at column x and row y.
func (g *Grid) At(x, y int) Pixel {
	return g.pix[y*g.width+x]
}

// Set replaces the pixel at column x and row y.
func (g *Grid) Set(x, y int, p Pixel) {
	g.pix[y*g.width+x] = p
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	pix := make([]Pixel, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// Transpose returns a new grid where rows become columns.
func (g *Grid) Transpose() *Grid {
	dst := &Grid{width: g.height, height: g.width, pix: make([]Pixel, len(g.pix))}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			dst.pix[x*dst.width+y] = g.pix[y*g.width+x]
		}
	}
	return dst
}

// Image converts the grid into a fully opaque *image.NRGBA.
func (g *Grid) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for i, p := range g.pix {
		dst.Pix[i*4+0] = p.R
		dst.Pix[i*4+1] = p.G
		dst.Pix[i*4+2] = p.B
		dst.Pix[i*4+3] = 0xff
	}
	return dst
}
