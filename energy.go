package seamcarve

import "github.com/pkg/errors"

// EnergyMap holds one energy value per pixel of the grid it was computed from.
// It is only valid until that grid is carved.
type EnergyMap struct {
	Width  int
	Height int
	Values []int
}

// At returns the energy of the pixel at column x and row y.
func (em *EnergyMap) At(x, y int) int {
	return em.Values[y*em.Width+x]
}

// Energy computes the dual gradient energy of the pixel at (x, y):
// the squared colour difference between its horizontal neighbours
// plus the squared colour difference between its vertical neighbours.
// Neighbours wrap around the opposite edge of the grid.
func Energy(g *Grid, x, y int) int {
	left, right := wrap(x-1, g.width), wrap(x+1, g.width)
	up, down := wrap(y-1, g.height), wrap(y+1, g.height)

	return gradient(g.At(right, y), g.At(left, y)) + gradient(g.At(x, down), g.At(x, up))
}

// ComputeEnergy builds the energy map of the whole grid.
func ComputeEnergy(g *Grid) (*EnergyMap, error) {
	if g == nil || g.width == 0 || g.height == 0 {
		return nil, errors.Wrap(ErrDegenerateGrid, "cannot compute the energy of an empty grid")
	}
	em := &EnergyMap{
		Width:  g.width,
		Height: g.height,
		Values: make([]int, g.width*g.height),
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			em.Values[y*g.width+x] = Energy(g, x, y)
		}
	}
	return em, nil
}

func gradient(a, b Pixel) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// wrap maps an index one step outside [0, n) back onto the opposite edge.
func wrap(i, n int) int {
	switch {
	case i < 0:
		return n - 1
	case i >= n:
		return 0
	}
	return i
}
