package seamcarve

import (
	"fmt"

	"github.com/pkg/errors"
)

// Direction tells which way a seam runs across the grid.
type Direction int

const (
	// Vertical seams run from the top row to the bottom row and hold one column per row.
	Vertical Direction = iota
	// Horizontal seams run from the left column to the right column and hold one row per column.
	Horizontal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Seam is a connected path of pixels crossing the grid.
// For a vertical seam Path[y] is the column removed from row y,
// for a horizontal seam Path[x] is the row removed from column x.
type Seam struct {
	Direction Direction
	Path      []int
	Energy    int
}

// Validate checks the seam against a grid of the given size.
func (s Seam) Validate(width, height int) error {
	length, breadth := s.axes(width, height)
	if len(s.Path) != length {
		return errors.Wrapf(ErrDimensionMismatch, "%s seam of length %d on a %dx%d grid",
			s.Direction, len(s.Path), width, height)
	}
	for i, c := range s.Path {
		if c < 0 || c >= breadth {
			return errors.Wrapf(ErrInvalidSeam, "coordinate %d at position %d is outside [0, %d)", c, i, breadth)
		}
		if i > 0 {
			if d := c - s.Path[i-1]; d < -1 || d > 1 {
				return errors.Wrapf(ErrInvalidSeam, "step from %d to %d at position %d is not connected", s.Path[i-1], c, i)
			}
		}
	}
	return nil
}

// axes returns the seam length and the range of its coordinates.
func (s Seam) axes(width, height int) (length, breadth int) {
	if s.Direction == Horizontal {
		return width, height
	}
	return height, width
}

// DPTable is the cumulative minimum energy table used to trace a seam.
// Rows follow the seam (one per step along it), columns are the seam coordinates.
type DPTable struct {
	length  int
	breadth int
	table   []int
}

// NewDPTable allocates a table for a seam of the given length
// whose coordinates range over [0, breadth).
func NewDPTable(length, breadth int) *DPTable {
	return &DPTable{
		length:  length,
		breadth: breadth,
		table:   make([]int, length*breadth),
	}
}

// get returns the cumulative energy at step i and coordinate j.
func (dpt *DPTable) get(i, j int) int {
	return dpt.table[i*dpt.breadth+j]
}

// set stores the cumulative energy at step i and coordinate j.
func (dpt *DPTable) set(i, j, v int) {
	dpt.table[i*dpt.breadth+j] = v
}

// ComputeSeams fills the table with the cumulative minimum energy M of all possible
// connected seams ending in each cell:
//   - the first step holds the pixel energies,
//   - every following cell adds the minimum of its (up to) three neighbours from the
//     previous step. Neighbours beyond the grid edges are absent, they do not wrap.
func (dpt *DPTable) ComputeSeams(energy func(i, j int) int) {
	for j := 0; j < dpt.breadth; j++ {
		dpt.set(0, j, energy(0, j))
	}
	for i := 1; i < dpt.length; i++ {
		for j := 0; j < dpt.breadth; j++ {
			min := dpt.get(i-1, j)
			if j > 0 && dpt.get(i-1, j-1) < min {
				min = dpt.get(i-1, j-1)
			}
			if j < dpt.breadth-1 && dpt.get(i-1, j+1) < min {
				min = dpt.get(i-1, j+1)
			}
			dpt.set(i, j, energy(i, j)+min)
		}
	}
}

// FindLowestEnergySeam picks the cheapest cell of the last step, preferring the lowest
// coordinate on ties, and walks back to the first step. At each step it moves to the
// cheapest parent, preferring straight, then the lower, then the higher coordinate.
// It returns the path and its total energy.
func (dpt *DPTable) FindLowestEnergySeam() ([]int, int) {
	last := dpt.length - 1
	px := 0
	for j := 1; j < dpt.breadth; j++ {
		if dpt.get(last, j) < dpt.get(last, px) {
			px = j
		}
	}
	total := dpt.get(last, px)

	path := make([]int, dpt.length)
	path[last] = px
	for i := last - 1; i >= 0; i-- {
		next := px
		if px > 0 && dpt.get(i, px-1) < dpt.get(i, next) {
			next = px - 1
		}
		if px < dpt.breadth-1 && dpt.get(i, px+1) < dpt.get(i, next) {
			next = px + 1
		}
		px = next
		path[i] = px
	}
	return path, total
}

// FindSeam returns the globally minimal seam of the energy map in the given direction.
// The horizontal search is the transpose of the vertical one.
func FindSeam(em *EnergyMap, dir Direction) (Seam, error) {
	if em == nil || em.Width == 0 || em.Height == 0 {
		return Seam{}, errors.Wrap(ErrDegenerateGrid, "cannot search a seam in an empty grid")
	}

	var (
		dpt    *DPTable
		energy func(i, j int) int
	)
	switch dir {
	case Vertical:
		dpt = NewDPTable(em.Height, em.Width)
		energy = func(i, j int) int { return em.At(j, i) }
	case Horizontal:
		dpt = NewDPTable(em.Width, em.Height)
		energy = func(i, j int) int { return em.At(i, j) }
	default:
		return Seam{}, errors.Errorf("unknown seam direction %d", dir)
	}

	dpt.ComputeSeams(energy)
	path, total := dpt.FindLowestEnergySeam()

	return Seam{Direction: dir, Path: path, Energy: total}, nil
}

// FindVerticalSeam computes the energy of the grid and returns its cheapest vertical seam.
func FindVerticalSeam(g *Grid) (Seam, error) {
	return findSeam(g, Vertical)
}

// FindHorizontalSeam computes the energy of the grid and returns its cheapest horizontal seam.
func FindHorizontalSeam(g *Grid) (Seam, error) {
	return findSeam(g, Horizontal)
}

func findSeam(g *Grid, dir Direction) (Seam, error) {
	em, err := ComputeEnergy(g)
	if err != nil {
		return Seam{}, err
	}
	return FindSeam(em, dir)
}
