package seamcarve

import "github.com/pkg/errors"

// RemoveSeam returns a new grid with the seam's pixels deleted: one column less
// for a vertical seam, one row less for a horizontal one. The surviving pixels keep
// their relative order and the source grid is left untouched.
func RemoveSeam(g *Grid, s Seam) (*Grid, error) {
	if err := s.Validate(g.width, g.height); err != nil {
		return nil, err
	}
	width, height := g.width, g.height
	if s.Direction == Horizontal {
		height--
	} else {
		width--
	}
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrDegenerateGrid, "removing a %s seam from a %dx%d grid",
			s.Direction, g.width, g.height)
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    removeCells(g.pix, g.width, g.height, s),
	}, nil
}

// removeCells drops one cell per row (vertical seam) or per column (horizontal seam)
// from a row-major buffer of width*height cells. The seam must be valid for that size.
func removeCells[T any](cells []T, width, height int, s Seam) []T {
	if s.Direction == Horizontal {
		out := make([]T, width*(height-1))
		for x := 0; x < width; x++ {
			cut := s.Path[x]
			for y := 0; y < cut; y++ {
				out[y*width+x] = cells[y*width+x]
			}
			for y := cut + 1; y < height; y++ {
				out[(y-1)*width+x] = cells[y*width+x]
			}
		}
		return out
	}

	out := make([]T, 0, (width-1)*height)
	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		cut := s.Path[y]
		out = append(out, row[:cut]...)
		out = append(out, row[cut+1:]...)
	}
	return out
}
