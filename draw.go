package seamcarve

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// DefaultSeamColor is used when no seam colour is provided.
const DefaultSeamColor = "#ff0000"

// DrawSeams visualizes a carving run: it returns a copy of the source grid
// where every pixel removed during the run is painted with the given hex colour.
func DrawSeams(src *Grid, report *Report, hex string) (*image.NRGBA, error) {
	if src.width != report.Width || src.height != report.Height {
		return nil, errors.Wrapf(ErrDimensionMismatch, "report covers a %dx%d source, grid is %dx%d",
			report.Width, report.Height, src.width, src.height)
	}
	col, err := seamColor(hex)
	if err != nil {
		return nil, err
	}

	dst := src.Image()
	for i, removed := range report.Removed {
		if removed {
			dst.SetNRGBA(i%src.width, i/src.width, col)
		}
	}
	return dst, nil
}

// seamColor parses a hex colour like "#f00" or "#ff0000".
func seamColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		hex = DefaultSeamColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid seam color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
