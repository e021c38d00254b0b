package seamcarve

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
)

// Session tracks the progress of one carving run.
type Session struct {
	CurrentWidth  int
	CurrentHeight int
	TargetWidth   int
	TargetHeight  int
}

// NewSession validates the source and target dimensions and returns the initial session.
func NewSession(width, height, targetWidth, targetHeight int) (Session, error) {
	if width <= 0 || height <= 0 {
		return Session{}, errors.Wrapf(ErrDegenerateGrid, "source size %dx%d", width, height)
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return Session{}, errors.Wrapf(ErrDimensionMismatch, "target size %dx%d must be positive", targetWidth, targetHeight)
	}
	if targetWidth > width || targetHeight > height {
		return Session{}, errors.Wrapf(ErrDimensionMismatch, "target size %dx%d exceeds source size %dx%d",
			targetWidth, targetHeight, width, height)
	}
	return Session{
		CurrentWidth:  width,
		CurrentHeight: height,
		TargetWidth:   targetWidth,
		TargetHeight:  targetHeight,
	}, nil
}

// Done reports whether both target dimensions have been reached.
func (s Session) Done() bool {
	return s.CurrentWidth == s.TargetWidth && s.CurrentHeight == s.TargetHeight
}

// Step runs one iteration of the carving loop. If the width must still shrink, a vertical
// seam is removed first. Then, if the height must still shrink, a horizontal seam is
// removed from the resulting grid. The removed seams are returned in that order.
func Step(g *Grid, s Session) (*Grid, Session, []Seam, error) {
	if g.width != s.CurrentWidth || g.height != s.CurrentHeight {
		return nil, s, nil, errors.Wrapf(ErrDimensionMismatch, "grid is %dx%d, session expects %dx%d",
			g.width, g.height, s.CurrentWidth, s.CurrentHeight)
	}

	var seams []Seam
	if s.CurrentWidth > s.TargetWidth {
		seam, err := FindVerticalSeam(g)
		if err != nil {
			return nil, s, nil, err
		}
		if g, err = RemoveSeam(g, seam); err != nil {
			return nil, s, nil, err
		}
		s.CurrentWidth--
		seams = append(seams, seam)
	}
	if s.CurrentHeight > s.TargetHeight {
		seam, err := FindHorizontalSeam(g)
		if err != nil {
			return nil, s, nil, err
		}
		if g, err = RemoveSeam(g, seam); err != nil {
			return nil, s, nil, err
		}
		s.CurrentHeight--
		seams = append(seams, seam)
	}
	return g, s, seams, nil
}

// Processor options
type Processor struct {
	// NewWidth and NewHeight are the target dimensions. Zero keeps the source size.
	NewWidth  int
	NewHeight int
	// SeamColor is the hex colour used to paint removed pixels on the seam map.
	SeamColor string
	Spinner   *utils.Spinner
	// Debug writes a seam map next to the output image.
	Debug   bool
	Verbose bool
}

// Report describes a finished carving run.
type Report struct {
	Width  int
	Height int
	Seams  []Seam
	// Removed marks, in source coordinates, every pixel carved away.
	Removed []bool
}

// Target resolves the target dimensions for a source of the given size.
func (p *Processor) Target(width, height int) (int, int) {
	tw, th := p.NewWidth, p.NewHeight
	if tw == 0 {
		tw = width
	}
	if th == 0 {
		th = height
	}
	return tw, th
}

// Carve shrinks the grid until it reaches the processor's target size.
func (p *Processor) Carve(g *Grid) (*Grid, *Report, error) {
	tw, th := p.Target(g.width, g.height)
	s, err := NewSession(g.width, g.height, tw, th)
	if err != nil {
		return nil, nil, err
	}

	// origin keeps the source index of every surviving pixel.
	origin := make([]int, g.width*g.height)
	for i := range origin {
		origin[i] = i
	}
	report := &Report{Width: g.width, Height: g.height}

	for !s.Done() {
		var seams []Seam
		prev := s
		g, s, seams, err = Step(g, s)
		if err != nil {
			return nil, nil, err
		}
		w, h := prev.CurrentWidth, prev.CurrentHeight
		for _, seam := range seams {
			origin = removeCells(origin, w, h, seam)
			if seam.Direction == Vertical {
				w--
			} else {
				h--
			}
			if p.Verbose {
				log.Printf("%s seam removed, energy %d, size %dx%d", seam.Direction, seam.Energy, w, h)
			}
		}
		report.Seams = append(report.Seams, seams...)
	}

	report.Removed = make([]bool, report.Width*report.Height)
	for i := range report.Removed {
		report.Removed[i] = true
	}
	for _, i := range origin {
		report.Removed[i] = false
	}
	return g, report, nil
}

// Process decodes the source image, carves it and encodes the result into w.
// The output format follows the destination file extension, other writers receive PPM.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := decodeImage(r)
	if err != nil {
		return err
	}
	g, err := FromImage(src)
	if err != nil {
		return err
	}

	res, report, err := p.Carve(g)
	if err != nil {
		return err
	}

	var ext string
	if f, ok := w.(*os.File); ok {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	if err := encodeImage(w, ext, res.Image()); err != nil {
		return err
	}

	if p.Verbose {
		sum := report.Summary()
		log.Printf("removed %d vertical seams (mean energy %.1f) and %d horizontal seams (mean energy %.1f)",
			sum.Vertical.Count, sum.Vertical.Mean, sum.Horizontal.Count, sum.Horizontal.Mean)
	}

	if p.Debug {
		f, ok := w.(*os.File)
		if !ok || f == os.Stdout {
			return nil
		}
		return p.writeSeamMap(seamMapPath(f.Name()), g, report)
	}
	return nil
}

// writeSeamMap paints the removed pixels over the source grid and saves it as PNG.
func (p *Processor) writeSeamMap(path string, src *Grid, report *Report) error {
	img, err := DrawSeams(src, report, p.SeamColor)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create the seam map")
	}
	defer out.Close()

	return encodeImage(out, ".png", img)
}

// seamMapPath derives the seam map name from the output file name.
func seamMapPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_seams.png"
}
