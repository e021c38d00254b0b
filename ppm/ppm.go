// Package ppm implements a decoder and an encoder for the plain text
// Portable PixMap format (magic number P3) with a maximum channel value of 255.
//
// Importing the package registers the decoder with the image package,
// so that image.Decode recognizes P3 files.
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

const (
	magic     = "P3"
	maxValue  = 255
	// maxPixels bounds the declared image size before any pixel memory is allocated.
	maxPixels = 1 << 28
)

// ErrFormat is returned for input which is not a valid P3 image.
var ErrFormat = errors.New("ppm: invalid format")

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

// reader splits the input into whitespace separated tokens, skipping # comments.
type reader struct {
	r *bufio.Reader
}

// token returns the next token or io.EOF when the input is exhausted.
func (rd *reader) token() (string, error) {
	var buf []byte
	for {
		c, err := rd.r.ReadByte()
		if err == io.EOF {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		switch {
		case c == '#':
			if _, err := rd.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
			if len(buf) > 0 {
				return string(buf), nil
			}
		case unicode.IsSpace(rune(c)):
			if len(buf) > 0 {
				return string(buf), nil
			}
		default:
			buf = append(buf, c)
		}
	}
}

// number reads the next token as a non-negative integer.
func (rd *reader) number(what string) (int, error) {
	tok, err := rd.token()
	if err == io.EOF {
		return 0, errors.Wrapf(ErrFormat, "missing %s", what)
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "%s %q is not an integer", what, tok)
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrFormat, "%s %d is negative", what, n)
	}
	return n, nil
}

func readHeader(rd *reader) (image.Config, error) {
	tok, err := rd.token()
	if err != nil && err != io.EOF {
		return image.Config{}, err
	}
	if len(tok) != 2 || (tok[0] != 'P' && tok[0] != 'p') || tok[1] != '3' {
		return image.Config{}, errors.Wrapf(ErrFormat, "type is %q instead of %s", tok, magic)
	}
	width, err := rd.number("width")
	if err != nil {
		return image.Config{}, err
	}
	height, err := rd.number("height")
	if err != nil {
		return image.Config{}, err
	}
	if width == 0 || height == 0 {
		return image.Config{}, errors.Wrapf(ErrFormat, "empty image %dx%d", width, height)
	}
	if width > maxPixels/height {
		return image.Config{}, errors.Wrapf(ErrFormat, "image %dx%d is too large", width, height)
	}
	maxVal, err := rd.number("maximum color value")
	if err != nil {
		return image.Config{}, err
	}
	if maxVal != maxValue {
		return image.Config{}, errors.Wrapf(ErrFormat, "maximum color value is %d instead of %d", maxVal, maxValue)
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      width,
		Height:     height,
	}, nil
}

// DecodeConfig returns the dimensions of a P3 image without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	return readHeader(&reader{r: bufio.NewReader(r)})
}

// Decode reads a P3 image. Every channel value must lie within [0, 255]
// and the number of values must match the declared dimensions exactly.
func Decode(r io.Reader) (image.Image, error) {
	rd := &reader{r: bufio.NewReader(r)}
	cfg, err := readHeader(rd)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for i := 0; i < cfg.Width*cfg.Height; i++ {
		for c := 0; c < 3; c++ {
			tok, err := rd.token()
			if err == io.EOF {
				return nil, errors.Wrapf(ErrFormat, "not enough color values: pixel %d of %d", i, cfg.Width*cfg.Height)
			}
			if err != nil {
				return nil, err
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "color value %q is not an integer", tok)
			}
			if v < 0 || v > maxValue {
				return nil, errors.Wrapf(ErrFormat, "invalid color value %d", v)
			}
			img.Pix[i*4+c] = uint8(v)
		}
		img.Pix[i*4+3] = 0xff
	}

	if _, err := rd.token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errors.Wrap(ErrFormat, "too many color values")
	}
	return img, nil
}

// Encode writes the image as P3, one image row per line.
// The alpha channel is ignored.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, b.Dx(), b.Dy(), maxValue); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if x > b.Min.X {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d", c.R, c.G, c.B); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
