package seamcarve

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/ppm"
	"github.com/seamcarve/seamcarve/utils"
	"golang.org/x/image/bmp"
)

// SupportedExtensions lists the file extensions the carver can read and write.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".ppm"}

// decodeImage decodes any registered image format, including plain text PPM.
// EXIF orientation is applied for JPEG sources.
func decodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the source image")
	}
	return img, nil
}

// sourceConfig decodes the dimensions of an image file. When the header is not
// recognized, the content type is sniffed to report non-image files clearly.
func sourceConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, errors.Wrap(err, "could not open the source file")
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		if ctype, cerr := utils.DetectContentType(path); cerr == nil && !strings.Contains(ctype.(string), "image") {
			return image.Config{}, errors.Errorf("%s is not an image file", filepath.Base(path))
		}
		return image.Config{}, errors.Wrapf(err, "could not read the size of %s", filepath.Base(path))
	}
	return cfg, nil
}

// encodeImage encodes the image by extension. Destinations without
// an extension (e.g. a pipe) receive the plain text PPM encoding.
func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case "", ".ppm":
		return ppm.Encode(w, img)
	case ".jpg", ".jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(100))
	case ".png":
		return imaging.Encode(w, img, imaging.PNG)
	case ".gif":
		return imaging.Encode(w, img, imaging.GIF)
	case ".tif", ".tiff":
		return imaging.Encode(w, img, imaging.TIFF)
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return errors.Errorf("unsupported image format %q", ext)
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string) bool {
	for _, ex := range SupportedExtensions {
		if ex == strings.ToLower(ext) {
			return true
		}
	}
	return false
}
