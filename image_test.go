package seamcarve

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 80), B: 7, A: 0xff})
		}
	}
	return img
}

func TestImage_EncodeDecodeLosslessFormats(t *testing.T) {
	for _, ext := range []string{"", ".ppm", ".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encodeImage(&buf, ext, testImage()))

			img, err := decodeImage(&buf)
			require.NoError(t, err)

			g, err := FromImage(img)
			require.NoError(t, err)
			want, err := FromImage(testImage())
			require.NoError(t, err)
			assert.Equal(t, want.pix, g.pix)
		})
	}
}

func TestImage_EncodeLossyFormats(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg", ".gif"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encodeImage(&buf, ext, testImage()))

			img, err := decodeImage(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())
		})
	}
}

func TestImage_EncodeRejectsUnknownFormat(t *testing.T) {
	err := encodeImage(&bytes.Buffer{}, ".webp", testImage())
	assert.Error(t, err)
}

func TestImage_SourceConfig(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sample.png", "sample.ppm"} {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, encodeImage(f, filepath.Ext(name), testImage()))
		require.NoError(t, f.Close())

		cfg, err := sourceConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Width, name)
		assert.Equal(t, 3, cfg.Height, name)
	}

	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("just some text"), 0644))
	_, err := sourceConfig(text)
	assert.Error(t, err)
}

func TestImage_IsValidExtension(t *testing.T) {
	assert.True(t, isValidExtension(".ppm"))
	assert.True(t, isValidExtension(".JPG"))
	assert.False(t, isValidExtension(".txt"))
	assert.False(t, isValidExtension(""))
}

func TestImage_SourceConfigReadsPPMWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "download-1234")
	require.NoError(t, os.WriteFile(path, []byte("P3\n3 2\n255\n0 0 0 1 1 1 2 2 2\n3 3 3 4 4 4 5 5 5\n"), 0644))

	cfg, err := sourceConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}
