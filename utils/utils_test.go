package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_FormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m 30.00s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h 3m 4.00s"},
		{26 * time.Hour, "1d 2h 0m 0.00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.d))
	}
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"oops"+DefaultColor, DecorateText("oops", ErrorMessage))
	assert.Equal(t, SuccessColor+"ok"+DefaultColor, DecorateText("ok", SuccessMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
	assert.Contains(t, StatusLine("carving", DefaultMessage), AppTag)
}

func TestUtils_Min(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, "a", Min("a", "b"))
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://example.com/images/sunset.ppm"))
	assert.False(t, IsValidUrl("sunset.ppm"))
	assert.False(t, IsValidUrl("/tmp/sunset.ppm"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	img := filepath.Join(dir, "sample.png")
	require.NoError(t, os.WriteFile(img, buf.Bytes(), 0644))

	ftype, err := DetectContentType(img)
	require.NoError(t, err)
	assert.True(t, strings.Contains(ftype.(string), "image"), "got %v", ftype)

	text := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0644))
	ftype, err = DetectContentType(text)
	require.NoError(t, err)
	assert.False(t, strings.Contains(ftype.(string), "image"))

	_, err = DetectContentType(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestUtils_Spinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("working", time.Millisecond, false)
	s.writer = &buf
	s.StopMsg = "finished"

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Contains(t, buf.String(), "working")
	assert.True(t, strings.HasSuffix(buf.String(), "finished"))
}
