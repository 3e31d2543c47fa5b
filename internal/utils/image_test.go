package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToWebP_DownscalesLargeImages(t *testing.T) {
	out, err := ConvertToWebP(pngFixture(t, 400, 200), ThumbnailOptions{MaxWidth: 100, MaxHeight: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ConvertToWebP(pngFixture(t, 40, 30), DefaultThumbnailOptions)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestConvertToWebP_RejectsGarbage(t *testing.T) {
	_, err := ConvertToWebP([]byte("not an image"), DefaultThumbnailOptions)
	assert.Error(t, err)

	_, err = ConvertToWebP(nil, DefaultThumbnailOptions)
	assert.Error(t, err)
}

func TestImageFilenameHelpers(t *testing.T) {
	tests := []struct {
		name    string
		isImage bool
		webp    string
	}{
		{"cover.JPG", true, "cover.webp"},
		{"banner.png", true, "banner.webp"},
		{"notes.pdf", false, "notes.webp"},
		{"", false, "thumbnail.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isImage, IsImageFilename(tt.name))
			assert.Equal(t, tt.webp, WebPFilename(tt.name))
		})
	}
}
