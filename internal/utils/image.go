package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ThumbnailOptions bounds the encoded thumbnail.
type ThumbnailOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   float32
}

var DefaultThumbnailOptions = ThumbnailOptions{
	MaxWidth:  1280,
	MaxHeight: 720,
	Quality:   80,
}

// IsImageFilename reports whether the name carries a raster image extension
// the thumbnail converter understands.
func IsImageFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// ConvertToWebP decodes jpeg/png/webp input, fits it inside the configured
// bounds and re-encodes it as lossy WebP.
func ConvertToWebP(data []byte, opts ThumbnailOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opts.MaxWidth > 0 && b.Dx() > opts.MaxWidth) || (opts.MaxHeight > 0 && b.Dy() > opts.MaxHeight) {
		img = imaging.Fit(img, boundOr(opts.MaxWidth, b.Dx()), boundOr(opts.MaxHeight, b.Dy()), imaging.Lanczos)
	}

	q := opts.Quality
	if q <= 0 {
		q = DefaultThumbnailOptions.Quality
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPFilename swaps the extension of name for .webp.
func WebPFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "thumbnail"
	}
	return base + ".webp"
}

func decodeImage(data []byte) (image.Image, error) {
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	return img, nil
}

func boundOr(limit, actual int) int {
	if limit <= 0 {
		return actual
	}
	return limit
}
