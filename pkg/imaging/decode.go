package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	orient "github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds width*height of a decoded upload.
const DefaultMaxPixels = 25_000_000

var (
	ErrEmptyPayload  = errors.New("empty image payload")
	ErrEmptyImage    = errors.New("image has no pixels")
	ErrTooManyPixels = errors.New("image dimensions exceed limit")
)

// Decode turns an encoded image into a BGR grid. The header is checked
// against maxPixels before any pixel is decoded; maxPixels <= 0 means
// DefaultMaxPixels. EXIF orientation is applied. Alpha is dropped without
// blending, the way a color-only read does.
func Decode(data []byte, maxPixels int) (*Grid, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyPayload
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, format, fmt.Errorf("%w: %dx%d, limit %d pixels", ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := orient.Decode(bytes.NewReader(data), orient.AutoOrientation(true))
	if err != nil {
		return nil, format, fmt.Errorf("decode image: %w", err)
	}

	grid := FromImage(img)
	if grid.Width == 0 || grid.Height == 0 {
		return nil, format, ErrEmptyImage
	}

	return grid, format, nil
}

func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	grid := NewGrid(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < grid.Height; y++ {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			row := src.Pix[start : start+grid.Width*4]
			for x := 0; x < grid.Width; x++ {
				grid.SetBGR(x, y, row[x*4+2], row[x*4+1], row[x*4])
			}
		}
		return grid
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			grid.SetBGR(x-bounds.Min.X, y-bounds.Min.Y, c.B, c.G, c.R)
		}
	}
	return grid
}
