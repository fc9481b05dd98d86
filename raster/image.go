package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	// register the PNG decoder for Decode
	_ "image/png"
)

// IsBlack reports whether c is opaque pure black, the wall colour of a
// painted obstacle map.
func IsBlack(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0 && g == 0 && b == 0 && a == 0xffff
}

// FromImage classifies every pixel of img with isObstacle (IsBlack if nil).
// Pixel (img.Bounds().Min) becomes point (0, 0).
// Returns ErrNilImage for a nil image and ErrBadSize for an empty one.
// Complexity: O(W×H).
func FromImage(img image.Image, isObstacle func(color.Color) bool) (*Bitmap, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if isObstacle == nil {
		isObstacle = IsBlack
	}
	bounds := img.Bounds()
	b, err := NewBitmap(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.blocked[y*b.width+x] = isObstacle(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return b, nil
}

// Decode reads a PNG (or any registered image format) and classifies it with
// FromImage.
func Decode(r io.Reader, isObstacle func(color.Color) bool) (*Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decoding image: %w", err)
	}
	return FromImage(img, isObstacle)
}

// Image renders the bitmap as black walls on a white floor.
func (b *Bitmap) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if b.blocked[y*b.width+x] {
				c = color.RGBA{A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
