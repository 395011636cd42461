package raster

import (
	"image"
	"image/png"
	"io"
)

// Bitmap is a tightly packed row-major RGBA image, row 0 at the top.
// Pix holds exactly Width*Height*4 bytes.
type Bitmap struct {
	Width, Height int
	Pix           []byte
}

// NewBitmap allocates a Bitmap of the given size, filled with
// transparent black.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Clear fills every pixel with r,g,b,a (8-bit).
func (b *Bitmap) Clear(r, g, b2, a uint8) {
	if len(b.Pix) == 0 {
		return
	}
	b.Pix[0], b.Pix[1], b.Pix[2], b.Pix[3] = r, g, b2, a
	for i := 4; i < len(b.Pix); i *= 2 {
		copy(b.Pix[i:], b.Pix[:i])
	}
}

// SetPixel writes a pixel at (x,y). Out-of-bounds writes are a no-op.
func (b *Bitmap) SetPixel(x, y int, r, g, b2, a uint8) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * 4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, b2, a
}

// GetPixel returns the color at (x,y), or transparent black out of
// bounds.
func (b *Bitmap) GetPixel(x, y int) (r, g, b2, a uint8) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0, 0, 0, 0
	}
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// ToImage converts the bitmap to a standard image.RGBA, sharing the
// underlying buffer (no copy).
func (b *Bitmap) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// EncodePNG writes the bitmap to w as a PNG.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.ToImage())
}
