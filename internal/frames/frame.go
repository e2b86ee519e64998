package frames

import (
	"image"
	"image/color"
	"image/draw"
)

// Channels is the number of samples per pixel in a loaded Frame.
const Channels = 3

// Frame is one decoded still image held as interleaved 8-bit RGB samples.
// Frames are not modified after loading.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// SameShape reports whether f and other have identical dimensions.
func (f *Frame) SameShape(other *Frame) bool {
	return f.Width == other.Width &&
		f.Height == other.Height &&
		f.Channels == other.Channels &&
		len(f.Pix) == len(other.Pix)
}

// NewSolid returns a frame with every pixel set to c.
func NewSolid(width, height int, c color.RGBA) *Frame {
	f := &Frame{
		Width:    width,
		Height:   height,
		Channels: Channels,
		Pix:      make([]uint8, width*height*Channels),
	}
	for i := 0; i < len(f.Pix); i += Channels {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
	return f
}

// FromImage converts img to an RGB Frame. Alpha is dropped without
// premultiplication, matching how still-frame readers load opaque video frames.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := &Frame{
		Width:    w,
		Height:   h,
		Channels: Channels,
		Pix:      make([]uint8, w*h*Channels),
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	o := 0
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			f.Pix[o] = row[x]
			f.Pix[o+1] = row[x+1]
			f.Pix[o+2] = row[x+2]
			o += Channels
		}
	}
	return f
}

// Image returns f as an *image.NRGBA, fully opaque.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	o := 0
	for i := 0; i < len(f.Pix); i += f.Channels {
		img.Pix[o] = f.Pix[i]
		img.Pix[o+1] = f.Pix[i+1]
		img.Pix[o+2] = f.Pix[i+2]
		img.Pix[o+3] = 0xff
		o += 4
	}
	return img
}

// At returns the color of the pixel at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.Width + x) * f.Channels
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 0xff}
}
