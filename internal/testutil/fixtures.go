package testutil

import (
	"image/color"

	"github.com/thruflo/findloop/internal/frames"
)

// PeriodStep is the gray-level distance between neighbouring phases of a
// PeriodicSequence. Neighbouring phases score 1 - PeriodStep/255 against
// each other, which is below 0.98.
const PeriodStep = 6

// Gray returns an opaque gray color.
func Gray(level uint8) color.RGBA {
	return color.RGBA{R: level, G: level, B: level, A: 0xff}
}

// SolidSequence returns n identical solid-color frames.
// Returns a new slice each time to prevent test interference.
func SolidSequence(n, width, height int, c color.RGBA) []*frames.Frame {
	seq := make([]*frames.Frame, n)
	for i := range seq {
		seq[i] = frames.NewSolid(width, height, c)
	}
	return seq
}

// GraySequence returns one solid gray frame per level.
func GraySequence(width, height int, levels ...uint8) []*frames.Frame {
	seq := make([]*frames.Frame, len(levels))
	for i, level := range levels {
		seq[i] = frames.NewSolid(width, height, Gray(level))
	}
	return seq
}

// PeriodicSequence returns n frames where frame i is identical to frame
// i+period and differs from every other frame within the same period by at
// least PeriodStep gray levels. period must be at most 42 so levels fit in a byte.
func PeriodicSequence(n, period, width, height int) []*frames.Frame {
	seq := make([]*frames.Frame, n)
	for i := range seq {
		level := uint8((i % period) * PeriodStep)
		seq[i] = frames.NewSolid(width, height, Gray(level))
	}
	return seq
}

// Checkerboard returns a frame of alternating a and b cells, cell pixels wide.
func Checkerboard(width, height, cell int, a, b color.RGBA) *frames.Frame {
	f := frames.NewSolid(width, height, a)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				continue
			}
			i := (y*width + x) * f.Channels
			f.Pix[i] = b.R
			f.Pix[i+1] = b.G
			f.Pix[i+2] = b.B
		}
	}
	return f
}
