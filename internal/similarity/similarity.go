// Package similarity scores how closely two frames match in raw pixel
// intensity.
package similarity

import (
	"fmt"

	"github.com/thruflo/findloop/internal/frames"
)

// MaxSample is the largest value an 8-bit sample can take.
const MaxSample = 255

// Scorer compares two frames and returns a similarity in [0, 1].
type Scorer func(a, b *frames.Frame) float64

// Score returns 1 minus the mean absolute per-sample difference between a and
// b, normalized by MaxSample. Identical frames score 1 and frames that differ
// by the full range at every sample score 0. Frames of different shapes are
// not comparable and score 0.
func Score(a, b *frames.Frame) float64 {
	if !a.SameShape(b) || len(a.Pix) == 0 {
		return 0
	}
	return 1 - float64(AbsDiffSum(a.Pix, b.Pix))/float64(len(a.Pix))/MaxSample
}

// AbsDiffSum returns the sum of |a[i]-b[i]|. It panics if a and b have
// different lengths; Score checks frame shapes before calling it.
func AbsDiffSum(a, b []uint8) uint64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("similarity: sample count mismatch: %d != %d", len(a), len(b)))
	}

	var sum uint64
	for i := range a {
		if a[i] > b[i] {
			sum += uint64(a[i] - b[i])
		} else {
			sum += uint64(b[i] - a[i])
		}
	}
	return sum
}
