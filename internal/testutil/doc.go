// Package testutil provides shared test helpers for findloop.
//
// # Fixtures
//
// The fixtures.go file builds synthetic frame sequences in memory:
//
//   - SolidSequence(n, w, h, c) - n identical solid-color frames
//   - PeriodicSequence(n, period, w, h) - frames that repeat every period frames
//   - GraySequence(levels...) - one solid gray frame per level
//   - Checkerboard(w, h, cell, a, b) - a two-color checkerboard frame
//
// # Environment Helpers
//
// The env.go file writes fixtures to disk:
//
//   - WriteFrameDir(t, frames, ext) - writes frame_%04d<ext> files into a temp dir
//   - WriteFrameFile(t, dir, name, frame) - encodes one frame by extension
//   - WriteTestFile(t, base, path, content) - writes raw bytes, e.g. a corrupt frame
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    dir := testutil.WriteFrameDir(t, testutil.PeriodicSequence(60, 20, 8, 8), ".png")
//	    // ... load dir and search ...
//	}
package testutil
