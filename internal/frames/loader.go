// Package frames loads directories of still video frames into memory and
// converts between frame indices and seconds.
package frames

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Registered decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/thruflo/findloop/internal/logging"
)

// Defaults for Loader.
const (
	DefaultPattern = "frame_*"
	DefaultFPS     = 30.0
)

// DefaultExtensions lists the file extensions the loader decodes by default.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// Sequence is the ordered result of loading a frame directory.
type Sequence struct {
	Frames []*Frame
	// Names holds the file name of each entry in Frames.
	Names []string
	// Skipped holds file names that matched but could not be decoded.
	Skipped []string
}

// Len returns the number of loaded frames.
func (s *Sequence) Len() int {
	return len(s.Frames)
}

// Loader reads frame images from a directory.
type Loader struct {
	// Pattern is a filepath.Match glob applied to file names.
	Pattern string
	// Extensions are matched case-insensitively and include the leading dot.
	Extensions []string
	Logger     *logging.Logger
}

// NewLoader returns a Loader with the default pattern and extensions.
func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		Pattern:    DefaultPattern,
		Extensions: append([]string(nil), DefaultExtensions...),
		Logger:     logger,
	}
}

// List returns the matching file names in dir, sorted lexicographically.
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames directory: %w", err)
	}

	pattern := l.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid frame pattern %q: %w", pattern, err)
	}

	exts := make(map[string]bool, len(l.Extensions))
	for _, ext := range l.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if ok, _ := filepath.Match(pattern, name); !ok {
			continue
		}
		if len(exts) > 0 && !exts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Load decodes every matching file in dir. Files that fail to decode are
// skipped, which shifts the index of every later frame; each skip is logged.
// An empty directory yields an empty Sequence, not an error.
func (l *Loader) Load(dir string) (*Sequence, error) {
	names, err := l.List(dir)
	if err != nil {
		return nil, err
	}

	seq := &Sequence{
		Frames: make([]*Frame, 0, len(names)),
		Names:  make([]string, 0, len(names)),
	}
	for _, name := range names {
		frame, err := DecodeFile(filepath.Join(dir, name))
		if err != nil {
			l.Logger.Warn("skipping unreadable frame", "file", name, "error", err)
			seq.Skipped = append(seq.Skipped, name)
			continue
		}
		seq.Frames = append(seq.Frames, frame)
		seq.Names = append(seq.Names, name)
	}

	if len(seq.Skipped) > 0 {
		l.Logger.Warn("frame indices shifted by skipped files",
			"skipped", len(seq.Skipped), "loaded", len(seq.Frames))
	}
	l.Logger.Debug("loaded frames", "dir", dir, "frames", len(seq.Frames))

	return seq, nil
}

// DecodeFile decodes a single image file into a Frame.
func DecodeFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(img), nil
}

// SecondsToFrames converts a duration in seconds to a frame count,
// truncating toward zero. Counts beyond the int range saturate at
// math.MaxInt or math.MinInt, and a NaN product yields 0.
func SecondsToFrames(seconds, fps float64) int {
	v := seconds * fps
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}

// FramesToSeconds converts a frame index to a time offset in seconds.
func FramesToSeconds(index int, fps float64) float64 {
	return float64(index) / fps
}
