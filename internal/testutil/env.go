package testutil

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/thruflo/findloop/internal/frames"
)

// WriteFrameDir writes seq into a new temp directory as frame_0001<ext>,
// frame_0002<ext>, ... and returns the directory. The directory is removed
// when the test completes.
func WriteFrameDir(t *testing.T, seq []*frames.Frame, ext string) string {
	t.Helper()

	dir := t.TempDir()
	for i, f := range seq {
		WriteFrameFile(t, dir, fmt.Sprintf("frame_%04d%s", i+1, ext), f)
	}
	return dir
}

// WriteFrameFile encodes f into dir/name using the encoder for the name's
// extension (.png, .jpg/.jpeg, .bmp, .tif/.tiff).
func WriteFrameFile(t *testing.T, dir, name string, f *frames.Frame) {
	t.Helper()

	out, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer out.Close()

	img := f.Image()
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		err = png.Encode(out, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		err = bmp.Encode(out, img)
	case ".tif", ".tiff":
		err = tiff.Encode(out, img, nil)
	default:
		t.Fatalf("no encoder for %s", name)
	}
	require.NoError(t, err)
}

// WriteTestFile writes content to a file in the test directory.
// Creates parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) {
	t.Helper()
	fullPath := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, content, 0644))
}
