package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/findloop/internal/frames"
	"github.com/thruflo/findloop/internal/logging"
	"github.com/thruflo/findloop/internal/testutil"
)

// resetFlags restores every flag to its default so commands can be run
// repeatedly within one test binary.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, cmd := range []*cobra.Command{rootCmd, candidatesCmd} {
		for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				require.NoError(t, f.Value.Set(f.DefValue))
				f.Changed = false
			})
		}
	}
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logging.SetOutput(os.Stderr)
		logging.SetLevel(logging.LevelWarn)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFind_SolidSequence(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(100, 4, 4, testutil.Gray(128)), ".png")

	stdout, _, err := executeCommand(t, dir, "0.34", "3", "0.98")
	require.NoError(t, err)
	assert.Equal(t, "0.000 0.333\n", stdout)
}

func TestFind_PeriodicSequence(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.PeriodicSequence(120, 40, 4, 4), ".png")

	stdout, _, err := executeCommand(t, dir, "1", "2", "0.99")
	require.NoError(t, err)
	assert.Equal(t, "0.000 1.333\n", stdout)
}

func TestFind_FPSFlag(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.PeriodicSequence(120, 40, 4, 4), ".png")

	// At 20 fps, 2s..3s is 40..60 frames.
	stdout, _, err := executeCommand(t, dir, "2", "3", "0.99", "--fps", "20")
	require.NoError(t, err)
	assert.Equal(t, "0.000 2.000\n", stdout)
}

func TestFind_NoQualifyingPair(t *testing.T) {
	levels := make([]uint8, 60)
	for i := range levels {
		levels[i] = uint8(i * 4)
	}
	dir := testutil.WriteFrameDir(t, testutil.GraySequence(4, 4, levels...), ".png")

	stdout, _, err := executeCommand(t, dir, "0.5", "1", "0.999")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFind_MaxLengthCoversSequence(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(30, 2, 2, testutil.Gray(5)), ".png")

	stdout, _, err := executeCommand(t, dir, "0", "1", "0")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFind_EmptyAndMissingDirectory(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "1", "3", "0.9")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	stdout, _, err = executeCommand(t, filepath.Join(t.TempDir(), "missing"), "1", "3", "0.9")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFind_SkipsUnreadableFrames(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(20, 2, 2, testutil.Gray(7)), ".png")
	testutil.WriteTestFile(t, dir, "frame_0000.png", []byte("corrupt"))

	stdout, stderr, err := executeCommand(t, dir, "0.1", "0.5", "0.9")
	require.NoError(t, err)
	assert.Equal(t, "0.000 0.100\n", stdout)
	assert.Contains(t, stderr, "skipping unreadable frame")
}

func TestFind_MalformedArguments(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"min", []string{dir, "one", "3", "0.9"}, "invalid min_length_seconds"},
		{"max", []string{dir, "1", "x", "0.9"}, "invalid max_length_seconds"},
		{"threshold", []string{dir, "1", "3", "high"}, "invalid threshold"},
		{"negative min", []string{"--", dir, "-1", "3", "0.9"}, "min_length"},
		{"too few", []string{dir, "1", "3"}, "accepts 4 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFind_HugeMaxLength(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(20, 2, 2, testutil.Gray(3)), ".png")

	stdout, _, err := executeCommand(t, dir, "0.1", "1e20", "0.9")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	stdout, _, err = executeCommand(t, dir, "1e20", "1e21", "0.9")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFind_NonFiniteArguments(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"inf max", []string{dir, "0.1", "inf", "0.9"}, "invalid max_length_seconds \"inf\": must be a finite number"},
		{"nan min", []string{dir, "NaN", "3", "0.9"}, "invalid min_length_seconds \"NaN\": must be a finite number"},
		{"nan threshold", []string{dir, "1", "3", "nan"}, "invalid threshold \"nan\": must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestFind_InvalidFlags(t *testing.T) {
	dir := t.TempDir()

	_, _, err := executeCommand(t, dir, "1", "3", "0.9", "--fps", "0")
	assert.ErrorContains(t, err, "search.fps")

	_, _, err = executeCommand(t, dir, "1", "3", "0.9", "--fps", "NaN")
	assert.ErrorContains(t, err, "search.fps")

	_, _, err = executeCommand(t, dir, "1", "3", "0.9", "--fps", "+Inf")
	assert.ErrorContains(t, err, "search.fps")

	_, _, err = executeCommand(t, dir, "1", "3", "0.9", "--log-level", "loud")
	assert.ErrorContains(t, err, "log.level")
}

func TestFind_ConfigFile(t *testing.T) {
	seq := testutil.SolidSequence(40, 2, 2, testutil.Gray(9))
	dir := t.TempDir()
	for i, f := range seq {
		testutil.WriteFrameFile(t, dir, "still_"+string(rune('a'+i/26))+string(rune('a'+i%26))+".png", f)
	}

	cfgDir := t.TempDir()
	testutil.WriteTestFile(t, cfgDir, "findloop.yaml", []byte(`search:
  fps: 10
  pattern: "still_*"
`))
	cfgPath := filepath.Join(cfgDir, "findloop.yaml")

	// 0.5s at 10 fps is 5 frames.
	stdout, _, err := executeCommand(t, dir, "0.5", "1", "0.9", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "0.000 0.500\n", stdout)

	// Flags override the file.
	stdout, _, err = executeCommand(t, dir, "0.5", "1", "0.9", "--config", cfgPath, "--pattern", "frame_*")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFind_DebugLogging(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(10, 2, 2, testutil.Gray(1)), ".png")

	_, stderr, err := executeCommand(t, dir, "0.1", "0.2", "0.5", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded frames")
	assert.Contains(t, stderr, "best loop found")
}

func TestParseSearchArgs(t *testing.T) {
	req, err := parseSearchArgs([]string{"frames", "1", "3", "0.98"}, frames.DefaultFPS)
	require.NoError(t, err)
	assert.Equal(t, "frames", req.dir)
	assert.Equal(t, 30, req.params.MinLength)
	assert.Equal(t, 90, req.params.MaxLength)
	assert.Equal(t, 0.98, req.params.Threshold)
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "findloop version dev\n", stdout)
}
