package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/findloop/internal/testutil"
)

func TestCandidates_DefaultLimits(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.PeriodicSequence(120, 40, 4, 4), ".png")

	stdout, _, err := executeCommand(t, "candidates", dir, "1", "2", "0.99")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "0.000 1.333:1.0000", lines[0])
	assert.Equal(t, "0.300 1.633:1.0000", lines[9])
}

func TestCandidates_LimitFlags(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(20, 2, 2, testutil.Gray(40)), ".png")

	stdout, _, err := executeCommand(t, "candidates", dir, "0.1", "0.3", "0.9",
		"--max-starts", "1", "--matches-per-start", "2")
	require.NoError(t, err)
	assert.Equal(t, "0.000 0.100:1.0000 0.133:1.0000\n", stdout)
}

func TestCandidates_Summary(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(20, 2, 2, testutil.Gray(40)), ".png")

	_, stderr, err := executeCommand(t, "candidates", dir, "0.1", "0.3", "0.9",
		"--max-starts", "1", "--matches-per-start", "2", "--summary")
	require.NoError(t, err)
	assert.Contains(t, stderr, "candidate scores")
	assert.Contains(t, stderr, "  count   : 2\n")
	assert.Contains(t, stderr, "  average : 1.000000\n")
}

func TestCandidates_NoQualifyingPair(t *testing.T) {
	levels := make([]uint8, 40)
	for i := range levels {
		levels[i] = uint8(i * 6)
	}
	dir := testutil.WriteFrameDir(t, testutil.GraySequence(2, 2, levels...), ".png")

	stdout, stderr, err := executeCommand(t, "candidates", dir, "0.3", "0.6", "0.99", "--summary")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no qualifying pairs")
}

func TestCandidates_ConfigLimits(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.PeriodicSequence(120, 40, 4, 4), ".png")

	cfgDir := t.TempDir()
	testutil.WriteTestFile(t, cfgDir, "findloop.yaml", []byte(`candidates:
  max_starts: 3
`))
	cfgPath := filepath.Join(cfgDir, "findloop.yaml")

	stdout, _, err := executeCommand(t, "candidates", dir, "1", "2", "0.99", "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3)

	stdout, _, err = executeCommand(t, "candidates", dir, "1", "2", "0.99", "--config", cfgPath, "--max-starts", "0")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 60)
}

func TestCandidates_RequiresFourArgs(t *testing.T) {
	_, _, err := executeCommand(t, "candidates", t.TempDir())
	assert.ErrorContains(t, err, "accepts 4 arg(s)")
}

func TestCandidates_DebugLogFields(t *testing.T) {
	dir := testutil.WriteFrameDir(t, testutil.SolidSequence(10, 2, 2, testutil.Gray(1)), ".png")

	_, stderr, err := executeCommand(t, "candidates", dir, "0.1", "0.2", "0.5", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "candidate starts collected")
	assert.Contains(t, stderr, "command=candidates")
	assert.Contains(t, stderr, "dir="+dir)
}
