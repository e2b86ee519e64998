package cli

import (
	"github.com/spf13/cobra"

	"github.com/thruflo/findloop/internal/config"
	"github.com/thruflo/findloop/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	fps        float64
	pattern    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "findloop <frames_dir> <min_length_seconds> <max_length_seconds> <threshold>",
	Short: "Find seamless loop points in a directory of video frames",
	Long: `Findloop scans a directory of still frames (frame_0001.jpg, frame_0002.jpg, ...)
for the pair of frames that match best within the allowed loop length.

Prints "<start_seconds> <end_seconds>" when a loop scores at or above the
threshold, and nothing otherwise. Lengths are in seconds and are converted to
frame counts at --fps.`,
	Example: `  findloop ./frames 1 3 0.98
  findloop ./frames 0.5 2.5 0.95 --fps 24 --log-level debug`,
	Args:          cobra.ExactArgs(4),
	RunE:          runFind,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("findloop version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.Float64Var(&fps, "fps", config.DefaultFPS, "frame rate used to convert seconds to frames")
	flags.StringVar(&pattern, "pattern", config.DefaultPattern, "glob matched against frame file names")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, logging.LevelUsage())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
