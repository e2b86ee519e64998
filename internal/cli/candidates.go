package cli

import (
	"github.com/spf13/cobra"

	"github.com/thruflo/findloop/internal/logging"
	"github.com/thruflo/findloop/internal/loopfind"
	"github.com/thruflo/findloop/internal/report"
)

var (
	maxStarts       int
	matchesPerStart int
	showSummary     bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <frames_dir> <min_length_seconds> <max_length_seconds> <threshold>",
	Short: "List every start frame with its best matching end frames",
	Long: `Lists start points that have at least one end frame scoring at or above the
threshold, using the same search window as the default command.

Each output line is a start time followed by up to --matches-per-start
"<end_time>:<score>" pairs, best first. At most --max-starts lines are
printed, in start order. Prints nothing when no pair qualifies.`,
	Args: cobra.ExactArgs(4),
	RunE: runCandidates,
}

func init() {
	candidatesCmd.Flags().IntVar(&maxStarts, "max-starts", loopfind.DefaultMaxStarts, "maximum start points to list (0 = all)")
	candidatesCmd.Flags().IntVar(&matchesPerStart, "matches-per-start", loopfind.DefaultMatchesPerStart, "maximum end matches per start (0 = all)")
	candidatesCmd.Flags().BoolVar(&showSummary, "summary", false, "print a score summary to stderr")
	rootCmd.AddCommand(candidatesCmd)
}

func runCandidates(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-starts") {
		cfg.Candidates.MaxStarts = maxStarts
	}
	if flags.Changed("matches-per-start") {
		cfg.Candidates.MatchesPerStart = matchesPerStart
	}

	req, err := parseSearchArgs(args, cfg.Search.FPS)
	if err != nil {
		return err
	}

	logger := logging.WithFields(map[string]any{"dir": req.dir, "command": "candidates"})
	seq, err := loadFrames(cfg, req, logger)
	if err != nil {
		return err
	}

	points := loopfind.NewFinder(logger).Candidates(seq.Frames, req.params,
		cfg.Candidates.MaxStarts, cfg.Candidates.MatchesPerStart)

	if err := report.WriteCandidates(cmd.OutOrStdout(), points, cfg.Search.FPS); err != nil {
		return err
	}
	if showSummary {
		report.WriteSummary(cmd.ErrOrStderr(), "candidate scores", report.Summarize(report.Scores(points)))
	}
	return nil
}
