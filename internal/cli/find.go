package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thruflo/findloop/internal/config"
	"github.com/thruflo/findloop/internal/frames"
	"github.com/thruflo/findloop/internal/logging"
	"github.com/thruflo/findloop/internal/loopfind"
	"github.com/thruflo/findloop/internal/report"
)

// argNames names the numeric positional arguments in order.
var argNames = []string{"min_length_seconds", "max_length_seconds", "threshold"}

// searchRequest is the parsed form of the four positional arguments.
type searchRequest struct {
	dir    string
	params loopfind.Params
}

// loadSettings reads the config file and applies any flags set on cmd.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Search.FPS = fps
	}
	if flags.Changed("pattern") {
		cfg.Search.Pattern = pattern
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	logging.SetOutput(cmd.ErrOrStderr())

	return cfg, nil
}

// parseSearchArgs converts <frames_dir> <min_seconds> <max_seconds> <threshold>.
func parseSearchArgs(args []string, fps float64) (searchRequest, error) {
	minSeconds, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return searchRequest{}, fmt.Errorf("invalid min_length_seconds %q: %w", args[1], err)
	}
	maxSeconds, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return searchRequest{}, fmt.Errorf("invalid max_length_seconds %q: %w", args[2], err)
	}
	threshold, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return searchRequest{}, fmt.Errorf("invalid threshold %q: %w", args[3], err)
	}
	for i, v := range []float64{minSeconds, maxSeconds, threshold} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return searchRequest{}, fmt.Errorf("invalid %s %q: must be a finite number", argNames[i], args[i+1])
		}
	}

	req := searchRequest{
		dir: args[0],
		params: loopfind.Params{
			MinLength: frames.SecondsToFrames(minSeconds, fps),
			MaxLength: frames.SecondsToFrames(maxSeconds, fps),
			Threshold: threshold,
		},
	}
	if err := req.params.Validate(); err != nil {
		return searchRequest{}, err
	}
	return req, nil
}

// loadFrames loads the request's directory with the configured loader
// settings. A directory that does not exist loads as an empty sequence.
func loadFrames(cfg *config.Config, req searchRequest, logger *logging.Logger) (*frames.Sequence, error) {
	loader := frames.NewLoader(logger)
	loader.Pattern = cfg.Search.Pattern
	loader.Extensions = cfg.Search.Extensions

	seq, err := loader.Load(req.dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("frames directory not found", "error", err)
		return &frames.Sequence{}, nil
	}
	return seq, err
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	req, err := parseSearchArgs(args, cfg.Search.FPS)
	if err != nil {
		return err
	}

	logger := logging.With("dir", req.dir)
	seq, err := loadFrames(cfg, req, logger)
	if err != nil {
		return err
	}

	logger.Info("searching for loop",
		"frames", seq.Len(), "min_frames", req.params.MinLength,
		"max_frames", req.params.MaxLength, "threshold", req.params.Threshold)

	match, ok := loopfind.NewFinder(logger).Find(seq.Frames, req.params)
	if !ok {
		logger.Info("no loop found")
		return nil
	}

	logger.Info("loop found", "start", seq.Names[match.Start], "end", seq.Names[match.End], "score", match.Score)
	return report.WriteLoop(cmd.OutOrStdout(), match, cfg.Search.FPS)
}
