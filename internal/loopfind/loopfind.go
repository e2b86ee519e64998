package loopfind

import (
	"fmt"
	"math"
	"sort"

	"github.com/thruflo/findloop/internal/frames"
	"github.com/thruflo/findloop/internal/logging"
	"github.com/thruflo/findloop/internal/similarity"
)

// Default limits for Candidates.
const (
	DefaultMaxStarts       = 10
	DefaultMatchesPerStart = 5
)

// Params bounds the search. Lengths are in frames.
type Params struct {
	// MinLength is the smallest accepted end-start distance.
	MinLength int
	// MaxLength is the exclusive upper bound on end-start. Start indices are
	// also limited to [0, N-MaxLength), so no start is considered at all when
	// MaxLength >= N.
	MaxLength int
	// Threshold is the minimum score, in [0, 1], a pair needs to qualify.
	Threshold float64
}

// ParamError reports an invalid search parameter.
type ParamError struct {
	Field   string
	Message string
}

func (e ParamError) Error() string {
	return fmt.Sprintf("invalid parameter: %s: %s", e.Field, e.Message)
}

// Validate rejects parameters the search cannot run with. Other values are
// accepted as given: MinLength > MaxLength or a Threshold above 1 simply
// admit no qualifying pair.
func (p Params) Validate() error {
	if p.MinLength < 0 {
		return ParamError{Field: "min_length", Message: "must not be negative"}
	}
	if p.MaxLength < 0 {
		return ParamError{Field: "max_length", Message: "must not be negative"}
	}
	if math.IsNaN(p.Threshold) {
		return ParamError{Field: "threshold", Message: "must be a number"}
	}
	return nil
}

// Match is a scored (start, end) frame pair.
type Match struct {
	Start int
	End   int
	Score float64
}

// Length returns the number of frames between Start and End.
func (m Match) Length() int {
	return m.End - m.Start
}

// Times converts the pair to seconds at fps.
func (m Match) Times(fps float64) (start, end float64) {
	return frames.FramesToSeconds(m.Start, fps), frames.FramesToSeconds(m.End, fps)
}

// EndMatch is one qualifying end for a StartPoint.
type EndMatch struct {
	End   int
	Score float64
}

// StartPoint is a start index with its best matching ends.
type StartPoint struct {
	Start   int
	Matches []EndMatch
}

// Stats counts the work done by the last search.
type Stats struct {
	Comparisons int
	Qualifying  int
}

// Finder searches a frame sequence for loop points. A Finder is not safe for
// concurrent use because it records Stats for the last run.
type Finder struct {
	Score  similarity.Scorer
	Logger *logging.Logger

	stats Stats
}

// NewFinder returns a Finder using similarity.Score.
func NewFinder(logger *logging.Logger) *Finder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Finder{Score: similarity.Score, Logger: logger}
}

// Stats returns the counters from the last Find or Candidates call.
func (f *Finder) Stats() Stats {
	return f.stats
}

// scan visits every candidate pair in order: increasing start, then
// increasing end within a start.
func (f *Finder) scan(seq []*frames.Frame, p Params, visit func(start, end int, score float64)) {
	f.stats = Stats{}
	n := len(seq)
	for s := 0; s < n-p.MaxLength; s++ {
		last := min(s+p.MaxLength, n)
		if p.MinLength >= last-s {
			continue
		}
		for e := s + p.MinLength; e < last; e++ {
			score := f.Score(seq[s], seq[e])
			f.stats.Comparisons++
			if score >= p.Threshold {
				f.stats.Qualifying++
			}
			visit(s, e, score)
		}
	}
}

// Find returns the qualifying pair with the highest score. On equal scores
// the first pair in scan order wins. The boolean is false when the sequence
// is empty or no pair meets the threshold.
//
// A pair scoring exactly 0 qualifies only when Threshold is 0; there is no
// sentinel conflating a zero score with "nothing found".
func (f *Finder) Find(seq []*frames.Frame, p Params) (Match, bool) {
	f.stats = Stats{}
	if len(seq) == 0 {
		return Match{}, false
	}
	if err := p.Validate(); err != nil {
		f.Logger.Warn("search skipped", "error", err)
		return Match{}, false
	}

	var best Match
	found := false
	f.scan(seq, p, func(start, end int, score float64) {
		if score < p.Threshold {
			return
		}
		if !found || score > best.Score {
			best = Match{Start: start, End: end, Score: score}
			found = true
		}
	})

	if !found {
		f.Logger.Debug("no loop above threshold",
			"frames", len(seq), "comparisons", f.stats.Comparisons, "threshold", p.Threshold)
		return Match{}, false
	}

	f.Logger.Debug("best loop found",
		"start", best.Start, "end", best.End, "score", best.Score,
		"comparisons", f.stats.Comparisons, "qualifying", f.stats.Qualifying)
	return best, true
}

// Candidates lists every start that has at least one qualifying end, using
// the same start and end ranges as Find. Each start keeps its
// matchesPerStart highest-scoring ends (ties by increasing end), and at most
// maxStarts starts are returned in increasing order. Non-positive limits
// mean no limit.
func (f *Finder) Candidates(seq []*frames.Frame, p Params, maxStarts, matchesPerStart int) []StartPoint {
	f.stats = Stats{}
	if err := p.Validate(); err != nil {
		f.Logger.Warn("search skipped", "error", err)
		return nil
	}

	var points []StartPoint
	var current *StartPoint

	f.scan(seq, p, func(start, end int, score float64) {
		if score < p.Threshold {
			return
		}
		if current == nil || current.Start != start {
			points = append(points, StartPoint{Start: start})
			current = &points[len(points)-1]
		}
		current.Matches = append(current.Matches, EndMatch{End: end, Score: score})
	})

	for i := range points {
		matches := points[i].Matches
		sort.SliceStable(matches, func(a, b int) bool {
			return matches[a].Score > matches[b].Score
		})
		if matchesPerStart > 0 && len(matches) > matchesPerStart {
			points[i].Matches = matches[:matchesPerStart]
		}
	}
	if maxStarts > 0 && len(points) > maxStarts {
		points = points[:maxStarts]
	}

	f.Logger.Debug("candidate starts collected",
		"starts", len(points), "comparisons", f.stats.Comparisons, "qualifying", f.stats.Qualifying)
	return points
}
