// Package report formats search results for stdout and summarizes candidate
// scores for stderr.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thruflo/findloop/internal/loopfind"
)

// FormatLoop renders a loop as "<start> <end>" in seconds with three decimals.
func FormatLoop(start, end float64) string {
	return fmt.Sprintf("%.3f %.3f", start, end)
}

// WriteLoop writes m, converted to seconds at fps, as a FormatLoop line.
func WriteLoop(w io.Writer, m loopfind.Match, fps float64) error {
	start, end := m.Times(fps)
	_, err := fmt.Fprintln(w, FormatLoop(start, end))
	return err
}

// WriteCandidates writes one line per start point:
//
//	<start> <end>:<score> <end>:<score> ...
//
// Times are in seconds with three decimals and scores have four.
func WriteCandidates(w io.Writer, points []loopfind.StartPoint, fps float64) error {
	for _, sp := range points {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%.3f", float64(sp.Start)/fps)
		for _, m := range sp.Matches {
			fmt.Fprintf(&sb, " %.3f:%.4f", float64(m.End)/fps, m.Score)
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// Scores flattens the match scores of points in output order.
func Scores(points []loopfind.StartPoint) []float64 {
	var scores []float64
	for _, sp := range points {
		for _, m := range sp.Matches {
			scores = append(scores, m.Score)
		}
	}
	return scores
}

// Summary describes a set of similarity scores.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Summarize computes a Summary. The standard deviation is the population
// value. An empty input yields a zero Summary.
func Summarize(scores []float64) Summary {
	n := len(scores)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, scores)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(variance),
	}
}

// WriteSummary prints s as a titled block.
func WriteSummary(w io.Writer, title string, s Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))

	if s.Count == 0 {
		fmt.Fprintln(w, "  no qualifying pairs")
		return
	}

	fmt.Fprintf(w, "  count   : %d\n", s.Count)
	fmt.Fprintf(w, "  min     : %.6f\n", s.Min)
	fmt.Fprintf(w, "  max     : %.6f\n", s.Max)
	fmt.Fprintf(w, "  average : %.6f\n", s.Mean)
	fmt.Fprintf(w, "  median  : %.6f\n", s.Median)
	fmt.Fprintf(w, "  stddev  : %.6f\n", s.StdDev)
}
