// Package loopfind searches a preloaded frame sequence for seamless loop
// points.
//
// The search is exhaustive over two bounded loops:
//   - start s in [0, N-MaxLength)
//   - end e in [s+MinLength, min(s+MaxLength, N))
//
// Every pair is scored with a similarity.Scorer. Find keeps the single best
// qualifying pair; Candidates keeps the best few ends for each start.
//
// Starts closer than MaxLength to the end of the sequence are never
// considered, even when a shorter qualifying window exists there. With
// MaxLength >= N the search admits no start and finds nothing.
package loopfind
