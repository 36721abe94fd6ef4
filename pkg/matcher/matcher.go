// Package matcher implements the two-stage Matcher of spec.md §4.6:
// address-overlap candidate filtering followed by time-offset histogram
// verification. It replaces the teacher's Engine/Scorer/TimeAlignment
// interface stubs (pkg/matcher/matcher.go in the teacher repo), which
// modeled nearest-neighbor search over a vector DB — an abstraction this
// exact-match, address-keyed index has no use for. What survives from the
// teacher is the shape of a Match result type and a Config record.
package matcher

import (
	"sort"

	"github.com/go-fprint/fprint/pkg/fingerprint"
	"github.com/go-fprint/fprint/pkg/store"
)

// Match is a confident identification: the track and its coherent score.
type Match struct {
	TrackID uint32
	Score   int
}

// Config holds the matcher's decision thresholds.
type Config struct {
	KMin   int // minimum total matches before a track is even scored
	SMin   int // minimum coherent score to accept a match
	Margin int // required lead over the runner-up
	Bucket int // histogram bucket width, in frames
}

type trackMatches struct {
	trackID uint32
	deltas  []int
}

// Query runs the query fingerprint set against the store and returns the
// single best match, or ok=false if none meets the score and margin
// thresholds (spec.md §4.6 decision rule, including the ambiguous case
// from scenario S6).
func Query(s *store.Store, hashes []fingerprint.Hash, cfg Config) (Match, bool) {
	candidates := collectCandidates(s, hashes, cfg.KMin)
	if len(candidates) == 0 {
		return Match{}, false
	}

	scored := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Match{TrackID: c.trackID, Score: bestBucket(c.deltas, cfg.Bucket)})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	best := scored[0]
	if best.Score < cfg.SMin {
		return Match{}, false
	}
	if len(scored) > 1 && best.Score-scored[1].Score < cfg.Margin {
		return Match{}, false // ambiguous: within margin of the runner-up
	}
	return best, true
}

// collectCandidates accumulates, per track, the signed time offsets
// δ = t_db - t_q for every posting matching any query address, then
// drops tracks with fewer than kMin total matches.
func collectCandidates(s *store.Store, hashes []fingerprint.Hash, kMin int) []trackMatches {
	byTrack := make(map[uint32][]int)
	for _, h := range hashes {
		for _, p := range s.Recall(h.Address) {
			delta := int(p.AnchorTime) - h.AnchorTime
			byTrack[p.TrackID] = append(byTrack[p.TrackID], delta)
		}
	}

	candidates := make([]trackMatches, 0, len(byTrack))
	for id, deltas := range byTrack {
		if len(deltas) < kMin {
			continue
		}
		candidates = append(candidates, trackMatches{trackID: id, deltas: deltas})
	}
	return candidates
}

// bestBucket buckets deltas by floor-division with width b and returns
// the size of the largest bucket, breaking ties toward the bucket closest
// to zero offset, per spec.md §4.6.
func bestBucket(deltas []int, b int) int {
	if b < 1 {
		b = 1
	}
	counts := make(map[int]int)
	for _, d := range deltas {
		counts[floorDiv(d, b)]++
	}

	bestCount := 0
	bestBucketIdx := 0
	first := true
	for idx, count := range counts {
		switch {
		case count > bestCount:
			bestCount, bestBucketIdx, first = count, idx, false
		case count == bestCount && !first:
			if abs(idx) < abs(bestBucketIdx) {
				bestBucketIdx = idx
			}
		}
	}
	return bestCount
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
