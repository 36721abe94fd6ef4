package fingerprint

import "sort"

// Address bit layout, per spec.md §4.4: [f_a:10][f_t:10][Δt:12], packed
// into a uint32. Grounded in the pack's AcousticDNA hasher.createAddress,
// generalized from its 9/9/14 split to the spec's 10/10/12 split.
const (
	freqBits  = 10
	deltaBits = 12
	freqMask  = (1 << freqBits) - 1
	deltaMask = (1 << deltaBits) - 1
)

// Hash is one fingerprint: an address and the anchor time it was observed
// at, relative to the start of the track or query.
type Hash struct {
	Address    uint32
	AnchorTime int
}

// BuildConfig parameterizes target-zone pairing.
type BuildConfig struct {
	Fanout int // max targets paired per anchor
	DtMin  int // minimum Δt between anchor and target, frames
	DtMax  int // maximum Δt between anchor and target, frames
	DfMax  int // maximum |Δf| between anchor and target, bins
}

// packAddress builds the uint32 address from an anchor/target bin pair and
// their frame delta. Δt is clamped into its 12-bit field by the caller's
// DtMax bound (DtMax must fit in deltaBits).
func packAddress(anchorBin, targetBin, dt int) uint32 {
	return uint32(anchorBin&freqMask)<<(freqBits+deltaBits) |
		uint32(targetBin&freqMask)<<deltaBits |
		uint32(dt&deltaMask)
}

// UnpackAddress splits an address back into its three fields, used by
// tests and diagnostics; the matcher only ever consumes the packed form.
func UnpackAddress(addr uint32) (anchorBin, targetBin, dt int) {
	anchorBin = int(addr>>(freqBits+deltaBits)) & freqMask
	targetBin = int(addr>>deltaBits) & freqMask
	dt = int(addr) & deltaMask
	return
}

// BuildHashes pairs each peak (the anchor) with up to Fanout peaks that
// fall inside its target zone (later in time by [DtMin,DtMax] frames,
// within DfMax bins in frequency), closest-in-time first, per spec.md
// §4.4. Peaks must already be sorted by (frame, bin) ascending, as
// ExtractPeaks returns them.
func BuildHashes(peaks []Peak, cfg BuildConfig) ([]Hash, error) {
	if len(peaks) == 0 {
		return nil, errTooFewPeaks()
	}

	hashes := make([]Hash, 0, len(peaks)*cfg.Fanout)
	for i, anchor := range peaks {
		targets := targetZone(peaks, i, cfg)
		for _, t := range targets {
			dt := t.Frame - anchor.Frame
			addr := packAddress(anchor.Bin, t.Bin, dt)
			hashes = append(hashes, Hash{Address: addr, AnchorTime: anchor.Frame})
		}
	}
	if len(hashes) == 0 {
		return nil, errTooFewPeaks()
	}
	return hashes, nil
}

// targetZone finds, among peaks after index i, those within the anchor's
// target zone, closest-in-time first, capped at cfg.Fanout.
func targetZone(peaks []Peak, i int, cfg BuildConfig) []Peak {
	anchor := peaks[i]
	var candidates []Peak
	for j := i + 1; j < len(peaks); j++ {
		target := peaks[j]
		dt := target.Frame - anchor.Frame
		if dt > cfg.DtMax {
			break // peaks are frame-sorted; no later j can satisfy dt <= DtMax either
		}
		if dt < cfg.DtMin {
			continue
		}
		df := target.Bin - anchor.Bin
		if df < 0 {
			df = -df
		}
		if df > cfg.DfMax {
			continue
		}
		candidates = append(candidates, target)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Frame < candidates[b].Frame
	})
	if len(candidates) > cfg.Fanout {
		candidates = candidates[:cfg.Fanout]
	}
	return candidates
}
