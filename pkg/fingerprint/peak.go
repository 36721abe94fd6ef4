// Package fingerprint extracts sparse spectral peaks from a spectrogram
// and pairs them into fingerprint addresses. The two-stage peak selection
// (logarithmic-width NMS, then a percentile threshold) is grounded in the
// teacher's PeakExtractor (pkg/fingerprint/peak.go in the teacher repo),
// generalized from its fixed 3x3 neighborhood to the spec's frequency-
// dependent window and replacing its flat amplitude/relative threshold
// with the percentile test spec.md §4.3 requires.
package fingerprint

import "math"

// Peak is an integer (frame, bin) coordinate. Amplitude is used only
// during selection and discarded from the returned value, per spec.md §3.
type Peak struct {
	Frame int
	Bin   int
}

// Config parameterizes peak extraction; see internal/config for the
// recognizer-wide record these fields are drawn from.
type Config struct {
	NMSAlpha    float64 // log-freq NMS half-width coefficient
	NMSTimeHalf int     // NMS time half-width, frames
	Percentile  float64 // 0-100, percentile threshold
}

// freqHalfWidth implements w_f(f) = max(1, ⌊α·log(1+f)⌋).
func freqHalfWidth(alpha float64, bin int) int {
	w := int(math.Floor(alpha * math.Log(1+float64(bin))))
	if w < 1 {
		return 1
	}
	return w
}

type candidate struct {
	frame, bin int
	amp        float64
}

// preferred reports whether a wins a magnitude tie against b: the earlier
// frame wins, and within the same frame the higher bin wins — spec.md
// §4.3 ("discarding the later-time, lower-frequency cell").
func preferred(a, b candidate) bool {
	if a.frame != b.frame {
		return a.frame < b.frame
	}
	return a.bin > b.bin
}

// ExtractPeaks runs logarithmic NMS followed by a percentile threshold
// over magnitude data shaped [frame][bin], returning peaks sorted by
// (frame, bin) ascending.
func ExtractPeaks(data [][]float64, cfg Config) ([]Peak, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, errInvalidSpectrogram()
	}
	numFrames := len(data)
	numBins := len(data[0])

	candidates := nonMaxSuppress(data, numFrames, numBins, cfg)
	peaks := make([]Peak, 0, len(candidates))
	for _, c := range candidates {
		if passesPercentile(data, numFrames, numBins, c, cfg) {
			peaks = append(peaks, Peak{Frame: c.frame, Bin: c.bin})
		}
	}
	return peaks, nil
}

func nonMaxSuppress(data [][]float64, numFrames, numBins int, cfg Config) []candidate {
	wt := cfg.NMSTimeHalf
	if wt < 1 {
		wt = 1
	}

	var out []candidate
	for t := 0; t < numFrames; t++ {
		for f := 0; f < numBins; f++ {
			amp := data[t][f]
			self := candidate{frame: t, bin: f, amp: amp}
			wf := freqHalfWidth(cfg.NMSAlpha, f)

			isPeak := true
			for dt := -wt; dt <= wt && isPeak; dt++ {
				nt := t + dt
				if nt < 0 || nt >= numFrames {
					continue
				}
				for df := -wf; df <= wf; df++ {
					if dt == 0 && df == 0 {
						continue
					}
					nf := f + df
					if nf < 0 || nf >= numBins {
						continue
					}
					neighbor := candidate{frame: nt, bin: nf, amp: data[nt][nf]}
					if neighbor.amp > self.amp {
						isPeak = false
						break
					}
					if neighbor.amp == self.amp && preferred(neighbor, self) {
						isPeak = false
						break
					}
				}
			}
			if isPeak {
				out = append(out, self)
			}
		}
	}
	return out
}

// percentileBucketCount bounds the histogram approximation's resolution,
// avoiding an O(n log n) sort per candidate cell (Design Notes §9).
const percentileBucketCount = 64

func passesPercentile(data [][]float64, numFrames, numBins int, c candidate, cfg Config) bool {
	wt := cfg.NMSTimeHalf * 3
	wf := freqHalfWidth(cfg.NMSAlpha, c.bin) * 3
	if wt < 1 {
		wt = 1
	}
	if wf < 1 {
		wf = 1
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	count := 0
	for dt := -wt; dt <= wt; dt++ {
		nt := c.frame + dt
		if nt < 0 || nt >= numFrames {
			continue
		}
		for df := -wf; df <= wf; df++ {
			nf := c.bin + df
			if nf < 0 || nf >= numBins {
				continue
			}
			v := data[nt][nf]
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
			count++
		}
	}
	if count == 0 || maxV <= minV {
		return true
	}

	hist := make([]int, percentileBucketCount)
	bucketWidth := (maxV - minV) / float64(percentileBucketCount)
	for dt := -wt; dt <= wt; dt++ {
		nt := c.frame + dt
		if nt < 0 || nt >= numFrames {
			continue
		}
		for df := -wf; df <= wf; df++ {
			nf := c.bin + df
			if nf < 0 || nf >= numBins {
				continue
			}
			idx := int((data[nt][nf] - minV) / bucketWidth)
			if idx >= percentileBucketCount {
				idx = percentileBucketCount - 1
			}
			hist[idx]++
		}
	}

	target := int(cfg.Percentile / 100.0 * float64(count))
	cumulative := 0
	threshold := minV
	for bucket, n := range hist {
		cumulative += n
		if cumulative >= target {
			threshold = minV + float64(bucket+1)*bucketWidth
			break
		}
	}

	return c.amp > threshold
}
