package audio

import "math"

// Normalize adjusts a waveform's amplitude so its peak sample sits at
// unity, leaving already-near-unity or silent input untouched.
func Normalize(w Waveform) Waveform {
	if len(w.Samples) == 0 {
		return w
	}

	maxAbs := 0.0
	for _, sample := range w.Samples {
		if abs := math.Abs(sample); abs > maxAbs {
			maxAbs = abs
		}
	}
	if maxAbs < 0.001 || math.Abs(maxAbs-1.0) < 0.001 {
		return w
	}

	normalized := make([]float64, len(w.Samples))
	for i, sample := range w.Samples {
		normalized[i] = sample / maxAbs
	}
	return Waveform{Samples: normalized, SampleRate: w.SampleRate}
}
