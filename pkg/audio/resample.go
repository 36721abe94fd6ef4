package audio

import "math"

// designLowPass builds a linear-phase FIR low-pass filter of length order
// (forced odd so it has a well-defined center tap) via the windowed-sinc
// method with a Hamming window, matching the Hamming formula used
// throughout this pipeline's STFT stage: w(n) = 0.54 - 0.46*cos(2πn/(N-1)).
//
// cutoffHz is the -6dB point; sampleRate is the rate the filter runs at
// (the source rate, before decimation).
func designLowPass(cutoffHz float64, sampleRate int, order int) []float64 {
	if order%2 == 0 {
		order++
	}
	taps := make([]float64, order)
	fc := cutoffHz / float64(sampleRate) // normalized cutoff, cycles/sample
	center := float64(order-1) / 2.0

	for n := 0; n < order; n++ {
		m := float64(n) - center
		var sinc float64
		if m == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*m) / (math.Pi * m)
		}
		window := 0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(order-1))
		taps[n] = sinc * window
	}

	// Normalize for unity gain at DC.
	sum := 0.0
	for _, t := range taps {
		sum += t
	}
	if sum != 0 {
		for i := range taps {
			taps[i] /= sum
		}
	}
	return taps
}

// convolve performs direct time-domain FIR filtering with the taps centred
// on each input sample, zero-padding the input at both ends (the central
// len(signal) samples of the full convolution), so out[i] is aligned with
// signal[i] and the filter's group delay is already compensated.
func convolve(signal, taps []float64) []float64 {
	out := make([]float64, len(signal))
	half := len(taps) / 2
	for i := range signal {
		var acc float64
		for k, tap := range taps {
			j := i - half + k
			if j >= 0 && j < len(signal) {
				acc += signal[j] * tap
			}
		}
		out[i] = acc
	}
	return out
}

// Resample converts w from its current rate to targetRate by designing an
// anti-aliasing FIR low-pass at the target Nyquist, convolving, and
// decimating by the integer factor D = round(Fs/Fs_target). targetRate
// must not exceed half the source rate. firOrder is the filter length
// (spec default 101); the caller passes config.FIROrder.
//
// Group delay (order-1)/2 is compensated inside convolve, which centres the
// filter on each input sample, so the first output sample corresponds to
// input sample 0 — applied identically regardless of caller, so learn and
// query paths stay time-aligned.
func Resample(w Waveform, targetRate, firOrder int) (Waveform, error) {
	if targetRate <= 0 {
		return Waveform{}, errInvalidInput("target rate must be positive")
	}
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}
	if float64(targetRate) > float64(w.SampleRate)/2.0 {
		return Waveform{}, errInvalidInput("target rate must not exceed half the source rate")
	}
	if w.SampleRate == targetRate {
		return w, nil
	}

	d := int(math.Round(float64(w.SampleRate) / float64(targetRate)))
	if d < 1 {
		d = 1
	}

	samples := w.Samples
	if len(samples) < firOrder {
		padded := make([]float64, firOrder)
		copy(padded, samples)
		samples = padded
	}

	taps := designLowPass(float64(targetRate)/2.0, w.SampleRate, firOrder)
	filtered := convolve(samples, taps)

	decimated := make([]float64, 0, len(filtered)/d+1)
	for i := 0; i < len(filtered); i += d {
		decimated = append(decimated, filtered[i])
	}

	return Waveform{Samples: decimated, SampleRate: w.SampleRate / d}, nil
}
