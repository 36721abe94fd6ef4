// Package spectrogram computes the short-time Fourier transform the
// recognizer extracts spectral peaks from. The FFT itself is delegated to
// the teacher's own DSP dependency (github.com/mjibson/go-dsp/fft); this
// package only owns framing, windowing, and magnitude extraction.
package spectrogram

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/go-fprint/fprint/internal/xerr"
	"github.com/go-fprint/fprint/pkg/audio"
)

// Spectrogram is a dense, non-negative magnitude matrix: Data[frame][bin].
// Bin 0 is DC; the last bin is Nyquist. Shape is (TimeBins, FreqBins) with
// FreqBins == WindowLen/2 + 1, per the one-sided spectrum of a real signal.
type Spectrogram struct {
	Data      [][]float64
	TimeBins  int
	FreqBins  int
	DeltaTime float64 // seconds per frame (hop / sample rate)
	DeltaFreq float64 // Hz per bin (sample rate / window length)
}

// hammingWindow returns w(n) = 0.54 - 0.46*cos(2πn/(N-1)) for n in [0, n).
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// frameCount is the number of STFT frames spec.md §8 property 3 requires:
// ⌈(len - windowLen) / hop⌉ + 1, with the final partial frame zero-padded.
func frameCount(numSamples, windowLen, hop int) int {
	if numSamples <= windowLen {
		return 1
	}
	remaining := numSamples - windowLen
	return (remaining+hop-1)/hop + 1
}

// STFT computes the magnitude spectrogram of a waveform already resampled
// to the recognizer's target rate.
func STFT(w audio.Waveform, windowLen, hop int) (*Spectrogram, error) {
	if windowLen <= 0 || hop <= 0 {
		return nil, xerr.New(xerr.InvalidInput, "window length and hop must be positive")
	}
	if len(w.Samples) == 0 {
		return nil, xerr.New(xerr.InvalidInput, "empty waveform")
	}
	if len(w.Samples) < windowLen {
		return nil, xerr.New(xerr.TooShort, "fewer samples than one STFT window after decimation")
	}

	window := hammingWindow(windowLen)
	numFrames := frameCount(len(w.Samples), windowLen, hop)
	numBins := windowLen/2 + 1

	data := make([][]float64, numFrames)
	frame := make([]float64, windowLen)
	complexFrame := make([]complex128, windowLen)

	for t := 0; t < numFrames; t++ {
		start := t * hop
		end := start + windowLen
		for i := range frame {
			if start+i < len(w.Samples) && start+i < end {
				frame[i] = w.Samples[start+i] * window[i]
			} else {
				frame[i] = 0
			}
		}
		for i, v := range frame {
			complexFrame[i] = complex(v, 0)
		}

		spectrum := fft.FFT(complexFrame)
		row := make([]float64, numBins)
		for k := 0; k < numBins; k++ {
			row[k] = cmplxAbs(spectrum[k])
		}
		data[t] = row
	}

	return &Spectrogram{
		Data:      data,
		TimeBins:  numFrames,
		FreqBins:  numBins,
		DeltaTime: float64(hop) / float64(w.SampleRate),
		DeltaFreq: float64(w.SampleRate) / float64(windowLen),
	}, nil
}

func cmplxAbs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}
