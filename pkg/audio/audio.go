// Package audio holds the waveform type the core operates on and the
// decoding collaborators (WAV/MP3/FLAC) that produce one from a file.
// Decoding, capture, and playback are explicitly collaborator concerns —
// the core downstream of Waveform never calls this package's Loader
// implementations; it uses only the Waveform type and the Resample and
// Normalize helpers.
package audio

import (
	"context"
	"io"
	"math"
)

// Format names a container the core's Loader collaborators can decode.
type Format string

const (
	WAV  Format = "wav"
	MP3  Format = "mp3"
	FLAC Format = "flac"
)

// Waveform is mono, floating-point samples in [-1, 1] paired with the
// sample rate they were captured or decoded at.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration reports the waveform's length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Validate checks the invariants every core operation assumes of a
// Waveform before it reaches the resampler.
func (w Waveform) Validate() error {
	if len(w.Samples) == 0 {
		return errInvalidInput("empty waveform")
	}
	if w.SampleRate <= 0 {
		return errInvalidInput("sample rate must be positive")
	}
	for _, s := range w.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return errInvalidInput("waveform contains non-finite sample")
		}
	}
	return nil
}

// StereoWaveform is the pre-mono-mixdown shape a multi-channel decode
// produces; ToMono averages channels the way a real capture pipeline does.
type StereoWaveform struct {
	Samples    []float64 // interleaved, Channels per frame
	SampleRate int
	Channels   int
}

// ToMono averages interleaved channels into a single Waveform. Already-mono
// input is returned unchanged.
func (s StereoWaveform) ToMono() (Waveform, error) {
	if s.Channels <= 0 {
		return Waveform{}, errInvalidInput("channel count must be positive")
	}
	if s.Channels == 1 {
		return Waveform{Samples: s.Samples, SampleRate: s.SampleRate}, nil
	}
	frames := len(s.Samples) / s.Channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < s.Channels; ch++ {
			sum += s.Samples[i*s.Channels+ch]
		}
		mono[i] = sum / float64(s.Channels)
	}
	return Waveform{Samples: mono, SampleRate: s.SampleRate}, nil
}

// Loader decodes an audio container into PCM samples. Implementations live
// one per format (wav_loader.go, mp3_loader.go, flac_loader.go); none of
// them are imported by any package downstream of audio.Waveform.
type Loader interface {
	Load(ctx context.Context, r io.Reader) (StereoWaveform, error)
}

// LoaderFor returns the collaborator Loader for a given container format.
func LoaderFor(format Format) (Loader, error) {
	switch format {
	case WAV:
		return NewWAVLoader(), nil
	case MP3:
		return NewMP3Loader(), nil
	case FLAC:
		return NewFLACLoader(), nil
	default:
		return nil, errInvalidInput("unsupported audio format: " + string(format))
	}
}
