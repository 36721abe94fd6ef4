package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveformValidateRejectsEmpty(t *testing.T) {
	err := Waveform{SampleRate: 44100}.Validate()
	assert.Error(t, err)
}

func TestWaveformValidateRejectsNonFinite(t *testing.T) {
	w := Waveform{Samples: []float64{0.1, math.NaN()}, SampleRate: 44100}
	err := w.Validate()
	assert.Error(t, err)
}

func TestWaveformValidateAcceptsClean(t *testing.T) {
	w := Waveform{Samples: []float64{0.1, -0.2, 0.3}, SampleRate: 44100}
	assert.NoError(t, w.Validate())
}

func TestStereoToMonoAverages(t *testing.T) {
	s := StereoWaveform{Samples: []float64{1.0, -1.0, 0.5, 0.5}, SampleRate: 44100, Channels: 2}
	mono, err := s.ToMono()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.5}, mono.Samples)
}

func TestStereoToMonoRejectsZeroChannels(t *testing.T) {
	s := StereoWaveform{Samples: []float64{1.0}, SampleRate: 44100, Channels: 0}
	_, err := s.ToMono()
	assert.Error(t, err)
}

func TestNormalizeScalesToUnity(t *testing.T) {
	w := Waveform{Samples: []float64{0.1, -0.2, 0.05}, SampleRate: 44100}
	out := Normalize(w)
	assert.InDelta(t, -1.0, out.Samples[1], 1e-9)
}

func TestNormalizeLeavesSilenceAlone(t *testing.T) {
	w := Waveform{Samples: []float64{0.0001, -0.0002}, SampleRate: 44100}
	out := Normalize(w)
	assert.Equal(t, w.Samples, out.Samples)
}

func TestFormatFromPathRejectsUnknown(t *testing.T) {
	_, err := FormatFromPath("track.ogg")
	assert.Error(t, err)
}

func TestFormatFromPathRecognizesWAV(t *testing.T) {
	f, err := FormatFromPath("track.WAV")
	require.NoError(t, err)
	assert.Equal(t, WAV, f)
}

func TestRMSOfZeroIsZero(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
}

func TestZeroCrossingRateCountsSignChanges(t *testing.T) {
	rate := ZeroCrossingRate([]float64{1, -1, 1, -1})
	assert.Equal(t, 1.0, rate)
}
