package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineWave(freq float64, sampleRate, numSamples int) Waveform {
	samples := make([]float64, numSamples)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return Waveform{Samples: samples, SampleRate: sampleRate}
}

func TestResampleRejectsRateAboveNyquist(t *testing.T) {
	w := sineWave(440, 44100, 1000)
	_, err := Resample(w, 44100, 101)
	assert.Error(t, err)
}

func TestResampleHalvesSampleCountApproximately(t *testing.T) {
	w := sineWave(440, 44100, 4410)
	out, err := Resample(w, 22050, 101)
	require.NoError(t, err)
	assert.Equal(t, 22050, out.SampleRate)
	assert.InDelta(t, len(w.Samples)/2, len(out.Samples), 5)
}

func TestResampleSameRateIsRejected(t *testing.T) {
	w := sineWave(440, 11025, 512)
	out, err := Resample(w, 11025, 101)
	require.Error(t, err)
	assert.Empty(t, out.Samples)
}

func TestResamplePadsShortInput(t *testing.T) {
	w := sineWave(440, 44100, 10)
	out, err := Resample(w, 11025, 101)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Samples)
}

func TestDesignLowPassUnityDCGain(t *testing.T) {
	taps := designLowPass(5000, 44100, 101)
	sum := 0.0
	for _, tp := range taps {
		sum += tp
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
