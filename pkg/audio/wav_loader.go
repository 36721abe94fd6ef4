package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"
)

// WAVLoader implements Loader for the WAV container.
type WAVLoader struct{}

// NewWAVLoader creates a new WAV loader.
func NewWAVLoader() *WAVLoader {
	return &WAVLoader{}
}

// Load reads and decodes a WAV file into interleaved PCM samples.
func (l *WAVLoader) Load(ctx context.Context, r io.Reader) (StereoWaveform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("wav: read: %w", err)
	}

	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return StereoWaveform{}, errInvalidInput("invalid WAV file")
	}

	format := decoder.Format()
	sampleRate := int(format.SampleRate)
	channels := int(format.NumChannels)
	bitDepth := int(decoder.BitDepth)

	decoder.FwdToPCM()
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("wav: decode PCM: %w", err)
	}

	maxValue := math.Pow(2, float64(bitDepth-1))
	samples := make([]float64, len(buf.Data))
	for i, sample := range buf.Data {
		samples[i] = float64(sample) / maxValue
	}

	return StereoWaveform{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}
