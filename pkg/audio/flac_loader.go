package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/mewkiz/flac"
)

// FLACLoader implements Loader for the FLAC container.
type FLACLoader struct{}

// NewFLACLoader creates a new FLAC loader.
func NewFLACLoader() *FLACLoader {
	return &FLACLoader{}
}

// Load reads and decodes a FLAC file into interleaved PCM samples.
func (l *FLACLoader) Load(ctx context.Context, r io.Reader) (StereoWaveform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("flac: read: %w", err)
	}

	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("flac: new decoder: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	sampleRate := int(info.SampleRate)
	channels := int(info.NChannels)
	maxValue := math.Pow(2, float64(info.BitsPerSample-1)) - 1

	samples := make([]float64, int(info.NSamples)*channels)
	sampleIndex := 0
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return StereoWaveform{}, fmt.Errorf("flac: parse frame: %w", err)
		}

		for ch := 0; ch < len(frame.Subframes); ch++ {
			subframe := frame.Subframes[ch]
			for j := 0; j < len(subframe.Samples); j++ {
				if idx := sampleIndex + j*channels + ch; idx < len(samples) {
					samples[idx] = float64(subframe.Samples[j]) / maxValue
				}
			}
		}
		sampleIndex += len(frame.Subframes[0].Samples) * channels
	}

	return StereoWaveform{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}
