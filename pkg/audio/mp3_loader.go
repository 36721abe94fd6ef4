package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Loader implements Loader for the MP3 container.
type MP3Loader struct{}

// NewMP3Loader creates a new MP3 loader.
func NewMP3Loader() *MP3Loader {
	return &MP3Loader{}
}

// Load reads and decodes an MP3 file into interleaved PCM samples.
func (l *MP3Loader) Load(ctx context.Context, r io.Reader) (StereoWaveform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("mp3: read: %w", err)
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return StereoWaveform{}, fmt.Errorf("mp3: new decoder: %w", err)
	}

	sampleRate := decoder.SampleRate()
	const channels = 2 // go-mp3 always decodes to interleaved stereo

	numSamples := int(decoder.Length() / 4) // 2 bytes/sample * 2 channels
	pcmData := make([]byte, decoder.Length())
	if _, err := io.ReadFull(decoder, pcmData); err != nil && err != io.EOF {
		return StereoWaveform{}, fmt.Errorf("mp3: decode PCM: %w", err)
	}

	samples := make([]float64, numSamples*channels)
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < channels; ch++ {
			idx := i*4 + ch*2
			if idx+1 >= len(pcmData) {
				continue
			}
			sample := int16(pcmData[idx]) | (int16(pcmData[idx+1]) << 8)
			samples[i*channels+ch] = float64(sample) / 32768.0
		}
	}

	return StereoWaveform{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}
