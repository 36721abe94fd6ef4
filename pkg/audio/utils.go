package audio

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// LoadAndPreprocess opens an audio file, decodes it with the loader its
// extension selects, and mixes it to mono — the native-rate waveform a CLI
// caller hands to Recognizer.Learn/Identify. Resampling to the recognizer's
// target rate and amplitude normalization happen once, inside the
// recognizer (see pkg/recognizer.fingerprintOf): this function must not
// resample, or a file already decimated to (or near) the target rate would
// fail the recognizer's "sample rate >= 2*target_rate" guard on every call.
func LoadAndPreprocess(filePath string) (Waveform, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return Waveform{}, err
	}
	loader, err := LoaderFor(format)
	if err != nil {
		return Waveform{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Waveform{}, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	stereo, err := loader.Load(context.Background(), file)
	if err != nil {
		return Waveform{}, fmt.Errorf("decode %s: %w", filePath, err)
	}

	return stereo.ToMono()
}

// RMS computes the root-mean-square amplitude of a sample slice.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		sumSquares += s * s
	}
	return math.Sqrt(sumSquares / float64(len(samples)))
}

// ZeroCrossingRate computes the fraction of adjacent sample pairs that
// cross zero.
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) <= 1 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

// FormatFromPath infers the container format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case WAV, MP3, FLAC:
		return Format(ext), nil
	default:
		return "", errInvalidInput("unsupported audio format: " + ext)
	}
}
