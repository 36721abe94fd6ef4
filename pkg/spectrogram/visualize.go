package spectrogram

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// SaveImage renders a spectrogram to a PNG heatmap — the diagnostic
// channel Design Notes §9 calls for in place of the teacher's inline
// plotting: the core never calls this, only the plotting collaborator
// (cmd/spectrogram) does.
func SaveImage(s *Spectrogram, path string) error {
	if s == nil || len(s.Data) == 0 || len(s.Data[0]) == 0 {
		return fmt.Errorf("spectrogram: nothing to render")
	}

	width, height := s.TimeBins, s.FreqBins
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	maxVal := 0.0
	for _, row := range s.Data {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	for t := 0; t < width; t++ {
		for f := 0; f < height; f++ {
			value := s.Data[t][height-f-1] / maxVal // invert freq axis, low at bottom
			if value < 0 {
				value = 0
			}
			if value > 1 {
				value = 1
			}
			img.Set(t, f, heatColor(value))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spectrogram: create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("spectrogram: encode PNG: %w", err)
	}
	return nil
}

// heatColor maps [0,1] to blue -> cyan -> green -> yellow -> red.
func heatColor(value float64) color.RGBA {
	r, g, b := 0, 0, 0
	switch {
	case value < 0.25:
		v := value * 4
		b = 255
		g = int(v * 255)
	case value < 0.5:
		v := (value - 0.25) * 4
		g = 255
		b = 255 - int(v*255)
	case value < 0.75:
		v := (value - 0.5) * 4
		g = 255
		r = int(v * 255)
	default:
		v := (value - 0.75) * 4
		r = 255
		g = 255 - int(v*255)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}
