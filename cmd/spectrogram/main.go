// Command spectrogram is a diagnostic tool: it loads an audio file,
// preprocesses it through the recognizer's Resample step, computes the
// STFT, and renders it as a PNG heatmap. It is the "plotting collaborator"
// Design Notes §9 calls for — the core itself never touches an image.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-fprint/fprint/internal/config"
	"github.com/go-fprint/fprint/pkg/audio"
	"github.com/go-fprint/fprint/pkg/spectrogram"
)

func main() {
	windowLen := flag.Int("window", 1024, "STFT window length in samples")
	hop := flag.Int("hop", 512, "STFT hop in samples")
	targetRate := flag.Int("rate", 11025, "target sample rate after decimation")
	outputDir := flag.String("output", ".", "output directory for the PNG")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: spectrogram [options] <audio-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	filePath := flag.Arg(0)

	cfg := config.Default()
	native, err := audio.LoadAndPreprocess(filePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	w, err := audio.Resample(native, *targetRate, cfg.FIROrder)
	if err != nil {
		fmt.Printf("Error resampling: %v\n", err)
		os.Exit(1)
	}
	w = audio.Normalize(w)

	spec, err := spectrogram.STFT(w, *windowLen, *hop)
	if err != nil {
		fmt.Printf("Error computing spectrogram: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Time bins: %d  Freq bins: %d  Δt=%.4fs  Δf=%.2fHz\n",
		spec.TimeBins, spec.FreqBins, spec.DeltaTime, spec.DeltaFreq)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	base := filepath.Base(filePath)
	base = base[:len(base)-len(filepath.Ext(base))]
	outPath := filepath.Join(*outputDir, base+"_spectrogram.png")

	if err := spectrogram.SaveImage(spec, outPath); err != nil {
		fmt.Printf("Error saving spectrogram image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s\n", outPath)
}
