package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-fprint/fprint/pkg/audio"
)

// newInfoCmd folds the teacher's standalone cmd/audioinfo binary into a
// subcommand of the single fprint CLI, rebuilt against the new Waveform
// API (the old tool called methods on a removed AudioUtils/SpectralAnalyzer
// pair that no longer exist).
func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <audio-file>",
		Short: "Print waveform statistics for an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			w, err := audio.LoadAndPreprocess(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("File:        %s\n", filepath.Base(args[0]))
			fmt.Printf("Sample Rate: %d Hz\n", w.SampleRate)
			fmt.Printf("Duration:    %.2f seconds\n", w.Duration())
			fmt.Printf("Samples:     %d\n", len(w.Samples))
			fmt.Printf("RMS:         %.6f\n", audio.RMS(w.Samples))
			fmt.Printf("Zero Cross:  %.6f\n", audio.ZeroCrossingRate(w.Samples))
			return nil
		},
	}
	return cmd
}
