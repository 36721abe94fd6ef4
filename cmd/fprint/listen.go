package main

import (
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/go-fprint/fprint/pkg/audio"
)

// newListenCmd captures a fixed-duration clip from the default microphone
// and identifies it — a bounded demo, not a streaming recognizer (spec.md
// §1 Non-goals explicitly excludes streaming operation). Grounded on the
// pack's portaudio usage (DanielCarmel-media-luna, Prayush09) for the
// stream lifecycle; the identification path reuses newIdentifyCmd's logic
// via the shared Recognizer rather than a file on disk.
func newListenCmd() *cobra.Command {
	var seconds float64

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Capture a short clip from the microphone and identify it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dbPath, _ := cmd.Flags().GetString("db")

			r, err := recognizerFromExisting(dbPath, cfg)
			if err != nil {
				return err
			}

			if err := portaudio.Initialize(); err != nil {
				return err
			}
			defer portaudio.Terminate()

			captureRate := 44100
			numSamples := int(seconds * float64(captureRate))
			buffer := make([]int32, numSamples)

			stream, err := portaudio.OpenDefaultStream(1, 0, float64(captureRate), len(buffer), &buffer)
			if err != nil {
				return err
			}
			defer stream.Close()

			success("listening for %.1fs...", seconds)
			if err := stream.Start(); err != nil {
				return err
			}
			time.Sleep(time.Duration(seconds * float64(time.Second)))
			if err := stream.Read(); err != nil {
				return err
			}
			if err := stream.Stop(); err != nil {
				return err
			}

			samples := make([]float64, len(buffer))
			for i, s := range buffer {
				samples[i] = float64(s) / 2147483648.0
			}

			w := audio.Waveform{Samples: samples, SampleRate: captureRate}

			match, ok, err := r.Identify(w)
			if err != nil {
				return err
			}
			if !ok {
				warn("no match")
				return nil
			}

			var name string
			for _, t := range r.ListTracks() {
				if t.ID == match.TrackID {
					name = t.Name
					break
				}
			}
			success("matched %q (track %d, score %d)", name, match.TrackID, match.Score)
			return nil
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 5.0, "capture duration in seconds")
	return cmd
}
