package main

import (
	"github.com/spf13/cobra"

	"github.com/go-fprint/fprint/pkg/audio"
)

func newIdentifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <audio-file>",
		Short: "Identify a short recording against the learned database",
		Args:  cobra.ExactArgs(1),
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

			w, err := audio.LoadAndPreprocess(args[0])
			if err != nil {
				return err
			}

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
	return cmd
}
