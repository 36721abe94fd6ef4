package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-fprint/fprint/pkg/audio"
)

func newLearnCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "learn <audio-file>",
		Short: "Learn a track from an audio file and store its fingerprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dbPath, _ := cmd.Flags().GetString("db")

			r, err := openOrNew(dbPath, cfg)
			if err != nil {
				return err
			}

			trackName := name
			if trackName == "" {
				base := filepath.Base(args[0])
				trackName = base[:len(base)-len(filepath.Ext(base))]
			}

			w, err := audio.LoadAndPreprocess(args[0])
			if err != nil {
				return err
			}

			id, err := r.Learn(trackName, w)
			if err != nil {
				return err
			}
			if err := r.Save(dbPath); err != nil {
				return err
			}

			success("learned %q as track %d", trackName, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "track name to store (default: file name without extension)")
	return cmd
}

func newLearnDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn-dir <directory>",
		Short: "Learn every audio file in a directory as a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dbPath, _ := cmd.Flags().GetString("db")

			r, err := openOrNew(dbPath, cfg)
			if err != nil {
				return err
			}

			files, err := audioFilesIn(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				warn("no supported audio files found in %s", args[0])
				return nil
			}

			bar := newProgressBar(len(files), "learning")
			learned := 0
			for _, f := range files {
				w, err := audio.LoadAndPreprocess(f)
				if err != nil {
					warn("skipping %s: %v", f, err)
					bar.Add(1)
					continue
				}
				base := filepath.Base(f)
				trackName := base[:len(base)-len(filepath.Ext(base))]
				if _, err := r.Learn(trackName, w); err != nil {
					warn("skipping %s: %v", f, err)
					bar.Add(1)
					continue
				}
				learned++
				bar.Add(1)
			}

			if err := r.Save(dbPath); err != nil {
				return err
			}
			fmt.Println()
			success("learned %d/%d files into %s", learned, len(files), dbPath)
			return nil
		},
	}
	return cmd
}
