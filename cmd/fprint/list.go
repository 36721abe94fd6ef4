package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every track learned into the database",
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

			tracks := r.ListTracks()
			if len(tracks) == 0 {
				warn("no tracks learned yet")
				return nil
			}

			bold := color.New(color.Bold)
			bold.Printf("%-6s %-32s %s\n", "ID", "NAME", "FINGERPRINTS")
			for _, t := range tracks {
				fmt.Printf("%-6d %-32s %d\n", t.ID, t.Name, t.FingerprintCount)
			}
			return nil
		},
	}
	return cmd
}
