// Command fprint is the CLI surface over the recognizer core: learn,
// identify, list, and a bounded microphone demo. Flag/subcommand wiring
// follows the teacher's cmd/ layout in shape only — the teacher used the
// stdlib flag package per-binary; this CLI is grounded on the pack's
// cobra-based examples instead, since cobra is the dependency SPEC_FULL.md
// commits to for the ambient CLI stack.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load() // optional .env for e.g. FPRINT_DB_PATH; absence is not an error

	root := &cobra.Command{
		Use:   "fprint",
		Short: "Acoustic fingerprint recognizer",
	}

	root.PersistentFlags().String("config", "", "path to a YAML config file overriding defaults")
	dbDefault := os.Getenv("FPRINT_DB_PATH")
	if dbDefault == "" {
		dbDefault = "fprint.db"
	}
	root.PersistentFlags().String("db", dbDefault, "path to the fingerprint database file")

	root.AddCommand(
		newLearnCmd(),
		newLearnDirCmd(),
		newIdentifyCmd(),
		newListCmd(),
		newListenCmd(),
		newInfoCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
