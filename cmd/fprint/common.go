package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-fprint/fprint/internal/config"
	"github.com/go-fprint/fprint/pkg/recognizer"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openOrNew opens the database at dbPath if it already exists, otherwise
// returns a fresh, empty recognizer — so `learn` works against a
// not-yet-created database on first use.
func openOrNew(dbPath string, cfg config.Config) (*recognizer.Recognizer, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return recognizer.New(cfg), nil
		}
		return nil, err
	}
	return recognizer.Open(dbPath, cfg)
}

// recognizerFromExisting is openOrNew under the name the read-only
// commands use: an absent database yields an empty store rather than an
// error — identifying against an empty store is scenario S1 (expect
// none), not a failure.
func recognizerFromExisting(dbPath string, cfg config.Config) (*recognizer.Recognizer, error) {
	return openOrNew(dbPath, cfg)
}

func warn(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func fail(format string, args ...any) {
	color.New(color.FgRed).Printf(format+"\n", args...)
}

func success(format string, args ...any) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}
