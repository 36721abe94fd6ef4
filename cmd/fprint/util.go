package main

import (
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/go-fprint/fprint/pkg/audio"
)

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// audioFilesIn lists the files directly inside dir whose extension is a
// format audio.LoaderFor recognizes.
func audioFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := audio.FormatFromPath(path); err == nil {
			files = append(files, path)
		}
	}
	return files, nil
}
