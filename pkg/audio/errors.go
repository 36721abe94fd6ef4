package audio

import "github.com/go-fprint/fprint/internal/xerr"

func errInvalidInput(msg string) error {
	return xerr.New(xerr.InvalidInput, msg)
}
