package fingerprint

import "github.com/go-fprint/fprint/internal/xerr"

func errInvalidSpectrogram() error {
	return xerr.New(xerr.InvalidInput, "fingerprint: empty or malformed spectrogram")
}

func errTooFewPeaks() error {
	return xerr.New(xerr.TooShort, "fingerprint: not enough peaks to build any address")
}
