// Package recognizer wires the Resampler, Spectrogram, PeakFinder,
// FingerprintBuilder, FingerprintStore, and Matcher into the five
// top-level operations spec.md §6 names: learn, identify, list_tracks,
// open, save. It is the recognizer-level façade the teacher never had —
// the teacher wired its pipeline ad hoc inside cmd/ main functions. New
// returns a ready-to-use Recognizer with an empty store; Open returns one
// loaded from a database file, plus an error.
package recognizer

import (
	"github.com/go-fprint/fprint/internal/config"
	"github.com/go-fprint/fprint/internal/xerr"
	"github.com/go-fprint/fprint/pkg/audio"
	"github.com/go-fprint/fprint/pkg/fingerprint"
	"github.com/go-fprint/fprint/pkg/matcher"
	"github.com/go-fprint/fprint/pkg/spectrogram"
	"github.com/go-fprint/fprint/pkg/store"
)

// Recognizer is the top-level entry point a caller (CLI or otherwise)
// drives. It owns one Store and one Config for its lifetime.
type Recognizer struct {
	cfg   config.Config
	store *store.Store
}

// New creates a Recognizer with an empty store.
func New(cfg config.Config) *Recognizer {
	return &Recognizer{cfg: cfg, store: store.New()}
}

// Open loads a Recognizer's store from an existing database file.
func Open(path string, cfg config.Config) (*Recognizer, error) {
	s, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	return &Recognizer{cfg: cfg, store: s}, nil
}

// Save persists the recognizer's store to path, atomically.
func (r *Recognizer) Save(path string) error {
	return r.store.Save(path)
}

// Learn extracts fingerprints from a waveform and inserts them as a new
// track under trackName, returning the assigned track id.
func (r *Recognizer) Learn(trackName string, w audio.Waveform) (uint32, error) {
	hashes, err := r.fingerprintOf(w)
	if err != nil {
		return 0, err
	}
	return r.store.Insert(trackName, hashes), nil
}

// Identify runs the full pipeline on a query waveform and returns the
// matched track, or ok=false if no candidate met the score and margin
// thresholds (spec.md §4.6, §7 NoMatch/Ambiguous).
func (r *Recognizer) Identify(w audio.Waveform) (matcher.Match, bool, error) {
	hashes, err := r.fingerprintOf(w)
	if err != nil {
		return matcher.Match{}, false, err
	}

	m, ok := matcher.Query(r.store, hashes, matcher.Config{
		KMin:   r.cfg.KMin,
		SMin:   r.cfg.SMin,
		Margin: r.cfg.Margin,
		Bucket: r.cfg.Bucket,
	})
	return m, ok, nil
}

// ListTracks returns the metadata of every learned track.
func (r *Recognizer) ListTracks() []store.Track {
	return r.store.Tracks()
}

// TrackByName reports whether a track with that exact name already
// exists, for callers that want to avoid duplicate learns (spec.md §9
// Open Question 3 leaves this to the caller).
func (r *Recognizer) TrackByName(name string) (uint32, bool) {
	return r.store.TrackByName(name)
}

// fingerprintOf runs the shared Resample -> STFT -> ExtractPeaks ->
// BuildHashes chain used by both Learn and Identify.
func (r *Recognizer) fingerprintOf(w audio.Waveform) ([]fingerprint.Hash, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.SampleRate < 2*r.cfg.TargetRate {
		return nil, xerr.New(xerr.InvalidInput, "sample rate below twice the target rate")
	}

	resampled, err := audio.Resample(w, r.cfg.TargetRate, r.cfg.FIROrder)
	if err != nil {
		return nil, err
	}
	resampled = audio.Normalize(resampled)

	spec, err := spectrogram.STFT(resampled, r.cfg.WindowLen, r.cfg.Hop)
	if err != nil {
		return nil, err
	}

	peaks, err := fingerprint.ExtractPeaks(spec.Data, fingerprint.Config{
		NMSAlpha:    r.cfg.NMSAlpha,
		NMSTimeHalf: r.cfg.NMSTimeHalf,
		Percentile:  r.cfg.Percentile,
	})
	if err != nil {
		return nil, err
	}

	return fingerprint.BuildHashes(peaks, fingerprint.BuildConfig{
		Fanout: r.cfg.Fanout,
		DtMin:  r.cfg.DtMin,
		DtMax:  r.cfg.DtMax,
		DfMax:  r.cfg.DfMax,
	})
}
