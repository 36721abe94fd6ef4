package recognizer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fprint/fprint/internal/config"
	"github.com/go-fprint/fprint/pkg/audio"
)

// toneWithHarmonics builds a waveform rich enough in spectral structure to
// produce stable peaks across several seconds, standing in for the
// fixtures spec.md's scenarios (S2, S3) describe in prose.
func toneWithHarmonics(fundamental float64, sampleRate int, seconds float64) audio.Waveform {
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = 0.6*math.Sin(2*math.Pi*fundamental*t) +
			0.3*math.Sin(2*math.Pi*fundamental*2*t) +
			0.1*math.Sin(2*math.Pi*fundamental*3*t)
	}
	return audio.Waveform{Samples: samples, SampleRate: sampleRate}
}

func testConfig() config.Config {
	return config.Default()
}

func TestIdentifyOnEmptyStoreReturnsNoMatch(t *testing.T) {
	r := New(testConfig())
	w := toneWithHarmonics(440, 44100, 3)
	_, ok, err := r.Identify(w)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLearnThenIdentifySameClipMatches(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)
	w := toneWithHarmonics(440, 44100, 10)

	id, err := r.Learn("tone-440", w)
	require.NoError(t, err)

	match, ok, err := r.Identify(w)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, match.TrackID)
}

func TestIdentifyExcerptMatchesFullTrack(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)
	full := toneWithHarmonics(440, 44100, 15)
	_, err := r.Learn("tone-440", full)
	require.NoError(t, err)

	start := 5 * full.SampleRate
	end := 10 * full.SampleRate
	excerpt := audio.Waveform{Samples: full.Samples[start:end], SampleRate: full.SampleRate}

	match, ok, err := r.Identify(excerpt)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(0), match.TrackID)
}

func TestSaveLoadPreservesIdentification(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)
	w := toneWithHarmonics(523, 44100, 8)
	id, err := r.Learn("tone-523", w)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "db.bin")
	require.NoError(t, r.Save(path))

	reopened, err := Open(path, cfg)
	require.NoError(t, err)

	match, ok, err := reopened.Identify(w)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, match.TrackID)
}

func TestIdentifyRejectsTrackAbsentFromStore(t *testing.T) {
	cfg := testConfig()
	r := New(cfg)
	_, err := r.Learn("tone-440", toneWithHarmonics(440, 44100, 10))
	require.NoError(t, err)

	other := toneWithHarmonics(880, 44100, 5)
	_, ok, err := r.Identify(other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListTracksReportsLearned(t *testing.T) {
	r := New(testConfig())
	_, err := r.Learn("tone-440", toneWithHarmonics(440, 44100, 5))
	require.NoError(t, err)

	tracks := r.ListTracks()
	require.Len(t, tracks, 1)
	assert.Equal(t, "tone-440", tracks[0].Name)
}
