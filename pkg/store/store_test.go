package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fprint/fprint/internal/xerr"
	"github.com/go-fprint/fprint/pkg/fingerprint"
)

func TestInsertAndRecall(t *testing.T) {
	s := New()
	id := s.Insert("track-a", []fingerprint.Hash{
		{Address: 1, AnchorTime: 10},
		{Address: 2, AnchorTime: 11},
	})

	postings := s.Recall(1)
	require.Len(t, postings, 1)
	assert.Equal(t, id, postings[0].TrackID)
	assert.Equal(t, uint32(10), postings[0].AnchorTime)
}

func TestTracksReturnsInsertedMetadata(t *testing.T) {
	s := New()
	s.Insert("track-a", []fingerprint.Hash{{Address: 1, AnchorTime: 0}})
	s.Insert("track-b", []fingerprint.Hash{{Address: 2, AnchorTime: 0}, {Address: 3, AnchorTime: 1}})

	tracks := s.Tracks()
	require.Len(t, tracks, 2)
	assert.Equal(t, "track-a", tracks[0].Name)
	assert.Equal(t, uint32(2), tracks[1].FingerprintCount)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	s.Insert("song", []fingerprint.Hash{
		{Address: 42, AnchorTime: 7},
		{Address: 42, AnchorTime: 9},
		{Address: 99, AnchorTime: 3},
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, s.Tracks(), loaded.Tracks())
	assert.ElementsMatch(t, s.Recall(42), loaded.Recall(42))
	assert.ElementsMatch(t, s.Recall(99), loaded.Recall(99))
}

func TestLoadRejectsCorruptedTail(t *testing.T) {
	s := New()
	s.Insert("song", []fingerprint.Hash{{Address: 1, AnchorTime: 0}})

	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := make([]byte, len(data))
	copy(corrupted, data)
	for i := len(corrupted) - 4; i < len(corrupted); i++ {
		corrupted[i] ^= 0xFF
	}
	require.NoError(t, os.WriteFile(path, corrupted, 0644))

	_, err = Load(path)
	require.Error(t, err)
	assert.Equal(t, xerr.IndexCorrupt, xerr.KindOf(err))
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")
	require.NoError(t, os.WriteFile(path, []byte("not-a-store-file-at-all"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, xerr.IndexCorrupt, xerr.KindOf(err))
}

func TestMergeRenumbersDisjointTrackIDs(t *testing.T) {
	a := New()
	a.Insert("a1", []fingerprint.Hash{{Address: 1, AnchorTime: 0}})

	b := New()
	idB := b.Insert("b1", []fingerprint.Hash{{Address: 1, AnchorTime: 5}})

	a.Merge(b)
	tracks := a.Tracks()
	require.Len(t, tracks, 2)
	assert.NotEqual(t, tracks[0].ID, tracks[1].ID)

	postings := a.Recall(1)
	assert.Len(t, postings, 2)
	_ = idB
}

func TestTrackByNameReportsExistence(t *testing.T) {
	s := New()
	s.Insert("known", nil)
	_, ok := s.TrackByName("known")
	assert.True(t, ok)
	_, ok = s.TrackByName("unknown")
	assert.False(t, ok)
}
