package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-fprint/fprint/pkg/fingerprint"
	"github.com/go-fprint/fprint/pkg/store"
)

func defaultCfg() Config {
	return Config{KMin: 5, SMin: 5, Margin: 2, Bucket: 1}
}

func TestQueryEmptyStoreReturnsNoMatch(t *testing.T) {
	s := store.New()
	_, ok := Query(s, []fingerprint.Hash{{Address: 1, AnchorTime: 0}}, defaultCfg())
	assert.False(t, ok)
}

func TestQueryRewardsCoherentOffset(t *testing.T) {
	s := store.New()
	var hashes []fingerprint.Hash
	for i := 0; i < 8; i++ {
		hashes = append(hashes, fingerprint.Hash{Address: uint32(i), AnchorTime: 100 + i})
	}
	trackID := s.Insert("song", hashes)

	var query []fingerprint.Hash
	for i := 0; i < 8; i++ {
		query = append(query, fingerprint.Hash{Address: uint32(i), AnchorTime: i})
	}

	m, ok := Query(s, query, defaultCfg())
	require.True(t, ok)
	assert.Equal(t, trackID, m.TrackID)
	assert.Equal(t, 8, m.Score)
}

func TestQueryRejectsBelowKMin(t *testing.T) {
	s := store.New()
	s.Insert("song", []fingerprint.Hash{
		{Address: 1, AnchorTime: 10},
		{Address: 2, AnchorTime: 11},
	})

	_, ok := Query(s, []fingerprint.Hash{
		{Address: 1, AnchorTime: 0},
		{Address: 2, AnchorTime: 1},
	}, defaultCfg())
	assert.False(t, ok)
}

func TestQueryAmbiguousReturnsNoMatch(t *testing.T) {
	s := store.New()
	var hashesA, hashesB []fingerprint.Hash
	for i := 0; i < 6; i++ {
		hashesA = append(hashesA, fingerprint.Hash{Address: uint32(i), AnchorTime: i})
		hashesB = append(hashesB, fingerprint.Hash{Address: uint32(i), AnchorTime: i})
	}
	s.Insert("song-a", hashesA)
	s.Insert("song-b", hashesB)

	var query []fingerprint.Hash
	for i := 0; i < 6; i++ {
		query = append(query, fingerprint.Hash{Address: uint32(i), AnchorTime: i})
	}

	_, ok := Query(s, query, defaultCfg())
	assert.False(t, ok, "two equally strong candidates must not produce an arbitrary pick")
}

func TestBestBucketGroupsByWidth(t *testing.T) {
	deltas := []int{10, 10, 11, 20}
	score := bestBucket(deltas, 2)
	assert.Equal(t, 3, score)
}

func TestBestBucketTiesFavorZero(t *testing.T) {
	deltas := []int{5, 5, -5, -5}
	// both buckets have count 2; the one closer to zero should be chosen,
	// though the count returned is the same either way.
	assert.Equal(t, 2, bestBucket(deltas, 1))
}

func TestFloorDivNegative(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-1, 2))
	assert.Equal(t, -3, floorDiv(-5, 2))
	assert.Equal(t, 2, floorDiv(5, 2))
}
