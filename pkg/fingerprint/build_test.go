package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBuildCfg() BuildConfig {
	return BuildConfig{Fanout: 5, DtMin: 1, DtMax: 32, DfMax: 64}
}

func TestBuildHashesRejectsEmpty(t *testing.T) {
	_, err := BuildHashes(nil, defaultBuildCfg())
	assert.Error(t, err)
}

func TestBuildHashesRespectsFanoutCap(t *testing.T) {
	peaks := []Peak{{Frame: 0, Bin: 100}}
	for i := 1; i <= 10; i++ {
		peaks = append(peaks, Peak{Frame: i, Bin: 100})
	}

	hashes, err := BuildHashes(peaks, BuildConfig{Fanout: 3, DtMin: 1, DtMax: 32, DfMax: 64})
	require.NoError(t, err)

	anchorCount := 0
	for _, h := range hashes {
		if h.AnchorTime == 0 {
			anchorCount++
		}
	}
	assert.Equal(t, 3, anchorCount)
}

func TestBuildHashesExcludesOutOfRangeTargets(t *testing.T) {
	peaks := []Peak{
		{Frame: 0, Bin: 100},
		{Frame: 5, Bin: 200}, // beyond DfMax
		{Frame: 40, Bin: 100}, // beyond DtMax
	}
	hashes, err := BuildHashes(peaks, defaultBuildCfg())
	require.Error(t, err)
	assert.Empty(t, hashes)
}

func TestPackUnpackAddressRoundTrips(t *testing.T) {
	addr := packAddress(123, 456, 17)
	anchor, target, dt := UnpackAddress(addr)
	assert.Equal(t, 123, anchor)
	assert.Equal(t, 456, target)
	assert.Equal(t, 17, dt)
}

func TestPackAddressIsCollisionFreeWithinRange(t *testing.T) {
	seen := make(map[uint32]bool)
	for f := 0; f < 8; f++ {
		for g := 0; g < 8; g++ {
			for dt := 0; dt < 8; dt++ {
				addr := packAddress(f, g, dt)
				assert.False(t, seen[addr], "collision at f=%d g=%d dt=%d", f, g, dt)
				seen[addr] = true
			}
		}
	}
}

func TestBuildHashesClosestFirst(t *testing.T) {
	peaks := []Peak{
		{Frame: 0, Bin: 100},
		{Frame: 10, Bin: 100},
		{Frame: 2, Bin: 100},
	}
	targets := targetZone(peaks, 0, BuildConfig{Fanout: 5, DtMin: 1, DtMax: 32, DfMax: 64})
	require.Len(t, targets, 2)
	assert.Equal(t, 2, targets[0].Frame)
	assert.Equal(t, 10, targets[1].Frame)
}
