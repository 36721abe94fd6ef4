// Package store implements the FingerprintStore: an in-memory inverted
// index from fingerprint address to posting list, backed by the binary
// file format of spec.md §6. It replaces the teacher's HNSW-shaped
// VectorDB interface (pkg/db/db.go in the teacher repo) wholesale — this
// index is address-keyed and exact-match, not a nearest-neighbor search
// over vectors, so nothing of that interface survives, only its role:
// persistence plus track metadata.
package store

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-fprint/fprint/internal/xerr"
	"github.com/go-fprint/fprint/pkg/fingerprint"
)

var magic = [8]byte{'A', 'F', 'P', 0, 'v', '0', '0', '1'}

// Track is a learned recording's metadata. Track IDs are stable for the
// life of the database; nothing ever deletes or renumbers one.
type Track struct {
	ID              uint32
	Name            string
	FingerprintCount uint32
}

// Posting is a single occurrence of an address inside a learned track.
type Posting struct {
	TrackID    uint32
	AnchorTime uint32
}

// Store is the FingerprintStore: an address -> []Posting inverted index
// plus the track table. Build one with New; the zero value has nil maps
// and cannot be inserted into.
type Store struct {
	mu      sync.RWMutex
	tracks  []Track
	byName  map[string]uint32 // track name -> id, for dedup-aware callers
	index   map[uint32][]Posting
	nextID  uint32
}

// New returns an empty, ready-to-use store.
func New() *Store {
	return &Store{
		byName: make(map[string]uint32),
		index:  make(map[uint32][]Posting),
	}
}

// Insert adds every hash of a newly learned track under a fresh track id
// and returns that id. Per spec.md Open Question 3, re-learning an
// existing name is not deduplicated — callers must check Tracks() first.
func (s *Store) Insert(trackName string, hashes []fingerprint.Hash) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	for _, h := range hashes {
		s.index[h.Address] = append(s.index[h.Address], Posting{
			TrackID:    id,
			AnchorTime: uint32(h.AnchorTime),
		})
	}

	s.tracks = append(s.tracks, Track{ID: id, Name: trackName, FingerprintCount: uint32(len(hashes))})
	s.byName[trackName] = id
	return id
}

// Recall returns the read-only posting list for an address. The returned
// slice must not be mutated by the caller.
func (s *Store) Recall(address uint32) []Posting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[address]
}

// Tracks returns all known track metadata, in insertion order.
func (s *Store) Tracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// TrackByName reports a track's id if a track with that exact name has
// been learned, for callers that want dedup-by-name behavior.
func (s *Store) TrackByName(name string) (uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[name]
	return id, ok
}

// Merge appends another store's tracks and postings into s, per the
// sharded-batch-learn model of spec.md §5: the two stores must have
// disjoint track-id ranges, which this renumbers to guarantee.
func (s *Store) Merge(other *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	remap := make(map[uint32]uint32, len(other.tracks))
	for _, t := range other.tracks {
		newID := s.nextID
		s.nextID++
		remap[t.ID] = newID
		s.tracks = append(s.tracks, Track{ID: newID, Name: t.Name, FingerprintCount: t.FingerprintCount})
		s.byName[t.Name] = newID
	}
	for addr, postings := range other.index {
		for _, p := range postings {
			s.index[addr] = append(s.index[addr], Posting{TrackID: remap[p.TrackID], AnchorTime: p.AnchorTime})
		}
	}
}

// Save persists the store to path atomically: it writes to a sibling
// temporary file and renames into place, so a reader never observes a
// partially written database (spec.md §4.5 durability contract).
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fprint-store-*.tmp")
	if err != nil {
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	w := bufio.NewWriter(tmp)
	if err := s.encode(w); err != nil {
		tmp.Close()
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	if err := tmp.Close(); err != nil {
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return xerr.Wrap(xerr.IndexIOError, err)
	}
	return nil
}

func (s *Store) encode(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.tracks))); err != nil {
		return err
	}
	for _, t := range s.tracks {
		if err := binary.Write(w, binary.LittleEndian, t.ID); err != nil {
			return err
		}
		nameBytes := []byte(t.Name)
		if err := binary.Write(w, binary.LittleEndian, uint16(len(nameBytes))); err != nil {
			return err
		}
		if _, err := w.Write(nameBytes); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, t.FingerprintCount); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.index))); err != nil {
		return err
	}

	crc := crc32.NewIEEE()
	mw := io.MultiWriter(w, crc)
	for addr, postings := range s.index {
		if err := binary.Write(mw, binary.LittleEndian, addr); err != nil {
			return err
		}
		if err := binary.Write(mw, binary.LittleEndian, uint32(len(postings))); err != nil {
			return err
		}
		for _, p := range postings {
			if err := binary.Write(mw, binary.LittleEndian, p.TrackID); err != nil {
				return err
			}
			if err := binary.Write(mw, binary.LittleEndian, p.AnchorTime); err != nil {
				return err
			}
		}
	}

	return binary.Write(w, binary.LittleEndian, crc.Sum32())
}

// countingReader tracks how many bytes have been logically consumed by
// callers so Load can bound an untrusted length/count field against what
// remains in the file, instead of trusting it outright.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// postingSize is the on-disk width of one (track_id: u32, t_anchor: u32)
// posting record.
const postingSize = 8

// Load reads a store from path. On any structural failure it returns
// IndexCorrupt (or IndexIOError for a plain read failure) and a nil store
// — it never returns a partially populated store. Every
// wire-supplied length or count is bounded against the remaining file
// size before it is used to size an allocation, so a corrupted or
// truncated file cannot be made to request an arbitrarily large buffer.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerr.Wrap(xerr.IndexIOError, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, xerr.Wrap(xerr.IndexIOError, err)
	}
	fileSize := info.Size()

	cr := &countingReader{r: bufio.NewReader(f)}
	crc := crc32.NewIEEE()
	tr := io.TeeReader(cr, crc)

	remaining := func() int64 { return fileSize - cr.n }

	var got [8]byte
	if _, err := io.ReadFull(cr, got[:]); err != nil {
		return nil, xerr.Wrap(xerr.IndexCorrupt, err)
	}
	if got != magic {
		return nil, xerr.New(xerr.IndexCorrupt, "store: bad magic header")
	}

	s := New()

	var numTracks uint32
	if err := binary.Read(cr, binary.LittleEndian, &numTracks); err != nil {
		return nil, xerr.Wrap(xerr.IndexCorrupt, err)
	}
	for i := uint32(0); i < numTracks; i++ {
		var t Track
		if err := binary.Read(cr, binary.LittleEndian, &t.ID); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		var nameLen uint16
		if err := binary.Read(cr, binary.LittleEndian, &nameLen); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		if int64(nameLen) > remaining() {
			return nil, xerr.New(xerr.IndexCorrupt, "store: track name length exceeds remaining file size")
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(cr, nameBytes); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		t.Name = string(nameBytes)
		if err := binary.Read(cr, binary.LittleEndian, &t.FingerprintCount); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		s.tracks = append(s.tracks, t)
		s.byName[t.Name] = t.ID
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	var numAddresses uint32
	if err := binary.Read(cr, binary.LittleEndian, &numAddresses); err != nil {
		return nil, xerr.Wrap(xerr.IndexCorrupt, err)
	}
	for i := uint32(0); i < numAddresses; i++ {
		var addr uint32
		if err := binary.Read(tr, binary.LittleEndian, &addr); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		var count uint32
		if err := binary.Read(tr, binary.LittleEndian, &count); err != nil {
			return nil, xerr.Wrap(xerr.IndexCorrupt, err)
		}
		if int64(count) > remaining()/postingSize {
			return nil, xerr.New(xerr.IndexCorrupt, "store: posting count exceeds remaining file size")
		}
		postings := make([]Posting, count)
		for j := uint32(0); j < count; j++ {
			if err := binary.Read(tr, binary.LittleEndian, &postings[j].TrackID); err != nil {
				return nil, xerr.Wrap(xerr.IndexCorrupt, err)
			}
			if err := binary.Read(tr, binary.LittleEndian, &postings[j].AnchorTime); err != nil {
				return nil, xerr.Wrap(xerr.IndexCorrupt, err)
			}
		}
		s.index[addr] = postings
	}

	var wantCRC uint32
	if err := binary.Read(cr, binary.LittleEndian, &wantCRC); err != nil {
		return nil, xerr.Wrap(xerr.IndexCorrupt, err)
	}
	if crc.Sum32() != wantCRC {
		return nil, xerr.New(xerr.IndexCorrupt, "store: checksum mismatch")
	}

	return s, nil
}
