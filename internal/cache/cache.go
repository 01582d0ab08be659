// Package cache memoizes computed blurhashes by image identity.
//
// Entries are keyed by the source content digest, the requested component
// grid and the downscale setting, so editing an image or asking for a
// different encode is a miss. The
// store can be persisted between runs as zstd-compressed JSON.
//
// Store is safe for concurrent use by multiple goroutines.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// FormatVersion is written to persisted files; other versions load as empty.
const FormatVersion = 2

// Key identifies one encode request.
type Key struct {
	ContentHash string `json:"content_hash"`
	ComponentX  int    `json:"x"`
	ComponentY  int    `json:"y"`
	// Downscale records whether the size-band reduction ran. A reduced
	// encode may carry a smaller grid than requested.
	Downscale bool `json:"downscale"`
}

// Entry is a cached encode result.
type Entry struct {
	Hash   string `json:"hash"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Store is an in-memory map of Key to Entry.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[Key]Entry)}
}

// Get returns the entry for k, if present.
func (s *Store) Get(k Key) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[k]
	return e, ok
}

// Put stores e under k, replacing any previous entry.
func (s *Store) Put(k Key, e Entry) {
	s.mu.Lock()
	s.entries[k] = e
	s.mu.Unlock()
}

// Evict removes k. It reports whether an entry was removed.
func (s *Store) Evict(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[k]
	delete(s.entries, k)
	return ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[Key]Entry)
	s.mu.Unlock()
}

type record struct {
	Key
	Entry
}

type file struct {
	Version int      `json:"version"`
	Entries []record `json:"entries"`
}

// Load reads a store written by Save. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a zstd-compressed store from r.
func Read(r io.Reader) (*Store, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	defer dec.Close()

	var doc file
	if err := json.NewDecoder(dec).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cache: decode: %w", err)
	}

	s := New()
	if doc.Version != FormatVersion {
		return s, nil
	}
	for _, rec := range doc.Entries {
		s.entries[rec.Key] = rec.Entry
	}
	return s, nil
}

// Save writes the store to path, replacing it atomically.
func (s *Store) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Write encodes the store to w. Entries are sorted so output is stable.
func (s *Store) Write(w io.Writer) error {
	s.mu.RLock()
	doc := file{Version: FormatVersion, Entries: make([]record, 0, len(s.entries))}
	for k, e := range s.entries {
		doc.Entries = append(doc.Entries, record{k, e})
	}
	s.mu.RUnlock()

	sort.Slice(doc.Entries, func(i, j int) bool {
		a, b := doc.Entries[i].Key, doc.Entries[j].Key
		if a.ContentHash != b.ContentHash {
			return a.ContentHash < b.ContentHash
		}
		if a.ComponentX != b.ComponentX {
			return a.ComponentX < b.ComponentX
		}
		if a.ComponentY != b.ComponentY {
			return a.ComponentY < b.ComponentY
		}
		return !a.Downscale && b.Downscale
	})

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(&doc); err != nil {
		enc.Close()
		return fmt.Errorf("cache: encode: %w", err)
	}
	return enc.Close()
}
