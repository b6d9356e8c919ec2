// Package session re-checks source sets repeatedly, caching each result
// under a fingerprint of the sources it was computed from.
package session

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"

	"bantam/internal/frontend"
	"bantam/internal/loader"
)

// Fingerprint identifies a source set by content.
type Fingerprint [blake2b.Size256]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:8])
}

// Sum fingerprints the (path, text) pairs of sources in order. Each field
// is length-prefixed so that moving text across a file boundary changes
// the sum.
func Sum(sources ...loader.Source) Fingerprint {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails for oversized keys
	}
	var buf []byte
	for _, src := range sources {
		for _, field := range []string{src.Path, src.Text} {
			buf = binary.AppendUvarint(buf[:0], uint64(len(field)))
			h.Write(buf)
			h.Write([]byte(field))
		}
	}
	var f Fingerprint
	h.Sum(f[:0])
	return f
}

// Stats counts the work a session has done.
type Stats struct {
	Checks  int // calls to Check
	Hits    int // calls answered from the cache
	Entries int // results currently cached
}

// Session is safe for concurrent use. Each run of the front end gets its
// own sink, scope table and hierarchy; cached results are shared and must
// be treated as read-only.
type Session struct {
	mu      sync.RWMutex
	results map[Fingerprint]*frontend.Result
	checks  int
	hits    int
}

func New() *Session {
	return &Session{results: make(map[Fingerprint]*frontend.Result)}
}

// Check returns the analysis of sources, running the front end only if
// this exact source set has not been seen before.
func (s *Session) Check(sources ...loader.Source) *frontend.Result {
	key := Sum(sources...)

	s.mu.RLock()
	res, ok := s.results[key]
	s.mu.RUnlock()

	if !ok {
		res = frontend.Check(sources...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks++
	if ok {
		s.hits++
		return res
	}
	// another goroutine may have finished the same set first
	if prev, dup := s.results[key]; dup {
		return prev
	}
	s.results[key] = res
	return res
}

// Forget drops every cached result. Counters are kept.
func (s *Session) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[Fingerprint]*frontend.Result)
}

func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Checks: s.checks, Hits: s.hits, Entries: len(s.results)}
}
