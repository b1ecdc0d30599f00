package report

import (
	"sync"
	"sync/atomic"
)

// RunSequencer hands out monotonically increasing run tokens for one open
// report builder. A run whose token is no longer the latest was superseded
// by a newer request, and its result must not be displayed.
type RunSequencer struct {
	issued atomic.Uint64
}

// Next issues the token for a new run.
func (s *RunSequencer) Next() uint64 {
	return s.issued.Add(1)
}

// Stale reports whether a newer run was issued after this token.
func (s *RunSequencer) Stale(token uint64) bool {
	return s.issued.Load() != token
}

// sequencerSet keys one RunSequencer per open builder (tenant/event/user),
// so a user's slow earlier run can never overwrite their newer one while
// different users stay independent.
type sequencerSet struct {
	mu   sync.Mutex
	seqs map[string]*RunSequencer
}

func newSequencerSet() *sequencerSet {
	return &sequencerSet{seqs: map[string]*RunSequencer{}}
}

func (s *sequencerSet) get(key string) *RunSequencer {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, ok := s.seqs[key]
	if !ok {
		seq = &RunSequencer{}
		s.seqs[key] = seq
	}
	return seq
}
