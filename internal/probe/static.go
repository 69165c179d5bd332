package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/causewayhq/causeway/internal/transfer"
)

// Static is a deterministic balance source seeded with fixed snapshots. It
// stands in for live chain connectivity in the demo wiring; the mutators let
// tests and demo scenarios rewrite balances, inject failures, or add latency
// while the prober is running.
type Static struct {
	name string

	mu    sync.Mutex
	snaps transfer.Snapshots
	err   error
	delay time.Duration
}

// NewStatic builds a source named after the endpoint it pretends to be,
// copying the seed so later SetBalance calls do not alias the caller's map.
func NewStatic(name string, seed transfer.Snapshots) *Static {
	snaps := make(transfer.Snapshots, len(seed))
	for chain, snap := range seed {
		snaps[chain] = snap
	}
	return &Static{name: name, snaps: snaps}
}

func (s *Static) Name() string { return s.name }

// Fetch returns the seeded snapshot, honoring any scripted delay or failure.
func (s *Static) Fetch(ctx context.Context, chain transfer.Chain) (transfer.BalanceSnapshot, error) {
	s.mu.Lock()
	delay, scripted := s.delay, s.err
	snap, ok := s.snaps[chain]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return transfer.BalanceSnapshot{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	if scripted != nil {
		return transfer.BalanceSnapshot{}, scripted
	}
	if !ok {
		return transfer.BalanceSnapshot{}, fmt.Errorf("no balance seeded for %s", chain)
	}
	return snap, nil
}

// SetBalance rewrites one chain's seeded snapshot.
func (s *Static) SetBalance(chain transfer.Chain, snap transfer.BalanceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[chain] = snap
}

// SetError makes every Fetch fail with err; nil clears the failure.
func (s *Static) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetDelay adds artificial latency to every Fetch.
func (s *Static) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}
