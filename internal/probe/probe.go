package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/causewayhq/causeway/internal/transfer"
)

var (
	// ErrNoSources means the chain has no configured balance sources.
	ErrNoSources = errors.New("no balance sources for chain")
	// ErrAllSourcesFailed means every configured source failed or timed out.
	ErrAllSourcesFailed = errors.New("all balance sources failed")
)

// Source supplies balance snapshots. Implementations wrap one data endpoint;
// failing or timing out is normal and makes the prober fall through to the
// next source in order.
type Source interface {
	Name() string
	Fetch(ctx context.Context, chain transfer.Chain) (transfer.BalanceSnapshot, error)
}

// Prober resolves balance snapshots by walking an ordered source list per
// chain, bounding every attempt with its own timeout.
type Prober struct {
	sources map[transfer.Chain][]Source
	timeout time.Duration
	log     *slog.Logger
}

// New builds a prober. timeout bounds each individual source attempt; log may
// be nil for silence.
func New(sources map[transfer.Chain][]Source, timeout time.Duration, log *slog.Logger) *Prober {
	return &Prober{sources: sources, timeout: timeout, log: log}
}

// Fetch returns the first snapshot any of the chain's sources delivers.
// The error wraps ErrNoSources or ErrAllSourcesFailed for errors.Is, with
// every per-source failure joined in.
func (p *Prober) Fetch(ctx context.Context, chain transfer.Chain) (transfer.BalanceSnapshot, error) {
	sources := p.sources[chain]
	if len(sources) == 0 {
		return transfer.BalanceSnapshot{}, fmt.Errorf("%w: %s", ErrNoSources, chain)
	}

	probeID := uuid.NewString()
	var failures []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		start := time.Now()
		snap, err := src.Fetch(attemptCtx, chain)
		cancel()
		if err == nil {
			if p.log != nil {
				p.log.Info("balance probe ok",
					"probe_id", probeID, "chain", chain, "source", src.Name(), "took", time.Since(start))
			}
			return snap, nil
		}
		if p.log != nil {
			p.log.Warn("balance probe failed",
				"probe_id", probeID, "chain", chain, "source", src.Name(), "took", time.Since(start), "err", err)
		}
		failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
	}
	return transfer.BalanceSnapshot{}, fmt.Errorf("%w for %s: %w", ErrAllSourcesFailed, chain, errors.Join(failures...))
}

// Pair fetches both endpoints of a route concurrently. The returned map holds
// whichever snapshots arrived; a chain that failed stays absent so the caller
// keeps treating its balance as unknown. The error joins the per-chain
// failures, if any.
func (p *Prober) Pair(ctx context.Context, from, to transfer.Chain) (transfer.Snapshots, error) {
	chains := []transfer.Chain{from}
	if to != from {
		chains = append(chains, to)
	}

	var (
		mu   sync.Mutex
		out  = make(transfer.Snapshots, len(chains))
		errs []error
	)
	var g errgroup.Group
	for _, chain := range chains {
		chain := chain
		g.Go(func() error {
			snap, err := p.Fetch(ctx, chain)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			out[chain] = snap
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}
