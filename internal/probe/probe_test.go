package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/causewayhq/causeway/internal/transfer"
)

type sourceFunc struct {
	name string
	fn   func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error)
}

func (s sourceFunc) Name() string { return s.name }

func (s sourceFunc) Fetch(ctx context.Context, chain transfer.Chain) (transfer.BalanceSnapshot, error) {
	return s.fn(ctx, chain)
}

func testSnapshot(free string) transfer.BalanceSnapshot {
	return transfer.BalanceSnapshot{
		Free:               decimal.RequireFromString(free),
		ExistentialDeposit: decimal.RequireFromString("0.01"),
	}
}

func TestFetchFirstSourceWins(t *testing.T) {
	t.Parallel()

	var secondCalls atomic.Int32
	sources := map[transfer.Chain][]Source{
		transfer.ChainPolkadot: {
			sourceFunc{name: "primary", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				return testSnapshot("3.5"), nil
			}},
			sourceFunc{name: "backup", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				secondCalls.Add(1)
				return testSnapshot("9.9"), nil
			}},
		},
	}
	p := New(sources, time.Second, nil)

	snap, err := p.Fetch(context.Background(), transfer.ChainPolkadot)
	require.NoError(t, err)
	require.True(t, snap.Free.Equal(decimal.RequireFromString("3.5")))
	require.Zero(t, secondCalls.Load(), "backup must not be consulted when primary answers")
}

func TestFetchFallsThroughInOrder(t *testing.T) {
	t.Parallel()

	var firstCalls atomic.Int32
	sources := map[transfer.Chain][]Source{
		transfer.ChainAssetHub: {
			sourceFunc{name: "flaky", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				firstCalls.Add(1)
				return transfer.BalanceSnapshot{}, errors.New("connection refused")
			}},
			sourceFunc{name: "backup", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				return testSnapshot("1.25"), nil
			}},
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(sources, time.Second, log)

	snap, err := p.Fetch(context.Background(), transfer.ChainAssetHub)
	require.NoError(t, err)
	require.True(t, snap.Free.Equal(decimal.RequireFromString("1.25")))
	require.Equal(t, int32(1), firstCalls.Load())
}

func TestFetchAllSourcesFailed(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	sources := map[transfer.Chain][]Source{
		transfer.ChainHydration: {
			sourceFunc{name: "one", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				return transfer.BalanceSnapshot{}, boom
			}},
			sourceFunc{name: "two", fn: func(context.Context, transfer.Chain) (transfer.BalanceSnapshot, error) {
				return transfer.BalanceSnapshot{}, boom
			}},
		},
	}
	p := New(sources, time.Second, nil)

	_, err := p.Fetch(context.Background(), transfer.ChainHydration)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAllSourcesFailed)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "one")
	require.ErrorContains(t, err, "two")
}

func TestFetchNoSources(t *testing.T) {
	t.Parallel()

	p := New(map[transfer.Chain][]Source{}, time.Second, nil)
	_, err := p.Fetch(context.Background(), transfer.ChainMoonbeam)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestFetchTimeoutFallsThrough(t *testing.T) {
	t.Parallel()

	slow := NewStatic("slow", transfer.Snapshots{transfer.ChainPolkadot: testSnapshot("8")})
	slow.SetDelay(500 * time.Millisecond)
	fast := NewStatic("fast", transfer.Snapshots{transfer.ChainPolkadot: testSnapshot("2")})

	p := New(map[transfer.Chain][]Source{
		transfer.ChainPolkadot: {slow, fast},
	}, 30*time.Millisecond, nil)

	snap, err := p.Fetch(context.Background(), transfer.ChainPolkadot)
	require.NoError(t, err)
	require.True(t, snap.Free.Equal(decimal.RequireFromString("2")), "slow source must time out and yield to fast")
}

func TestPairPartialResult(t *testing.T) {
	t.Parallel()

	good := NewStatic("good", transfer.Snapshots{transfer.ChainPolkadot: testSnapshot("4")})
	bad := NewStatic("bad", transfer.Snapshots{})
	bad.SetError(errors.New("unreachable"))

	p := New(map[transfer.Chain][]Source{
		transfer.ChainPolkadot: {good},
		transfer.ChainAssetHub: {bad},
	}, time.Second, nil)

	snaps, err := p.Pair(context.Background(), transfer.ChainPolkadot, transfer.ChainAssetHub)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAllSourcesFailed)
	require.Contains(t, snaps, transfer.ChainPolkadot, "the healthy endpoint still resolves")
	require.NotContains(t, snaps, transfer.ChainAssetHub, "the failed endpoint stays unknown")
}

func TestPairBothResolve(t *testing.T) {
	t.Parallel()

	seed := transfer.Snapshots{
		transfer.ChainPolkadot: testSnapshot("4"),
		transfer.ChainAssetHub: testSnapshot("0"),
	}
	src := NewStatic("seed", seed)
	p := New(map[transfer.Chain][]Source{
		transfer.ChainPolkadot: {src},
		transfer.ChainAssetHub: {src},
	}, time.Second, nil)

	snaps, err := p.Pair(context.Background(), transfer.ChainPolkadot, transfer.ChainAssetHub)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.True(t, snaps[transfer.ChainAssetHub].Free.IsZero())
}
