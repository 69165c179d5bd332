package transfer

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Route is one legal (from, to, mode) combination.
type Route struct {
	From Chain
	To   Chain
	Mode RouteMode
}

// ClassBounds are the amount limits shared by every route of a capability
// class. Max is nil when the class has no upper bound.
type ClassBounds struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// BootstrapBuffers are the per-destination allowances added on top of the
// existential-deposit shortfall when funding a below-ED account: a
// conservative execution-cost allowance plus a cushion so the post-transfer
// balance does not land exactly on the ED boundary.
type BootstrapBuffers struct {
	FeeBuffer    decimal.Decimal
	SafetyBuffer decimal.Decimal
}

// Policy carries every product-tunable constant the capability table is built
// from. Changing transfer policy means changing this data, never the
// algorithms that consult it.
type Policy struct {
	Hub Chain

	StableRoutes []Route
	StableBounds ClassBounds

	TeleportRoutes []Route
	TeleportBounds ClassBounds

	ExperimentalRoute  Route
	ExperimentalBounds ClassBounds

	// Bootstrap marks destinations that may hold no live account yet.
	// Presence of an entry makes teleports into that chain subject to the
	// bootstrap minimum.
	Bootstrap map[Chain]BootstrapBuffers
}

// DefaultPolicy returns the shipped route table and limits.
func DefaultPolicy() Policy {
	expMax := decimal.RequireFromString("100")
	return Policy{
		Hub: ChainAssetHub,
		StableRoutes: []Route{
			{From: ChainAssetHub, To: ChainHydration, Mode: ModeReserveTransfer},
			{From: ChainHydration, To: ChainAssetHub, Mode: ModeReserveTransfer},
			{From: ChainAssetHub, To: ChainMoonbeam, Mode: ModeReserveTransfer},
			{From: ChainMoonbeam, To: ChainAssetHub, Mode: ModeReserveTransfer},
		},
		StableBounds: ClassBounds{Min: decimal.RequireFromString("0.10")},
		TeleportRoutes: []Route{
			{From: ChainPolkadot, To: ChainAssetHub, Mode: ModeTeleport},
			{From: ChainAssetHub, To: ChainPolkadot, Mode: ModeTeleport},
		},
		TeleportBounds:     ClassBounds{Min: decimal.RequireFromString("0.01")},
		ExperimentalRoute:  Route{From: ChainPolkadot, To: ChainHydration, Mode: ModeExperimental},
		ExperimentalBounds: ClassBounds{Min: decimal.RequireFromString("0.50"), Max: &expMax},
		Bootstrap: map[Chain]BootstrapBuffers{
			ChainPolkadot: {
				FeeBuffer:    decimal.RequireFromString("0.01"),
				SafetyBuffer: decimal.RequireFromString("0.05"),
			},
			ChainAssetHub: {
				FeeBuffer:    decimal.RequireFromString("0.01"),
				SafetyBuffer: decimal.RequireFromString("0.05"),
			},
		},
	}
}

// Table is the immutable registry of legal routes and their bounds. Build it
// once with NewTable; all route questions go through it.
type Table struct {
	hub    Chain
	routes map[Route]struct{}

	stable       ClassBounds
	teleport     ClassBounds
	experimental ClassBounds
	expRoute     Route

	bootstrap map[Chain]BootstrapBuffers
}

// NewTable validates a policy and freezes it into a queryable table.
func NewTable(p Policy) (*Table, error) {
	if _, ok := ParseChain(string(p.Hub)); !ok {
		return nil, fmt.Errorf("hub chain %q is not a supported chain", p.Hub)
	}
	if p.StableBounds.Min.Sign() <= 0 || p.TeleportBounds.Min.Sign() <= 0 {
		return nil, fmt.Errorf("class minimum amounts must be positive")
	}
	if p.ExperimentalBounds.Max == nil {
		return nil, fmt.Errorf("experimental route needs an upper bound")
	}
	if p.ExperimentalBounds.Min.Sign() <= 0 || p.ExperimentalBounds.Max.LessThan(p.ExperimentalBounds.Min) {
		return nil, fmt.Errorf("experimental bounds [%s, %s] are not a valid range",
			p.ExperimentalBounds.Min, p.ExperimentalBounds.Max)
	}

	t := &Table{
		hub:          p.Hub,
		routes:       make(map[Route]struct{}, len(p.StableRoutes)+len(p.TeleportRoutes)+1),
		stable:       p.StableBounds,
		teleport:     p.TeleportBounds,
		experimental: p.ExperimentalBounds,
		expRoute:     p.ExperimentalRoute,
		bootstrap:    make(map[Chain]BootstrapBuffers, len(p.Bootstrap)),
	}
	add := func(r Route, wantMode RouteMode) error {
		if _, ok := ParseChain(string(r.From)); !ok {
			return fmt.Errorf("route %s->%s: unknown chain %q", r.From, r.To, r.From)
		}
		if _, ok := ParseChain(string(r.To)); !ok {
			return fmt.Errorf("route %s->%s: unknown chain %q", r.From, r.To, r.To)
		}
		if r.From == r.To {
			return fmt.Errorf("route %s->%s: endpoints must differ", r.From, r.To)
		}
		if r.Mode != wantMode {
			return fmt.Errorf("route %s->%s: mode %q does not belong in the %q set", r.From, r.To, r.Mode, wantMode)
		}
		t.routes[r] = struct{}{}
		return nil
	}
	for _, r := range p.StableRoutes {
		if err := add(r, ModeReserveTransfer); err != nil {
			return nil, err
		}
	}
	for _, r := range p.TeleportRoutes {
		if err := add(r, ModeTeleport); err != nil {
			return nil, err
		}
	}
	if err := add(p.ExperimentalRoute, ModeExperimental); err != nil {
		return nil, err
	}
	for chain, buf := range p.Bootstrap {
		if _, ok := ParseChain(string(chain)); !ok {
			return nil, fmt.Errorf("bootstrap entry for unknown chain %q", chain)
		}
		if buf.FeeBuffer.Sign() < 0 || buf.SafetyBuffer.Sign() < 0 {
			return nil, fmt.Errorf("bootstrap buffers for %s must not be negative", chain)
		}
		t.bootstrap[chain] = buf
	}
	return t, nil
}

// InRoutes reports whether (from, to, mode) is a legal route.
func (t *Table) InRoutes(from, to Chain, mode RouteMode) bool {
	_, ok := t.routes[Route{From: from, To: to, Mode: mode}]
	return ok
}

// Routes returns every legal route, sorted by mode then endpoints.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.routes))
	for r := range t.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Hub returns the designated hub chain.
func (t *Table) Hub() Chain { return t.hub }

// Bounds returns the amount limits for a route mode.
func (t *Table) Bounds(mode RouteMode) ClassBounds {
	switch mode {
	case ModeTeleport:
		return t.teleport
	case ModeExperimental:
		return t.experimental
	default:
		return t.stable
	}
}

// BootstrapFor returns the buffers for a bootstrap-sensitive destination, or
// false when teleports into the chain carry no bootstrap constraint.
func (t *Table) BootstrapFor(dest Chain) (BootstrapBuffers, bool) {
	b, ok := t.bootstrap[dest]
	return b, ok
}
