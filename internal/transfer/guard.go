package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FailureKind classifies why the guard blocked a request. Failures are data,
// not errors: the caller fixes the request and re-evaluates.
type FailureKind string

const (
	FailStructural       FailureKind = "structural"
	FailRouteUnsupported FailureKind = "route-unsupported"
	FailAmountOutOfRange FailureKind = "amount-out-of-range"
	FailUnknownBalance   FailureKind = "unknown-balance"
)

// Result is the guard's verdict on one request. OK=false always comes with
// HardBlock=true: there is no retryable rejection, only requests the caller
// must change. MinRequired is set when the bootstrap rule computed a floor the
// amount fell short of.
type Result struct {
	OK          bool
	HardBlock   bool
	Mode        RouteMode
	Kind        FailureKind
	Reason      string
	MinRequired *decimal.Decimal
}

func blocked(kind FailureKind, reason string) Result {
	return Result{HardBlock: true, Kind: kind, Reason: reason}
}

// Guard decides whether a specific request with a specific amount may
// proceed, and under which mode. It is a pure function of its inputs: no
// internal state, no I/O, snapshot freshness is the caller's problem.
type Guard struct {
	table *Table
}

// NewGuard builds a guard over a frozen capability table.
func NewGuard(t *Table) *Guard {
	return &Guard{table: t}
}

// Evaluate runs the route/amount/bootstrap policy in dispatch order. The
// structural re-checks duplicate Validate on purpose: the guard does not
// trust upstream callers to have run it.
func (g *Guard) Evaluate(req Request, snaps Snapshots) Result {
	if req.From == req.To {
		return blocked(FailStructural, "source and destination are the same chain")
	}
	amt, err := ParseAmount(req.Amount)
	if err != nil || amt.Sign() <= 0 {
		return blocked(FailStructural, "amount must be a positive number")
	}

	if req.Asset.Class() == ClassStable {
		if !g.table.InRoutes(req.From, req.To, ModeReserveTransfer) {
			return blocked(FailRouteUnsupported, fmt.Sprintf(
				"%s cannot be sent from %s to %s", req.Asset, req.From.Label(), req.To.Label()))
		}
		min := g.table.Bounds(ModeReserveTransfer).Min
		if amt.LessThan(min) {
			return blocked(FailAmountOutOfRange, fmt.Sprintf(
				"minimum %s transfer on this route is %s", req.Asset, min))
		}
		return Result{OK: true, Mode: ModeReserveTransfer}
	}

	if g.table.InRoutes(req.From, req.To, ModeTeleport) {
		min := g.table.Bounds(ModeTeleport).Min
		if amt.LessThan(min) {
			return blocked(FailAmountOutOfRange, fmt.Sprintf(
				"minimum teleport amount is %s %s", min, req.Asset))
		}
		if res, ok := g.bootstrapCheck(req, amt, snaps); !ok {
			return res
		}
		return Result{OK: true, Mode: ModeTeleport}
	}

	if exp := g.table.expRoute; req.From == exp.From && req.To == exp.To {
		bounds := g.table.Bounds(ModeExperimental)
		if amt.LessThan(bounds.Min) || (bounds.Max != nil && amt.GreaterThan(*bounds.Max)) {
			return blocked(FailAmountOutOfRange, fmt.Sprintf(
				"experimental route accepts between %s and %s %s inclusive", bounds.Min, bounds.Max, req.Asset))
		}
		return Result{OK: true, Mode: ModeExperimental, Reason: "experimental route enabled"}
	}

	return blocked(FailRouteUnsupported, "unsupported asset/route combination")
}

// bootstrapCheck enforces the existential-deposit floor on teleports into
// destinations that may hold no live account. Missing snapshots fail closed:
// an unknown destination balance is never treated as a funded one.
func (g *Guard) bootstrapCheck(req Request, amt decimal.Decimal, snaps Snapshots) (Result, bool) {
	buf, sensitive := g.table.BootstrapFor(req.To)
	if !sensitive {
		return Result{}, true
	}
	snap, known := snaps[req.To]
	if !known {
		return blocked(FailUnknownBalance, fmt.Sprintf(
			"%s balance is unknown; cannot verify the destination account clears its existential deposit", req.To.Label())), false
	}
	if snap.Free.GreaterThanOrEqual(snap.ExistentialDeposit) {
		return Result{}, true
	}
	minRequired := snap.ExistentialDeposit.Sub(snap.Free).Add(buf.FeeBuffer).Add(buf.SafetyBuffer)
	if amt.LessThan(minRequired) {
		res := blocked(FailAmountOutOfRange, fmt.Sprintf(
			"destination account on %s is below its existential deposit; send at least %s %s to activate it",
			req.To.Label(), minRequired, req.Asset))
		res.MinRequired = &minRequired
		return res, false
	}
	return Result{}, true
}
