package transfer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RouteMode is the execution mode a permitted transfer runs under.
type RouteMode string

const (
	ModeReserveTransfer RouteMode = "reserve-transfer"
	ModeTeleport        RouteMode = "teleport"
	ModeExperimental    RouteMode = "advanced-experimental"
)

// Request is a prospective transfer as the user is editing it. Amount stays a
// decimal string until the engine parses it; the caller mutates the struct on
// every edit and re-evaluates.
type Request struct {
	From   Chain
	To     Chain
	Asset  Asset
	Amount string
}

// BalanceSnapshot is the probed native-token state of one chain account.
type BalanceSnapshot struct {
	Free               decimal.Decimal
	ExistentialDeposit decimal.Decimal
}

// Snapshots holds the latest snapshot per chain. A missing key means the
// balance is unknown, which is never treated as zero.
type Snapshots map[Chain]BalanceSnapshot

// ParseAmount parses a user-entered decimal amount string.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not a number", s)
	}
	return d, nil
}
