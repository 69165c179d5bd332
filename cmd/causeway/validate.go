package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/causewayhq/causeway/internal/transfer"
)

// runValidation drives the guard and quoter through fixed scenarios with
// known balances. It uses the built-in policy, not the user's config, so a
// failure always means the engine drifted.
func runValidation() error {
	table, err := transfer.NewTable(transfer.DefaultPolicy())
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}
	guard := transfer.NewGuard(table)
	quoter := transfer.NewQuoter(transfer.DefaultFeePolicies(), 4)

	snaps := transfer.Snapshots{
		transfer.ChainPolkadot: {
			Free:               decimal.Zero,
			ExistentialDeposit: decimal.RequireFromString("0.01"),
		},
		transfer.ChainAssetHub: {
			Free:               decimal.RequireFromString("5"),
			ExistentialDeposit: decimal.RequireFromString("0.01"),
		},
	}

	teleport := transfer.Request{
		From:  transfer.ChainAssetHub,
		To:    transfer.ChainPolkadot,
		Asset: transfer.AssetDOT,
	}

	teleport.Amount = "0.05"
	res := guard.Evaluate(teleport, snaps)
	if res.OK {
		return fmt.Errorf("teleport 0.05 into an empty account passed, want block")
	}
	if res.MinRequired == nil || !res.MinRequired.Equal(decimal.RequireFromString("0.07")) {
		return fmt.Errorf("teleport shortfall minimum = %s, want 0.07", res.MinRequired)
	}

	teleport.Amount = "0.10"
	res = guard.Evaluate(teleport, snaps)
	if !res.OK || res.Mode != transfer.ModeTeleport {
		return fmt.Errorf("teleport 0.10 blocked: %s", res.Reason)
	}

	stable := transfer.Request{
		From:  transfer.ChainAssetHub,
		To:    transfer.ChainHydration,
		Asset: transfer.AssetUSDT,
	}

	stable.Amount = "0.05"
	res = guard.Evaluate(stable, snaps)
	if res.OK {
		return fmt.Errorf("stable 0.05 below the route minimum passed, want block")
	}

	stable.Amount = "0.10"
	res = guard.Evaluate(stable, snaps)
	if !res.OK || res.Mode != transfer.ModeReserveTransfer {
		return fmt.Errorf("stable 0.10 blocked: %s", res.Reason)
	}

	quote := quoter.Quote(transfer.ModeReserveTransfer, transfer.AssetUSDT,
		decimal.RequireFromString("1"), decimal.RequireFromString("0.02"))
	if quote.ServiceFee != "0.0500" {
		return fmt.Errorf("stable service fee floor = %s, want 0.0500", quote.ServiceFee)
	}

	return nil
}
