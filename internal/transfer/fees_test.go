package transfer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestQuoter(t *testing.T) *Quoter {
	t.Helper()
	return NewQuoter(DefaultFeePolicies(), 4)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuoteIsPure(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	first := q.Quote(ModeReserveTransfer, AssetUSDT, dec("12.5"), dec("0.02"))
	second := q.Quote(ModeReserveTransfer, AssetUSDT, dec("12.5"), dec("0.02"))
	require.Equal(t, first, second)
}

func TestQuoteTeleportSentinel(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	quote := q.Quote(ModeTeleport, AssetDOT, dec("0.10"), dec("0.012"))
	require.Equal(t, FeeUnknown, quote.NetworkFeeEstimate)
	require.Equal(t, FeeUnknown, quote.ServiceFee)
	require.Equal(t, FeeUnknown, quote.TotalFee)
	require.Equal(t, []string{"teleport fees are settled on-chain and cannot be estimated here"}, quote.Notes)
}

func TestQuoteNonPositiveAmount(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	for _, amount := range []string{"0", "-4"} {
		quote := q.Quote(ModeReserveTransfer, AssetUSDC, dec(amount), dec("0.02"))
		require.Equal(t, FeeUnknown, quote.ServiceFee, "amount %s", amount)
		require.Equal(t, FeeUnknown, quote.TotalFee)
		require.Equal(t, []string{"enter a positive amount to estimate fees"}, quote.Notes)
	}
}

func TestQuoteNativeClampSchedule(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	// Native schedule: 0.25% of amount, clamped to [0.005, 1].
	cases := []struct {
		amount  string
		service string
		notes   []string
	}{
		{"1", "0.0050", []string{"minimum service fee applied"}},
		{"1.9", "0.0050", []string{"minimum service fee applied"}},
		{"2", "0.0050", nil},       // exactly the minimum is not a clamp
		{"100", "0.2500", nil},
		{"400", "1.0000", nil},     // exactly the maximum is not a clamp
		{"400.04", "1.0000", []string{"service fee capped at the maximum"}},
		{"9000", "1.0000", []string{"service fee capped at the maximum"}},
	}
	for _, tc := range cases {
		quote := q.Quote(ModeExperimental, AssetDOT, dec(tc.amount), dec("0.012"))
		require.Equal(t, tc.service, quote.ServiceFee, "amount %s", tc.amount)
		require.Equal(t, tc.notes, quote.Notes, "amount %s", tc.amount)
	}
}

func TestQuoteStableClampSchedule(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	// Stable schedule: 0.50% of amount, clamped to [0.05, 25].
	cases := []struct {
		amount  string
		service string
		clamped bool
	}{
		{"9.9", "0.0500", true},
		{"10", "0.0500", false},
		{"200", "1.0000", false},
		{"5000", "25.0000", false},
		{"5001", "25.0000", true},
	}
	for _, tc := range cases {
		quote := q.Quote(ModeReserveTransfer, AssetUSDT, dec(tc.amount), dec("0.02"))
		require.Equal(t, tc.service, quote.ServiceFee, "amount %s", tc.amount)
		require.Equal(t, tc.clamped, len(quote.Notes) > 0, "amount %s", tc.amount)
	}
}

func TestQuoteTotalAddsNetworkFee(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	quote := q.Quote(ModeExperimental, AssetDOT, dec("100"), dec("0.012"))
	require.Equal(t, "0.0120", quote.NetworkFeeEstimate)
	require.Equal(t, "0.2500", quote.ServiceFee)
	require.Equal(t, "0.2620", quote.TotalFee)
}

func TestQuoteServiceFeeMonotonicThenConstant(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	// Rising amounts: the service fee never decreases, and once the cap is
	// reached it stays exactly there.
	prev := decimal.Zero
	amount := dec("0.5")
	step := dec("13.7")
	for i := 0; i < 60; i++ {
		quote := q.Quote(ModeExperimental, AssetDOT, amount, dec("0.012"))
		service := dec(quote.ServiceFee)
		require.True(t, service.GreaterThanOrEqual(prev),
			"service fee dropped from %s to %s at amount %s", prev, service, amount)
		if amount.GreaterThanOrEqual(dec("400")) {
			require.Equal(t, "1.0000", quote.ServiceFee, "amount %s", amount)
		}
		prev = service
		amount = amount.Add(step)
	}
}

func TestQuoteRoundsAtOutputBoundary(t *testing.T) {
	t.Parallel()
	q := newTestQuoter(t)

	// 3.3333 * 0.25% = 0.00833325, rounded to "0.0083".
	quote := q.Quote(ModeExperimental, AssetDOT, dec("3.3333"), dec("0"))
	require.Equal(t, "0.0083", quote.ServiceFee)

	// 3.34 * 0.25% = 0.00835 rounds half away from zero to "0.0084".
	quote = q.Quote(ModeExperimental, AssetDOT, dec("3.34"), dec("0"))
	require.Equal(t, "0.0084", quote.ServiceFee)
	require.Empty(t, quote.Notes)
}
