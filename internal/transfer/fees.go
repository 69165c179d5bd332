package transfer

import "github.com/shopspring/decimal"

// FeeUnknown is the sentinel rendered for fees that are settled on-chain and
// cannot be estimated client-side. It is a display value, never parsed back.
const FeeUnknown = "unknown"

// FeePolicy is the service-fee schedule for one asset class. ServicePercent
// is a percentage (0.35 means 0.35%); MinFee and MaxFee clamp the computed
// fee in asset units.
type FeePolicy struct {
	ServicePercent decimal.Decimal
	MinFee         decimal.Decimal
	MaxFee         decimal.Decimal
}

// FeeQuote is a display-ready estimate. All numeric fields are decimal
// strings rounded to the quoter's output precision, or FeeUnknown when the
// mode settles fees on-chain. Notes explain clamping and sentinel cases in
// the order they were applied.
type FeeQuote struct {
	NetworkFeeEstimate string
	ServiceFee         string
	TotalFee           string
	Notes              []string
}

// DefaultFeePolicies returns the shipped service-fee schedule. Config
// overrides these per class.
func DefaultFeePolicies() map[AssetClass]FeePolicy {
	return map[AssetClass]FeePolicy{
		ClassNative: {
			ServicePercent: decimal.RequireFromString("0.25"),
			MinFee:         decimal.RequireFromString("0.005"),
			MaxFee:         decimal.RequireFromString("1"),
		},
		ClassStable: {
			ServicePercent: decimal.RequireFromString("0.50"),
			MinFee:         decimal.RequireFromString("0.05"),
			MaxFee:         decimal.RequireFromString("25"),
		},
	}
}

// Quoter computes fee estimates. It is pure: the same request always yields
// the same quote, and nothing is cached between calls.
type Quoter struct {
	policies map[AssetClass]FeePolicy
	digits   int32
}

// NewQuoter builds a quoter over a per-class fee schedule. digits is the
// number of fractional digits every numeric output is rounded to.
func NewQuoter(policies map[AssetClass]FeePolicy, digits int32) *Quoter {
	return &Quoter{policies: policies, digits: digits}
}

// Quote estimates the fees for a permitted transfer. networkFee is the
// externally supplied network-fee estimate for the route; amount is the
// already-parsed transfer amount. Clamp decisions compare exact decimals, so
// a fee landing precisely on a bound is not reported as clamped. Rounding
// happens only at the output boundary.
func (q *Quoter) Quote(mode RouteMode, asset Asset, amount, networkFee decimal.Decimal) FeeQuote {
	if mode == ModeTeleport {
		return FeeQuote{
			NetworkFeeEstimate: FeeUnknown,
			ServiceFee:         FeeUnknown,
			TotalFee:           FeeUnknown,
			Notes:              []string{"teleport fees are settled on-chain and cannot be estimated here"},
		}
	}
	if amount.Sign() <= 0 {
		return FeeQuote{
			NetworkFeeEstimate: FeeUnknown,
			ServiceFee:         FeeUnknown,
			TotalFee:           FeeUnknown,
			Notes:              []string{"enter a positive amount to estimate fees"},
		}
	}

	// Shift(-2) divides the percentage by 100 without losing precision, so
	// the clamp comparisons below see exact values.
	policy := q.policies[asset.Class()]
	service := amount.Mul(policy.ServicePercent.Shift(-2))

	var notes []string
	if service.LessThan(policy.MinFee) {
		service = policy.MinFee
		notes = append(notes, "minimum service fee applied")
	} else if service.GreaterThan(policy.MaxFee) {
		service = policy.MaxFee
		notes = append(notes, "service fee capped at the maximum")
	}

	total := networkFee.Add(service)
	return FeeQuote{
		NetworkFeeEstimate: networkFee.StringFixed(q.digits),
		ServiceFee:         service.StringFixed(q.digits),
		TotalFee:           total.StringFixed(q.digits),
		Notes:              notes,
	}
}
