package transfer

import "strings"

// Asset identifies a transferable token.
type Asset string

const (
	AssetDOT  Asset = "DOT"
	AssetUSDT Asset = "USDT"
	AssetUSDC Asset = "USDC"
)

// Assets returns every supported asset in display order.
func Assets() []Asset {
	return []Asset{AssetDOT, AssetUSDT, AssetUSDC}
}

// ParseAsset resolves a case-insensitive asset symbol.
func ParseAsset(s string) (Asset, bool) {
	a := Asset(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Assets() {
		if a == known {
			return known, true
		}
	}
	return "", false
}

// AssetClass groups assets that share route and fee policy.
type AssetClass string

const (
	// ClassNative is the ecosystem's own token (DOT).
	ClassNative AssetClass = "native"
	// ClassStable covers stable-value fungible assets (USDT, USDC).
	ClassStable AssetClass = "stable"
)

// Class returns the policy class the asset belongs to.
func (a Asset) Class() AssetClass {
	if a == AssetDOT {
		return ClassNative
	}
	return ClassStable
}
