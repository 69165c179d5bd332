package transfer

import "strings"

// Chain identifies a network that can appear as a transfer endpoint.
type Chain string

const (
	ChainPolkadot  Chain = "polkadot"
	ChainAssetHub  Chain = "assethub"
	ChainHydration Chain = "hydration"
	ChainMoonbeam  Chain = "moonbeam"
)

// Chains returns every supported chain in display order.
func Chains() []Chain {
	return []Chain{ChainPolkadot, ChainAssetHub, ChainHydration, ChainMoonbeam}
}

// ParseChain resolves a case-insensitive chain name.
func ParseChain(s string) (Chain, bool) {
	c := Chain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Chains() {
		if c == known {
			return known, true
		}
	}
	return "", false
}

// Label returns the human-readable chain name.
func (c Chain) Label() string {
	switch c {
	case ChainPolkadot:
		return "Polkadot"
	case ChainAssetHub:
		return "Asset Hub"
	case ChainHydration:
		return "Hydration"
	case ChainMoonbeam:
		return "Moonbeam"
	}
	return string(c)
}
