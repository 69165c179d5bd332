package transfer

import "fmt"

// Validate runs the structural checks that need no chain state: endpoint
// distinctness, amount shape, and enum membership. It returns human-readable
// problems in a stable order; an empty slice means the request is well-formed.
// Route legality and balance safety are the guard's job, not this one's.
func Validate(req Request) []string {
	var errs []string
	if req.From == req.To {
		errs = append(errs, "source and destination must be different chains")
	}
	if amt, err := ParseAmount(req.Amount); err != nil {
		errs = append(errs, err.Error())
	} else if amt.Sign() <= 0 {
		errs = append(errs, "amount must be greater than zero")
	}
	if _, ok := ParseAsset(string(req.Asset)); !ok {
		errs = append(errs, fmt.Sprintf("asset %q is not supported", string(req.Asset)))
	}
	if _, ok := ParseChain(string(req.From)); !ok {
		errs = append(errs, fmt.Sprintf("chain %q is not supported", string(req.From)))
	}
	if _, ok := ParseChain(string(req.To)); !ok {
		errs = append(errs, fmt.Sprintf("chain %q is not supported", string(req.To)))
	}
	return errs
}
