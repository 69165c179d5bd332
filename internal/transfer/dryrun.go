package transfer

import "fmt"

// RouteKind classifies how a transfer physically travels.
type RouteKind string

const (
	// RouteDirect means one endpoint is the hub itself, so no extra hop exists.
	RouteDirect RouteKind = "direct"
	// RouteViaHub means neither endpoint is the hub and the transfer passes
	// through it.
	RouteViaHub RouteKind = "via intermediary hub"
)

// DryRunStep is one line of the preview.
type DryRunStep struct {
	Action string
	Detail string
}

// DryRun is a human-inspectable preview of what a submission would do. It is
// assembled locally and never sent anywhere.
type DryRun struct {
	Route RouteKind
	Steps []DryRunStep
}

// DryRunBuilder assembles previews. The hub chain decides the route
// classification.
type DryRunBuilder struct {
	hub Chain
}

// NewDryRunBuilder returns a builder that classifies routes against hub.
func NewDryRunBuilder(hub Chain) *DryRunBuilder {
	return &DryRunBuilder{hub: hub}
}

// Build renders the withdraw / buy-execution / deposit triple for a request
// and its quote. Pure assembly: no validation, no I/O.
func (b *DryRunBuilder) Build(req Request, quote FeeQuote) DryRun {
	route := RouteViaHub
	if req.From == b.hub || req.To == b.hub {
		route = RouteDirect
	}

	exec := fmt.Sprintf("up to %s %s in fees", quote.TotalFee, req.Asset)
	if quote.TotalFee == FeeUnknown {
		exec = "fees settled on-chain at execution time"
	}

	return DryRun{
		Route: route,
		Steps: []DryRunStep{
			{Action: "withdraw", Detail: fmt.Sprintf("%s %s from %s", req.Amount, req.Asset, req.From.Label())},
			{Action: "buy execution", Detail: exec},
			{Action: "deposit", Detail: fmt.Sprintf("%s %s to %s", req.Amount, req.Asset, req.To.Label())},
		},
	}
}
