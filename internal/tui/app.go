package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/causewayhq/causeway/internal/probe"
	"github.com/causewayhq/causeway/internal/transfer"
)

// App ties together the transfer form, the live verdict panel, and the
// dry-run screen. Every edit re-runs the full validate/guard/quote pipeline
// synchronously, so the panel can never show a verdict for a stale request.
type App struct {
	ctx       context.Context
	table     *transfer.Table
	guard     *transfer.Guard
	quoter    *transfer.Quoter
	dryrun    *transfer.DryRunBuilder
	probes    *probe.Prober
	estimates map[transfer.AssetClass]decimal.Decimal
	signer    Signer
	refresh   time.Duration

	state  viewState
	modal  modalState
	keys   keyMap
	focus  fieldIndex
	amount textinput.Model

	fromIdx  int
	toIdx    int
	assetIdx int

	req      transfer.Request
	snaps    transfer.Snapshots
	problems []string
	verdict  transfer.Result
	quote    transfer.FeeQuote
	run      transfer.DryRun

	probing  bool
	probeErr string
	status   string
}

type Deps struct {
	Table     *transfer.Table
	Guard     *transfer.Guard
	Quoter    *transfer.Quoter
	DryRun    *transfer.DryRunBuilder
	Prober    *probe.Prober
	Estimates map[transfer.AssetClass]decimal.Decimal
	Signer    Signer
	Refresh   time.Duration
}

type viewState string

const (
	viewForm   viewState = "form"
	viewRoutes viewState = "routes"
)

type modalState string

const (
	modalNone   modalState = ""
	modalDryRun modalState = "dryRun"
)

type fieldIndex int

const (
	fieldFrom fieldIndex = iota
	fieldTo
	fieldAsset
	fieldAmount
	fieldCount
)

// messages

type snapshotsMsg struct {
	snaps transfer.Snapshots
	err   error
}

type tickMsg time.Time

func New(ctx context.Context, deps Deps) *App {
	if deps.Signer == nil {
		deps.Signer = NoSigner{}
	}
	if deps.Refresh <= 0 {
		deps.Refresh = 15 * time.Second
	}
	inp := textinput.New()
	inp.Placeholder = "0.00"
	inp.Prompt = ""
	inp.CharLimit = 24
	inp.Width = 18
	a := &App{
		ctx:       ctx,
		table:     deps.Table,
		guard:     deps.Guard,
		quoter:    deps.Quoter,
		dryrun:    deps.DryRun,
		probes:    deps.Prober,
		estimates: deps.Estimates,
		signer:    deps.Signer,
		refresh:   deps.Refresh,
		state:     viewForm,
		keys:      newKeyMap(),
		amount:    inp,
		toIdx:     1,
		snaps:     make(transfer.Snapshots),
	}
	a.reevaluate()
	return a
}

func (a *App) Init() tea.Cmd {
	a.probing = true
	return tea.Batch(textinput.Blink, a.probeCmd(), a.tickCmd())
}

func (a *App) probeCmd() tea.Cmd {
	from, to := a.req.From, a.req.To
	return func() tea.Msg {
		snaps, err := a.probes.Pair(a.ctx, from, to)
		return snapshotsMsg{snaps: snaps, err: err}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewRoutes {
			return a.handleRoutesKey(m)
		}
		return a.handleFormKey(m)
	case snapshotsMsg:
		a.probing = false
		for chain, snap := range m.snaps {
			a.snaps[chain] = snap
		}
		a.probeErr = ""
		if m.err != nil {
			a.probeErr = m.err.Error()
		}
		a.reevaluate()
	case tickMsg:
		a.probing = true
		return a, tea.Batch(a.probeCmd(), a.tickCmd())
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.NextField):
		a.focus = (a.focus + 1) % fieldCount
		a.syncFocus()
		return a, nil
	case key.Matches(m, a.keys.PrevField):
		a.focus = (a.focus + fieldCount - 1) % fieldCount
		a.syncFocus()
		return a, nil
	case key.Matches(m, a.keys.DryRun):
		if a.verdict.OK {
			a.status = ""
			a.modal = modalDryRun
		} else {
			a.status = "resolve the listed problems before a dry run"
		}
		return a, nil
	}
	if a.focus == fieldAmount {
		var cmd tea.Cmd
		a.amount, cmd = a.amount.Update(m)
		a.reevaluate()
		return a, cmd
	}
	switch {
	case key.Matches(m, a.keys.Refresh):
		a.status = ""
		a.probing = true
		return a, a.probeCmd()
	case key.Matches(m, a.keys.Routes):
		a.state = viewRoutes
		return a, nil
	case key.Matches(m, a.keys.Cycle):
		delta := 1
		if s := m.String(); s == "left" || s == "h" {
			delta = -1
		}
		moved := a.cycleFocused(delta)
		a.reevaluate()
		if moved {
			a.probing = true
			return a, a.probeCmd()
		}
	}
	return a, nil
}

func (a *App) handleRoutesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.Routes):
		a.state = viewForm
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.DryRun):
		a.modal = modalNone
	case key.Matches(m, a.keys.Submit):
		a.modal = modalNone
		if !a.signer.Connected() {
			a.status = a.signer.Describe() + "; nothing was submitted"
			return a, nil
		}
		a.status = "handed to signer: " + a.signer.Describe()
	}
	return a, nil
}

// cycleFocused steps the focused selector and reports whether either
// endpoint changed, which is what forces a fresh balance probe.
func (a *App) cycleFocused(delta int) bool {
	switch a.focus {
	case fieldFrom:
		a.fromIdx = wrap(a.fromIdx+delta, len(transfer.Chains()))
		return true
	case fieldTo:
		a.toIdx = wrap(a.toIdx+delta, len(transfer.Chains()))
		return true
	case fieldAsset:
		a.assetIdx = wrap(a.assetIdx+delta, len(transfer.Assets()))
	}
	return false
}

func (a *App) syncFocus() {
	if a.focus == fieldAmount {
		a.amount.Focus()
		return
	}
	a.amount.Blur()
}

// reevaluate rebuilds the request from the form fields and runs the whole
// pipeline. The quote and dry-run are only meaningful for a passing verdict;
// otherwise they reset to their zero values and the views skip them.
func (a *App) reevaluate() {
	chains := transfer.Chains()
	assets := transfer.Assets()
	a.req = transfer.Request{
		From:   chains[a.fromIdx],
		To:     chains[a.toIdx],
		Asset:  assets[a.assetIdx],
		Amount: strings.TrimSpace(a.amount.Value()),
	}
	a.problems = transfer.Validate(a.req)
	a.verdict = a.guard.Evaluate(a.req, a.snaps)
	a.quote = transfer.FeeQuote{}
	a.run = transfer.DryRun{}
	if !a.verdict.OK {
		return
	}
	amt, err := transfer.ParseAmount(a.req.Amount)
	if err != nil {
		return
	}
	a.quote = a.quoter.Quote(a.verdict.Mode, a.req.Asset, amt, a.estimates[a.req.Asset.Class()])
	a.run = a.dryrun.Build(a.req, a.quote)
}

func wrap(i, n int) int { return ((i % n) + n) % n }
