package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/causewayhq/causeway/internal/transfer"
)

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	blockStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	noteStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay0)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorInfo)
	statusStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(1, 2)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewRoutes:
		body = a.renderRoutes()
	default:
		body = a.renderForm()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderDryRun()
	}
	return body
}

func (a *App) renderForm() string {
	title := titleStyle.Render("Causeway") + "  " + dimStyle.Render("cross-chain transfer desk")
	out := title + "\n\n"
	out += a.fieldRow(fieldFrom, "From", a.req.From.Label())
	out += a.fieldRow(fieldTo, "To", a.req.To.Label())
	out += a.fieldRow(fieldAsset, "Asset", string(a.req.Asset))
	out += a.fieldRow(fieldAmount, "Amount", a.amount.View())
	out += "\n" + a.renderBalances() + "\n"
	out += "\n" + a.renderVerdict()
	out += "\n" + a.hintLine(a.keys.ShortHelp())
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}

// fieldRow draws a single form line. Selectors get side arrows while they
// hold focus; the amount field renders its own textinput cursor.
func (a *App) fieldRow(f fieldIndex, label, value string) string {
	marker := "  "
	style := labelStyle
	if a.focus == f {
		marker = cursorStyle.Render("▶") + " "
		style = focusStyle
		if f != fieldAmount {
			value = "◀ " + value + " ▶"
		}
	}
	return fmt.Sprintf("%s%s %s\n", marker, style.Render(fmt.Sprintf("%-7s", label+":")), value)
}

func (a *App) renderBalances() string {
	line := labelStyle.Render("Balances:")
	shown := map[transfer.Chain]bool{}
	for _, chain := range []transfer.Chain{a.req.From, a.req.To} {
		if shown[chain] {
			continue
		}
		shown[chain] = true
		snap, ok := a.snaps[chain]
		if !ok {
			line += fmt.Sprintf("  %s unknown", chain.Label())
			continue
		}
		line += fmt.Sprintf("  %s free %s (ED %s)", chain.Label(), snap.Free, snap.ExistentialDeposit)
	}
	if a.probing {
		line += "  " + dimStyle.Render("refreshing...")
	}
	if a.probeErr != "" {
		line += "\n" + noteStyle.Render("probe: "+a.probeErr)
	}
	return line
}

func (a *App) renderVerdict() string {
	var out string
	if len(a.problems) > 0 {
		out += blockStyle.Render("Problems") + "\n"
		for _, p := range a.problems {
			out += "  - " + p + "\n"
		}
	}
	if !a.verdict.OK {
		out += blockStyle.Render("blocked") + "  " + a.verdict.Reason + "\n"
		if a.verdict.MinRequired != nil {
			out += dimStyle.Render(fmt.Sprintf("  %s %s clears the destination's existential deposit", a.verdict.MinRequired, a.req.Asset)) + "\n"
		}
		return out
	}
	out += okStyle.Render("ok") + "  " + string(a.verdict.Mode)
	if a.verdict.Reason != "" {
		out += "  " + noteStyle.Render(a.verdict.Reason)
	}
	out += "\n" + a.renderQuote()
	return out
}

func (a *App) renderQuote() string {
	out := fmt.Sprintf("%s network %s  service %s  total %s %s",
		labelStyle.Render("Fees:"), a.quote.NetworkFeeEstimate, a.quote.ServiceFee, a.quote.TotalFee, a.req.Asset)
	for _, n := range a.quote.Notes {
		out += "\n  " + noteStyle.Render(n)
	}
	return out + "\n"
}

func (a *App) renderRoutes() string {
	title := titleStyle.Render("Routes")
	out := title + "  " + dimStyle.Render("hub: "+a.table.Hub().Label()) + "\n\n"
	for _, r := range a.table.Routes() {
		b := a.table.Bounds(r.Mode)
		lim := "min " + b.Min.String()
		if b.Max != nil {
			lim += "  max " + b.Max.String()
		}
		flag := ""
		if _, ok := a.table.BootstrapFor(r.To); ok && r.Mode == transfer.ModeTeleport {
			flag = "  " + noteStyle.Render("checks destination ED")
		}
		out += fmt.Sprintf("  %-20s %s -> %s  %s%s\n", r.Mode, r.From.Label(), r.To.Label(), dimStyle.Render(lim), flag)
	}
	out += "\n" + a.hintLine([]key.Binding{a.keys.Back, a.keys.Quit})
	return out
}

func (a *App) renderDryRun() string {
	out := titleStyle.Render("Dry Run") + "\n"
	out += fmt.Sprintf("%s %s  %s -> %s\n", a.req.Amount, a.req.Asset, a.req.From.Label(), a.req.To.Label())
	out += dimStyle.Render("route: "+string(a.run.Route)) + "\n\n"
	for i, s := range a.run.Steps {
		out += fmt.Sprintf("%d. %-14s %s\n", i+1, s.Action, s.Detail)
	}
	out += fmt.Sprintf("\ntotal fee: %s %s\n", a.quote.TotalFee, a.req.Asset)
	if !a.signer.Connected() {
		out += noteStyle.Render(a.signer.Describe()) + "\n"
	}
	out += "\n" + a.hintLine([]key.Binding{a.keys.Submit, a.keys.Back})
	return modalStyle.Render(out)
}

func (a *App) hintLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render("["+h.Key+"]")+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
