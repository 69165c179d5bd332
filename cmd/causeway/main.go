package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/causewayhq/causeway/internal/config"
	"github.com/causewayhq/causeway/internal/probe"
	"github.com/causewayhq/causeway/internal/transfer"
	"github.com/causewayhq/causeway/internal/tui"
)

func main() {
	validate := flag.Bool("validate", false, "run non-TUI validation")
	flag.Parse()
	if *validate {
		if err := runValidation(); err != nil {
			fmt.Fprintln(os.Stderr, "validation failed:", err)
			os.Exit(1)
		}
		fmt.Println("validation ok")
		return
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		log.Fatalf("route policy: %v", err)
	}
	table, err := transfer.NewTable(policy)
	if err != nil {
		log.Fatalf("route table: %v", err)
	}

	schedule, err := cfg.FeeSchedule()
	if err != nil {
		log.Fatalf("fee schedule: %v", err)
	}
	estimates, err := cfg.NetworkEstimates()
	if err != nil {
		log.Fatalf("network estimates: %v", err)
	}
	seeds, err := cfg.SeedBalances()
	if err != nil {
		log.Fatalf("seed balances: %v", err)
	}
	endpoints, err := cfg.ProbeEndpoints()
	if err != nil {
		log.Fatalf("probe endpoints: %v", err)
	}

	logger, closeLog, err := openLogger(cfg.Log.Path)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closeLog()

	// balance sources; configured snapshots stand in for live node RPC
	seed := probe.NewStatic("seed", seeds)
	sources := make(map[transfer.Chain][]probe.Source, len(endpoints))
	for chain := range endpoints {
		sources[chain] = []probe.Source{seed}
	}

	app := tui.New(ctx, tui.Deps{
		Table:     table,
		Guard:     transfer.NewGuard(table),
		Quoter:    transfer.NewQuoter(schedule, int32(cfg.UI.DisplayDigits)),
		DryRun:    transfer.NewDryRunBuilder(table.Hub()),
		Prober:    probe.New(sources, cfg.Probe.Timeout, logger),
		Estimates: estimates,
		Signer:    tui.NoSigner{},
		Refresh:   cfg.Probe.Refresh,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func openLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(f, nil))
	return logger, func() { _ = f.Close() }, nil
}
