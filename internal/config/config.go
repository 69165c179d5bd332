package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/causewayhq/causeway/internal/transfer"
)

// Config holds application configuration. Every amount is a decimal string
// exactly as written by the operator; the builder methods convert and the
// load path rejects values that do not parse.
type Config struct {
	Routes    RoutesConfig
	Fees      FeesConfig
	Bootstrap map[string]BuffersConfig
	Probe     ProbeConfig
	Balances  map[string]BalanceConfig
	UI        UIConfig
	Log       LogConfig
}

// RoutesConfig overrides the amount policy of the built-in route table. The
// route pairs themselves are product data and not configurable.
type RoutesConfig struct {
	Hub             string
	StableMin       string `mapstructure:"stable_min"`
	TeleportMin     string `mapstructure:"teleport_min"`
	ExperimentalMin string `mapstructure:"experimental_min"`
	ExperimentalMax string `mapstructure:"experimental_max"`
}

// FeesConfig holds the per-class service-fee schedules.
type FeesConfig struct {
	Native ClassFeeConfig
	Stable ClassFeeConfig
}

// ClassFeeConfig is one asset class's fee schedule.
type ClassFeeConfig struct {
	ServicePercent  string `mapstructure:"service_percent"`
	MinFee          string `mapstructure:"min_fee"`
	MaxFee          string `mapstructure:"max_fee"`
	NetworkEstimate string `mapstructure:"network_estimate"`
}

// BuffersConfig marks a chain bootstrap-sensitive and sets its funding
// buffers. Entries merge over the built-in defaults.
type BuffersConfig struct {
	FeeBuffer    string `mapstructure:"fee_buffer"`
	SafetyBuffer string `mapstructure:"safety_buffer"`
}

// ProbeConfig controls the balance prober.
type ProbeConfig struct {
	Endpoints map[string][]string
	Timeout   time.Duration
	Refresh   time.Duration
}

// BalanceConfig seeds the demo balance source for one chain.
type BalanceConfig struct {
	Free               string
	ExistentialDeposit string `mapstructure:"existential_deposit"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DisplayDigits int `mapstructure:"display_digits"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix CAUSEWAY_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("routes.hub", string(transfer.ChainAssetHub))
	v.SetDefault("routes.stable_min", "0.10")
	v.SetDefault("routes.teleport_min", "0.01")
	v.SetDefault("routes.experimental_min", "0.50")
	v.SetDefault("routes.experimental_max", "100")
	v.SetDefault("fees.native.service_percent", "0.25")
	v.SetDefault("fees.native.min_fee", "0.005")
	v.SetDefault("fees.native.max_fee", "1")
	v.SetDefault("fees.native.network_estimate", "0.012")
	v.SetDefault("fees.stable.service_percent", "0.50")
	v.SetDefault("fees.stable.min_fee", "0.05")
	v.SetDefault("fees.stable.max_fee", "25")
	v.SetDefault("fees.stable.network_estimate", "0.02")
	v.SetDefault("bootstrap.polkadot.fee_buffer", "0.01")
	v.SetDefault("bootstrap.polkadot.safety_buffer", "0.05")
	v.SetDefault("bootstrap.assethub.fee_buffer", "0.01")
	v.SetDefault("bootstrap.assethub.safety_buffer", "0.05")
	v.SetDefault("probe.endpoints.polkadot", []string{"wss://rpc.polkadot.io", "wss://polkadot-rpc.dwellir.com"})
	v.SetDefault("probe.endpoints.assethub", []string{"wss://polkadot-asset-hub-rpc.polkadot.io", "wss://statemint-rpc.dwellir.com"})
	v.SetDefault("probe.endpoints.hydration", []string{"wss://rpc.hydradx.cloud"})
	v.SetDefault("probe.endpoints.moonbeam", []string{"wss://wss.api.moonbeam.network"})
	v.SetDefault("probe.timeout", "800ms")
	v.SetDefault("probe.refresh", "15s")
	v.SetDefault("balances.polkadot.free", "12.5")
	v.SetDefault("balances.polkadot.existential_deposit", "1")
	v.SetDefault("balances.assethub.free", "0")
	v.SetDefault("balances.assethub.existential_deposit", "0.01")
	v.SetDefault("balances.hydration.free", "0.8421")
	v.SetDefault("balances.hydration.existential_deposit", "0.01")
	v.SetDefault("balances.moonbeam.free", "3.2")
	v.SetDefault("balances.moonbeam.existential_deposit", "0")
	v.SetDefault("ui.display_digits", 4)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "causeway", "causeway.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CAUSEWAY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "causeway"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CAUSEWAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.check(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// check runs every builder once so a broken value fails at startup instead of
// mid-session.
func (c Config) check() error {
	p, err := c.Policy()
	if err != nil {
		return err
	}
	if _, err := transfer.NewTable(p); err != nil {
		return fmt.Errorf("route policy: %w", err)
	}
	if _, err := c.FeeSchedule(); err != nil {
		return err
	}
	if _, err := c.NetworkEstimates(); err != nil {
		return err
	}
	if _, err := c.SeedBalances(); err != nil {
		return err
	}
	if _, err := c.ProbeEndpoints(); err != nil {
		return err
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive")
	}
	if c.Probe.Refresh <= 0 {
		return fmt.Errorf("probe.refresh must be positive")
	}
	if c.UI.DisplayDigits < 0 || c.UI.DisplayDigits > 12 {
		return fmt.Errorf("ui.display_digits must be between 0 and 12")
	}
	return nil
}

// Policy returns the built-in transfer policy with config overrides applied.
func (c Config) Policy() (transfer.Policy, error) {
	p := transfer.DefaultPolicy()

	hub, ok := transfer.ParseChain(c.Routes.Hub)
	if !ok {
		return transfer.Policy{}, unknownChainErr("routes.hub", c.Routes.Hub)
	}
	p.Hub = hub

	var err error
	if p.StableBounds.Min, err = parseAmountField("routes.stable_min", c.Routes.StableMin); err != nil {
		return transfer.Policy{}, err
	}
	if p.TeleportBounds.Min, err = parseAmountField("routes.teleport_min", c.Routes.TeleportMin); err != nil {
		return transfer.Policy{}, err
	}
	if p.ExperimentalBounds.Min, err = parseAmountField("routes.experimental_min", c.Routes.ExperimentalMin); err != nil {
		return transfer.Policy{}, err
	}
	expMax, err := parseAmountField("routes.experimental_max", c.Routes.ExperimentalMax)
	if err != nil {
		return transfer.Policy{}, err
	}
	p.ExperimentalBounds.Max = &expMax

	p.Bootstrap = make(map[transfer.Chain]transfer.BootstrapBuffers, len(c.Bootstrap))
	for key, buf := range c.Bootstrap {
		chain, ok := transfer.ParseChain(key)
		if !ok {
			return transfer.Policy{}, unknownChainErr("bootstrap", key)
		}
		fee, err := parseAmountField("bootstrap."+key+".fee_buffer", buf.FeeBuffer)
		if err != nil {
			return transfer.Policy{}, err
		}
		safety, err := parseAmountField("bootstrap."+key+".safety_buffer", buf.SafetyBuffer)
		if err != nil {
			return transfer.Policy{}, err
		}
		p.Bootstrap[chain] = transfer.BootstrapBuffers{FeeBuffer: fee, SafetyBuffer: safety}
	}
	return p, nil
}

// FeeSchedule returns the per-class fee policies.
func (c Config) FeeSchedule() (map[transfer.AssetClass]transfer.FeePolicy, error) {
	out := make(map[transfer.AssetClass]transfer.FeePolicy, 2)
	for _, class := range []struct {
		name string
		key  transfer.AssetClass
		cfg  ClassFeeConfig
	}{
		{"fees.native", transfer.ClassNative, c.Fees.Native},
		{"fees.stable", transfer.ClassStable, c.Fees.Stable},
	} {
		pct, err := parseAmountField(class.name+".service_percent", class.cfg.ServicePercent)
		if err != nil {
			return nil, err
		}
		minFee, err := parseAmountField(class.name+".min_fee", class.cfg.MinFee)
		if err != nil {
			return nil, err
		}
		maxFee, err := parseAmountField(class.name+".max_fee", class.cfg.MaxFee)
		if err != nil {
			return nil, err
		}
		if pct.Sign() < 0 || minFee.Sign() < 0 {
			return nil, fmt.Errorf("%s: fee values must not be negative", class.name)
		}
		if maxFee.LessThan(minFee) {
			return nil, fmt.Errorf("%s: max_fee %s is below min_fee %s", class.name, maxFee, minFee)
		}
		out[class.key] = transfer.FeePolicy{ServicePercent: pct, MinFee: minFee, MaxFee: maxFee}
	}
	return out, nil
}

// NetworkEstimates returns the per-class network fee estimates used by the
// demo wiring.
func (c Config) NetworkEstimates() (map[transfer.AssetClass]decimal.Decimal, error) {
	native, err := parseAmountField("fees.native.network_estimate", c.Fees.Native.NetworkEstimate)
	if err != nil {
		return nil, err
	}
	stable, err := parseAmountField("fees.stable.network_estimate", c.Fees.Stable.NetworkEstimate)
	if err != nil {
		return nil, err
	}
	return map[transfer.AssetClass]decimal.Decimal{
		transfer.ClassNative: native,
		transfer.ClassStable: stable,
	}, nil
}

// SeedBalances returns the simulated per-chain snapshots for the demo
// balance source.
func (c Config) SeedBalances() (transfer.Snapshots, error) {
	out := make(transfer.Snapshots, len(c.Balances))
	for key, bal := range c.Balances {
		chain, ok := transfer.ParseChain(key)
		if !ok {
			return nil, unknownChainErr("balances", key)
		}
		free, err := parseAmountField("balances."+key+".free", bal.Free)
		if err != nil {
			return nil, err
		}
		ed, err := parseAmountField("balances."+key+".existential_deposit", bal.ExistentialDeposit)
		if err != nil {
			return nil, err
		}
		if free.Sign() < 0 || ed.Sign() < 0 {
			return nil, fmt.Errorf("balances.%s: amounts must not be negative", key)
		}
		out[chain] = transfer.BalanceSnapshot{Free: free, ExistentialDeposit: ed}
	}
	return out, nil
}

// ProbeEndpoints returns the ordered endpoint list per chain.
func (c Config) ProbeEndpoints() (map[transfer.Chain][]string, error) {
	out := make(map[transfer.Chain][]string, len(c.Probe.Endpoints))
	for key, endpoints := range c.Probe.Endpoints {
		chain, ok := transfer.ParseChain(key)
		if !ok {
			return nil, unknownChainErr("probe.endpoints", key)
		}
		if len(endpoints) == 0 {
			return nil, fmt.Errorf("probe.endpoints.%s: needs at least one endpoint", key)
		}
		out[chain] = endpoints
	}
	return out, nil
}

func parseAmountField(key, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %q is not a decimal amount", key, value)
	}
	return d, nil
}

// unknownChainErr builds the error for a misspelled chain name, suggesting
// the closest known one when the typo is near enough.
func unknownChainErr(section, name string) error {
	if s := nearestChain(name); s != "" {
		return fmt.Errorf("%s: unknown chain %q (did you mean %q?)", section, name, s)
	}
	return fmt.Errorf("%s: unknown chain %q", section, name)
}

func nearestChain(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	best := ""
	bestDist := 0
	for _, c := range transfer.Chains() {
		d := levenshtein.ComputeDistance(name, string(c))
		if best == "" || d < bestDist {
			best, bestDist = string(c), d
		}
	}
	if best == "" {
		return ""
	}
	if float64(bestDist)/float64(max(len(name), len(best))) < 0.4 {
		return best
	}
	return ""
}
