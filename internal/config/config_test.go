package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/causewayhq/causeway/internal/transfer"
)

// setupConfigTest points HOME at a scratch dir so tests never read a real
// ~/.config/causeway/config.toml. t.Setenv restores everything on cleanup,
// which is also why these tests do not run in parallel.
func setupConfigTest(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CAUSEWAY_CONFIG", "")
}

func writeConfigFile(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CAUSEWAY_CONFIG", path)
}

func TestLoadDefaults(t *testing.T) {
	setupConfigTest(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "assethub", cfg.Routes.Hub)
	require.Equal(t, "0.10", cfg.Routes.StableMin)
	require.Equal(t, "0.01", cfg.Routes.TeleportMin)
	require.Equal(t, 4, cfg.UI.DisplayDigits)
	require.Equal(t, 800*time.Millisecond, cfg.Probe.Timeout)
	require.Equal(t, 15*time.Second, cfg.Probe.Refresh)
	require.Len(t, cfg.Bootstrap, 2)
	require.Len(t, cfg.Balances, 4)
	require.Len(t, cfg.Probe.Endpoints, 4)
	require.NotEmpty(t, cfg.Log.Path)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, transfer.ChainAssetHub, policy.Hub)
	require.True(t, policy.StableBounds.Min.Equal(decimal.RequireFromString("0.10")))

	snaps, err := cfg.SeedBalances()
	require.NoError(t, err)
	require.True(t, snaps[transfer.ChainAssetHub].Free.IsZero())
	require.True(t, snaps[transfer.ChainPolkadot].ExistentialDeposit.Equal(decimal.RequireFromString("1")))

	endpoints, err := cfg.ProbeEndpoints()
	require.NoError(t, err)
	require.Len(t, endpoints[transfer.ChainPolkadot], 2)
}

func TestLoadFromFile(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[routes]
stable_min = "0.25"

[bootstrap.hydration]
fee_buffer = "0.02"
safety_buffer = "0.03"

[balances.assethub]
free = "7.5"
existential_deposit = "0.01"
`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.25", cfg.Routes.StableMin)
	require.Equal(t, "0.01", cfg.Routes.TeleportMin, "untouched keys keep their defaults")

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.True(t, policy.StableBounds.Min.Equal(decimal.RequireFromString("0.25")))

	buf, ok := policy.Bootstrap[transfer.ChainHydration]
	require.True(t, ok, "file additions land in the bootstrap map")
	require.True(t, buf.FeeBuffer.Equal(decimal.RequireFromString("0.02")))
	_, ok = policy.Bootstrap[transfer.ChainPolkadot]
	require.True(t, ok, "default bootstrap entries survive merging")

	snaps, err := cfg.SeedBalances()
	require.NoError(t, err)
	require.True(t, snaps[transfer.ChainAssetHub].Free.Equal(decimal.RequireFromString("7.5")))
}

func TestLoadEnvOverride(t *testing.T) {
	setupConfigTest(t)
	t.Setenv("CAUSEWAY_ROUTES_STABLE_MIN", "0.30")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.30", cfg.Routes.StableMin)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.True(t, policy.StableBounds.Min.Equal(decimal.RequireFromString("0.30")))
}

func TestLoadRejectsBadAmount(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[routes]
stable_min = "lots"
`)

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "routes.stable_min")
	require.ErrorContains(t, err, "not a decimal amount")
}

func TestLoadSuggestsChainName(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[bootstrap.assethib]
fee_buffer = "0.01"
safety_buffer = "0.05"
`)

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, `did you mean "assethub"`)
}

func TestLoadRejectsInvertedExperimentalRange(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[routes]
experimental_max = "0.10"
`)

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "route policy")
}

func TestLoadRejectsNegativeFee(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[fees.native]
min_fee = "-2"
`)

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "fees.native")
	require.ErrorContains(t, err, "must not be negative")
}

func TestLoadRejectsZeroProbeTimeout(t *testing.T) {
	setupConfigTest(t)
	writeConfigFile(t, `
[probe]
timeout = "0s"
`)

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "probe.timeout")
}

func TestNetworkEstimateDefaults(t *testing.T) {
	setupConfigTest(t)

	cfg, err := Load()
	require.NoError(t, err)
	est, err := cfg.NetworkEstimates()
	require.NoError(t, err)
	require.True(t, est[transfer.ClassNative].Equal(decimal.RequireFromString("0.012")))
	require.True(t, est[transfer.ClassStable].Equal(decimal.RequireFromString("0.02")))
}

func TestNearestChain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "polkadot", nearestChain("polkadto"))
	require.Equal(t, "moonbeam", nearestChain("Moonbema"))
	require.Equal(t, "", nearestChain("zzz"))
	require.Equal(t, "", nearestChain(""))
}
