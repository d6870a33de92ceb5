package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so commands can be
// executed repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLedgerInitAddStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmp", "binance-ledger.csv")

	_, _, err := execute(t, "init", "--path", path)
	require.NoError(t, err)
	_, _, err = execute(t, "init", "--path", path)
	require.NoError(t, err)

	out, _, err := execute(t, "stats", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "Trades: 0\nPnL (USDT): 0.00\n", out)

	for _, result := range []string{"10", "-5", "0", "bad"} {
		_, _, err = execute(t, "add", "--path", path,
			"--ts", "2026-01-30 19:00", "--pair", "BTCUSDT", "--side", "BUY",
			"--result_usdt", result)
		require.NoError(t, err)
	}

	out, _, err = execute(t, "stats", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "Trades: 4\nPnL (USDT): 5.00\nWin rate: 1/4 (25.0%)\nLosses: 1\n", out)
}

func TestAddWritesAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	_, _, err := execute(t, "add", "--path", path,
		"--ts", "2026-01-30 19:00", "--pair", "BTCUSDT", "--side", "BUY",
		"--setup", "Breakout retest", "--size_usdt", "10", "--entry", "42000",
		"--stop", "41500", "--target", "43500", "--result_usdt", "0",
		"--notes", "opened")
	require.NoError(t, err)

	// Optional flags from the previous run must not leak into this one.
	_, _, err = execute(t, "add", "--path", path,
		"--ts", "t2", "--pair", "ETHUSDT", "--side", "SELL", "--result_usdt", "-1")
	require.NoError(t, err)

	recs, err := journal.NewCSV(path).Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, journal.TradeRecord{
		TS: "2026-01-30 19:00", Pair: "BTCUSDT", Side: "BUY", Setup: "Breakout retest",
		SizeUSDT: "10", Entry: "42000", Stop: "41500", Target: "43500",
		ResultUSDT: "0", Notes: "opened",
	}, recs[0])
	assert.Equal(t, journal.TradeRecord{TS: "t2", Pair: "ETHUSDT", Side: "SELL", ResultUSDT: "-1"}, recs[1])
}

func TestAddRequiresMandatoryFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	_, _, err := execute(t, "add", "--path", path, "--ts", "t", "--pair", "BTCUSDT", "--side", "BUY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result_usdt")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAddRejectsBlankMandatoryValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	_, _, err := execute(t, "add", "--path", path, "--ts", "t", "--pair", "", "--side", "BUY", "--result_usdt", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair")
}

func TestStatsMissingLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	out, errOut, err := execute(t, "stats", "--path", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrNotFound)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "ledger not found: "+path)
}

func TestPathRequired(t *testing.T) {
	_, _, err := execute(t, "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"path" not set`)
}

func TestSQLiteBackendFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	_, _, err := execute(t, "add", "--path", path, "--ts", "t", "--pair", "BTCUSDT", "--side", "BUY", "--result_usdt", "2.5")
	require.NoError(t, err)

	out, _, err := execute(t, "stats", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "Trades: 1\nPnL (USDT): 2.50\nWin rate: 1/1 (100.0%)\nLosses: 0\n", out)

	_, err = journal.NewSQLite(path).Records()
	assert.NoError(t, err)
}

func TestConfigSuppliesLedgerPath(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "ledger.csv")
	cfgPath := filepath.Join(dir, "tradebook.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ledger:\n  path: "+ledger+"\n"), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "add", "--ts", "t", "--pair", "BTCUSDT", "--side", "BUY", "--result_usdt", "3")
	require.NoError(t, err)

	out, _, err := execute(t, "--config", cfgPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Trades: 1\n")
}

func TestShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	_, _, err := execute(t, "init", "--path", path)
	require.NoError(t, err)
	out, _, err := execute(t, "show", "--path", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = execute(t, "add", "--path", path, "--ts", "t1", "--pair", "BTCUSDT", "--side", "BUY", "--result_usdt", "4")
	require.NoError(t, err)

	out, _, err = execute(t, "show", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "** Trade 1: BTCUSDT BUY (t1)")
	assert.Contains(t, out, ":RESULT_USDT: 4\n")
}

func TestCard(t *testing.T) {
	out, _, err := execute(t, "card", "--pair", "BTCUSDT", "--setup", "Breakout retest",
		"--bias", "Uptrend + retest", "--bankroll", "100", "--entry", "42000",
		"--stop", "41500", "--target", "43500")
	require.NoError(t, err)

	assert.Contains(t, out, "TRADE CARD\n")
	assert.Contains(t, out, "- Risk: 1% = 1 USDT\n")
	assert.Contains(t, out, "- Size (suggested): 84 USDT\n")
	assert.Contains(t, out, "- R:R (approx): 3\n")
	assert.NotContains(t, out, "Level(s)")
}

func TestCardCapIsSilent(t *testing.T) {
	out, errOut, err := execute(t, "card", "--pair", "BTCUSDT", "--setup", "s", "--bias", "b",
		"--bankroll", "100", "--entry", "42000", "--stop", "41999.9", "--target", "42100")
	require.NoError(t, err)
	assert.Contains(t, out, "- Size (suggested): 100 USDT\n")
	assert.Empty(t, errOut)

	_, errOut, err = execute(t, "--log-level", "debug", "card", "--pair", "BTCUSDT", "--setup", "s", "--bias", "b",
		"--bankroll", "100", "--entry", "42000", "--stop", "41999.9", "--target", "42100")
	require.NoError(t, err)
	assert.Contains(t, errOut, "size capped to bankroll")
}

func TestCardInvalidInputPrintsNothing(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		stop  string
	}{
		{"zero entry", "0", "1"},
		{"entry equals stop", "42000", "42000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := execute(t, "card", "--pair", "BTCUSDT", "--setup", "s", "--bias", "b",
				"--bankroll", "100", "--entry", tt.entry, "--stop", tt.stop, "--target", "43500")
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Contains(t, errOut, "entry and stop must be >0 and different")
		})
	}
}

func TestCardDefaultsFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tradebook.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sizing:\n  bankroll: 1000\n  risk_pct: 2\n"), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "card", "--pair", "XUSDT", "--setup", "s", "--bias", "b",
		"--entry", "2", "--stop", "2.2", "--target", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "- Bankroll (ring-fenced): 1,000.00 USDT\n")
	assert.Contains(t, out, "- Risk: 2% = 20 USDT\n")
	assert.Contains(t, out, "- Size (suggested): 200 USDT\n")

	// Flags beat the config file.
	out, _, err = execute(t, "--config", cfgPath, "card", "--pair", "XUSDT", "--setup", "s", "--bias", "b",
		"--bankroll", "500", "--risk_pct", "1", "--entry", "2", "--stop", "2.2", "--target", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "- Risk: 1% = 5 USDT\n")
}

func TestCardRequiresBankroll(t *testing.T) {
	_, _, err := execute(t, "card", "--pair", "BTCUSDT", "--setup", "s", "--bias", "b",
		"--entry", "42000", "--stop", "41500", "--target", "43500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bankroll" not set`)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tradebook.yaml")

	out, _, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, _, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Log level: warn")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tradebook version "+version+"\n", out)
}
