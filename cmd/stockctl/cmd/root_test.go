package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { driver = "" })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLI_SQLiteFlow(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "stock.db"))

	output, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, output, "Schema up to date (sqlite)")

	output, err = run(t, "activate", "AAPL", "MSFT")
	require.NoError(t, err)
	assert.Contains(t, output, "Symbol 'AAPL' activated successfully")
	assert.Contains(t, output, "Symbol 'MSFT' activated successfully")

	_, err = run(t, "average", "AAPL")
	assert.Error(t, err)
}

func TestCLI_ActivateRejectsBadSymbol(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "stock.db"))

	_, err := run(t, "activate", "not a symbol")
	assert.Error(t, err)
}
