package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	t.Setenv("SOLROCK_LOG_FILE", "none")
	t.Setenv("SOLROCK_STORAGE", "csv")
	t.Setenv("SOLROCK_DATA_DIR", ".")

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"list", "accounts", "--data-dir", t.TempDir()})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "No hay cuentas registradas.")

	rootCmd.SetArgs([]string{"list", "trainers"})
	assert.Error(t, rootCmd.Execute())
}
