package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SOLROCK_DATA_DIR", ".")
	t.Setenv("SOLROCK_STORAGE", "csv")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, StorageCSV, cfg.Storage)
	assert.Equal(t, "solrock.db", cfg.SQLitePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvNormalizesStorage(t *testing.T) {
	t.Setenv("SOLROCK_STORAGE", "  SQLite ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage)
}

func TestFromEnvSheetsRequiresCredentials(t *testing.T) {
	t.Run("missing spreadsheet id", func(t *testing.T) {
		t.Setenv("SOLROCK_STORAGE", "sheets")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "sa.json")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_SHEETS_SPREADSHEET_ID")
	})

	t.Run("missing service account", func(t *testing.T) {
		t.Setenv("SOLROCK_STORAGE", "sheets")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-1")
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_SERVICE_ACCOUNT_JSON")
	})

	t.Run("complete", func(t *testing.T) {
		t.Setenv("SOLROCK_STORAGE", "sheets")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", " sheet-1 ")
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "sa.json")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "sheet-1", cfg.SpreadsheetID)
	})
}

func TestSQLiteFile(t *testing.T) {
	cfg := Config{DataDir: "data", SQLitePath: "solrock.db"}
	assert.Equal(t, filepath.Join("data", "solrock.db"), cfg.SQLiteFile())

	abs := filepath.Join(t.TempDir(), "x.db")
	cfg.SQLitePath = abs
	assert.Equal(t, abs, cfg.SQLiteFile())
}

func TestLogDestination(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"none", ""},
		{"OFF", ""},
		{"stderr", "stderr"},
		{"solrock.log", filepath.Join("data", "solrock.log")},
	}
	for _, tt := range tests {
		cfg := Config{DataDir: "data", LogFile: tt.file}
		assert.Equal(t, tt.want, cfg.LogDestination(), tt.file)
	}
}
