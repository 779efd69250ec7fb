package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
	StorageSheets = "sheets"
)

type Config struct {
	DataDir string `env:"SOLROCK_DATA_DIR" envDefault:"."`
	Storage string `env:"SOLROCK_STORAGE" envDefault:"csv"`

	SQLitePath string `env:"SOLROCK_SQLITE_PATH" envDefault:"solrock.db"`

	SpreadsheetID            string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`

	LogLevel string `env:"SOLROCK_LOG_LEVEL" envDefault:"info"`
	// "stderr" logs to stderr, "none" disables logging.
	LogFile string `env:"SOLROCK_LOG_FILE" envDefault:"solrock.log"`
}

func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	c.DataDir = strings.TrimSpace(c.DataDir)
	if c.DataDir == "" {
		c.DataDir = "."
	}
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.SpreadsheetID = strings.TrimSpace(c.SpreadsheetID)
	c.GoogleServiceAccountJSON = strings.TrimSpace(c.GoogleServiceAccountJSON)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFile = strings.TrimSpace(c.LogFile)

	if c.Storage == StorageSheets {
		if c.SpreadsheetID == "" {
			return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	}

	return c, nil
}

// SQLiteFile resolves SQLitePath against DataDir unless it is absolute.
func (c Config) SQLiteFile() string {
	if filepath.IsAbs(c.SQLitePath) {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, c.SQLitePath)
}

// LogDestination returns the zap output path, or "" when logging is off.
func (c Config) LogDestination() string {
	switch strings.ToLower(c.LogFile) {
	case "", "none", "off":
		return ""
	case "stderr":
		return "stderr"
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}
