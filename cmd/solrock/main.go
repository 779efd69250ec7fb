package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solrock/internal/config"
	"solrock/internal/console"
	"solrock/internal/logging"
	"solrock/internal/manager"
	"solrock/internal/menu"
	"solrock/internal/store"
)

var (
	storageFlag string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "solrock",
	Short: "Solrock Battle Association tournament registry",
	Long: `Interactive registry for tournament participants, their accounts and
their creatures. Records are kept in CSV files by default; SQLite and
Google Sheets are available through SOLROCK_STORAGE or --storage.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
			return m.Run(ctx)
		})
	},
}

var listCmd = &cobra.Command{
	Use:       "list [participants|accounts|creatures]",
	Short:     "Print every record of one entity kind",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"participants", "accounts", "creatures"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMenu(cmd, func(_ context.Context, m *menu.Menu) error {
			return m.List(args[0])
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "storage backend: csv, sqlite or sheets (overrides SOLROCK_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for data files (overrides SOLROCK_DATA_DIR)")
	rootCmd.AddCommand(listCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withMenu wires config, logger, storage and managers around fn.
func withMenu(cmd *cobra.Command, fn func(ctx context.Context, m *menu.Menu) error) error {
	if storageFlag != "" {
		_ = os.Setenv("SOLROCK_STORAGE", storageFlag)
	}
	if dataDirFlag != "" {
		_ = os.Setenv("SOLROCK_DATA_DIR", dataDirFlag)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	backend, err := store.NewBackend(ctx, cfg)
	if err != nil {
		log.Error("open storage", zap.Error(err))
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
	}()

	con := console.New(os.Stdin, cmd.OutOrStdout())
	set, err := manager.OpenAll(backend, con, log)
	if err != nil {
		log.Error("initialize storage", zap.Error(err))
		return err
	}

	log.Info("started", zap.String("command", cmd.Name()))
	err = fn(ctx, menu.New(con, set, log))
	log.Info("stopped", zap.Error(err))
	return err
}
