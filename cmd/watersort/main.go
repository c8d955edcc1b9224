package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/watersort/internal/config"
	"svw.info/watersort/internal/generator"
	"svw.info/watersort/internal/hint"
	"svw.info/watersort/internal/infrastructure/storage"
	"svw.info/watersort/internal/logging"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/solver"
	"svw.info/watersort/internal/usecase"
	"svw.info/watersort/internal/validator"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "watersort",
	Short:         "Water sort level generator, validator and hint server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Encoding)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
}

// newService wires providers into the use case layer. Storage is opened
// only when withStore is set; the returned close func releases it.
func newService(withStore bool) (*usecase.Service, func() error, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, nil, err
	}
	g := generator.New(&generator.Options{Policy: policy, MaxAttempts: cfg.Generator.MaxAttempts})
	var (
		st         ports.Storage
		closeStore = func() error { return nil }
	)
	if withStore {
		st, closeStore, err = storage.Open(cfg.Storage.Kind, cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage: %w", err)
		}
	}
	uc := usecase.NewService(g, validator.New(), hint.NewSolver(), st, logger)
	uc.Solver = &solver.BacktrackingSolver{MaxNodes: cfg.Solver.MaxNodes}
	uc.Workers = cfg.Generator.Workers
	uc.HintLimit = cfg.Hints.Limit
	return uc, closeStore, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
