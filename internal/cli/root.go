package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silay-drrmo/drrmo-api/internal/repository"
	"github.com/silay-drrmo/drrmo-api/internal/service"
	"github.com/silay-drrmo/drrmo-api/pkg/config"
	"github.com/silay-drrmo/drrmo-api/pkg/database"
	"github.com/silay-drrmo/drrmo-api/pkg/logger"
)

var (
	jsonOutput bool
	rootCmd    = &cobra.Command{
		Use:   "recordctl",
		Short: "recordctl - DRRMO record maintenance",
		Long: `recordctl runs maintenance operations over the DRRMO activity record
tables: bulk archival of old records and restoration of archived ones.
Both operations support a dry-run preview and require explicit
confirmation before mutating.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output the run result in JSON format")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// runtime bundles everything an archival command needs.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *service.ArchivalService
	close   func()
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	archivalRepo := repository.NewArchivalRepository(db)
	userRepo := repository.NewUserRepository(db)
	svc := service.NewArchivalService(archivalRepo, userRepo, logr)

	return &runtime{
		cfg:     cfg,
		logger:  logr,
		service: svc,
		close: func() {
			_ = db.Close()
			_ = logr.Sync()
		},
	}, nil
}

func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
