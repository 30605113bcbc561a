package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/config"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/logging"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "screening",
	Short:         "Screening ontology service",
	Long:          `Screening ontology stores role screening configurations: layered criteria with AND/OR rule-trees, validated before they are saved.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, console)")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.ServerConfig, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openDatabase opens the configured database and loads the named queries.
// The schema must already be migrated.
func openDatabase(ctx context.Context, cfg *config.ServerConfig) (*sqlx.DB, *db.Queries, error) {
	database, err := db.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	status, err := db.MigrateStatus(ctx, database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to check migrations: %w", err)
	}
	for _, m := range status {
		if !m.Applied {
			database.Close()
			return nil, nil, fmt.Errorf("migration %s not applied - run 'screening migrate up' first", m.ID)
		}
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return database, queries, nil
}

func newEngine(cfg *config.ServerConfig, logger *zap.Logger) *rules.Engine {
	return rules.NewEngine(logger, rules.WithLimits(cfg.MaxStructureNodes, types.MaxStructureDepth))
}
