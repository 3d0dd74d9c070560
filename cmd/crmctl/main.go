package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	"github.com/BruksfildServices01/semijoias-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/semijoias-crm/internal/db"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "Ferramentas de operação do CRM de semijoias",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg = config.Load()
		return logger.InitLogger(&logger.LogConfig{
			Level:       cfg.LogLevel,
			Environment: cfg.Env,
			ServiceName: "crmctl",
		})
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Sync()
	},
}

var cfg *config.Config

func main() {
	rootCmd.AddCommand(
		migrateCmd,
		birthdaysCmd,
		billingRemindersCmd,
		importClientsCmd,
		exportClientsCmd,
		createAdminCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

// withInfra abre banco e infraestrutura para um comando e fecha tudo ao final.
func withInfra(ctx context.Context, fn func(*bootstrap.Infra) error) error {
	log := logger.GetLogger()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()

	in, err := bootstrap.New(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer in.Close()

	return fn(in)
}
