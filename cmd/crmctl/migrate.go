package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/semijoias-crm/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica ou reverte migrações do banco",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas as migrações pendentes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := migrate.Up(cmd.Context(), cfg.DBUrl); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrações aplicadas")
		return nil
	},
}

var downSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Reverte migrações",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := migrate.Down(cmd.Context(), cfg.DBUrl, downSteps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migração(ões) revertida(s)\n", downSteps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão atual do schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, dirty, err := migrate.Version(cmd.Context(), cfg.DBUrl)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "versão %d (dirty=%t)\n", v, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "quantidade de migrações a reverter")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
