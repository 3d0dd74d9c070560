package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	ucClient "github.com/BruksfildServices01/semijoias-crm/internal/usecase/client"
)

var importClientsCmd = &cobra.Command{
	Use:   "import-clients <arquivo.csv>",
	Short: "Importa clientes de um CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return withInfra(cmd.Context(), func(in *bootstrap.Infra) error {
			create := ucClient.NewCreateClient(in.Clients, in.Audit, in.Clock)
			res, err := ucClient.NewImportClients(create, in.Audit).Execute(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d importada(s), %d ignorada(s)\n", res.Imported, len(res.Skipped))
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "  - %s: %s\n", s.Name, s.Reason)
			}
			return nil
		})
	},
}

var exportOutput string

var exportClientsCmd = &cobra.Command{
	Use:   "export-clients",
	Short: "Exporta as clientes em CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withInfra(cmd.Context(), func(in *bootstrap.Infra) error {
			data, err := ucClient.NewExportClients(in.Clients).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if exportOutput == "" || exportOutput == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(exportOutput, data, 0o644)
		})
	},
}

func init() {
	exportClientsCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "arquivo de saída (padrão: stdout)")
}
