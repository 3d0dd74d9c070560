package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	ucAdmin "github.com/BruksfildServices01/semijoias-crm/internal/usecase/admin"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Cria um usuário administrador",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if adminEmail == "" || adminPassword == "" {
			return errors.New("--email e --password são obrigatórios")
		}

		return withInfra(cmd.Context(), func(in *bootstrap.Infra) error {
			users := ucAdmin.NewUsers(in.Admins, in.Audit, nil)
			u, err := users.Create(cmd.Context(), ucAdmin.NewUser{
				Name:     adminName,
				Email:    adminEmail,
				Password: adminPassword,
				Role:     admin.RoleAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin criado: %s (%s)\n", u.Email, u.ID)
			return nil
		})
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminName, "name", "Administrador", "nome")
	f.StringVar(&adminEmail, "email", "", "e-mail de login")
	f.StringVar(&adminPassword, "password", "", "senha inicial")
}
