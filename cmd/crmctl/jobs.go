package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	ucAutomation "github.com/BruksfildServices01/semijoias-crm/internal/usecase/automation"
	ucBilling "github.com/BruksfildServices01/semijoias-crm/internal/usecase/billing"
	ucCampaign "github.com/BruksfildServices01/semijoias-crm/internal/usecase/campaign"
)

// Jobs pensados para cron: rodam uma vez e saem.

var birthdaysCmd = &cobra.Command{
	Use:   "check-birthdays",
	Short: "Envia a mensagem de aniversário para as clientes do dia",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withInfra(cmd.Context(), func(in *bootstrap.Infra) error {
			send := ucCampaign.NewSendCampaign(in.Clients, in.Registry, in.Notifier, in.Audit, in.Config.CampaignConcurrency)
			auto := ucAutomation.NewAutomations(in.Clients, send, in.Templates, in.Audit, in.Clock, in.Config.InactiveThresholdMonths)

			run, err := auto.Execute(cmd.Context(), ucAutomation.Request{Kind: templates.Birthday})
			if err != nil {
				return err
			}
			logger.GetLogger().Info("birthday automation finished",
				zap.Int("recipients", run.Recipients),
				zap.Int("success", run.Result.SuccessCount),
				zap.Int("errors", run.Result.ErrorCount),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%d aniversariante(s): %d enviado(s), %d erro(s)\n",
				run.Recipients, run.Result.SuccessCount, run.Result.ErrorCount)
			return nil
		})
	},
}

var billingRemindersCmd = &cobra.Command{
	Use:   "billing-reminders",
	Short: "Envia os lembretes de cobrança vencidos",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withInfra(cmd.Context(), func(in *bootstrap.Infra) error {
			svc := ucBilling.NewService(in.Billing, in.Clients, in.Notifier, in.Templates, in.Audit, in.Clock)

			res, err := svc.SendDueReminders(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lembretes: %d enviado(s), %d erro(s)\n",
				res.SuccessCount, res.ErrorCount)
			return nil
		})
	},
}
