package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
)

func notificationsCmd() *cobra.Command {
	var (
		weekly    bool
		monthly   bool
		records   bool
		objective float64
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Configure Telegram recap notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings := session.NotificationSettings()
			if cmd.Flags().Changed("weekly") {
				settings.WeeklyRecap = weekly
			}
			if cmd.Flags().Changed("monthly") {
				settings.MonthlyRecap = monthly
			}
			if cmd.Flags().Changed("records") {
				settings.Records = records
			}
			if cmd.Flags().Changed("objective") {
				settings.Objective = objective > 0
				settings.MonthlyObjective = objective
			}
			session.SetNotificationSettings(settings)

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Notification settings saved"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&weekly, "weekly", false, "send a weekly recap")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "send a monthly recap")
	cmd.Flags().BoolVar(&records, "records", false, "celebrate new daily records")
	cmd.Flags().Float64Var(&objective, "objective", 0, "monthly revenue objective (0 disables)")
	return cmd
}
