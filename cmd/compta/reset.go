package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/common"
)

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored configuration",
		Long:  `Remove the user's compta configuration entirely. Keywords, rules, and settings are lost; the Google Sheet itself is untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !yes {
				return fmt.Errorf("this deletes every keyword and rule; re-run with --yes to confirm")
			}

			userID, err := requireUserID()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteModuleConfig(ctx, userID, moduleName); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Println(cli.SubtleStyle.Render("Nothing to reset."))
					return nil
				}
				return fmt.Errorf("failed to reset configuration: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Configuration reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
