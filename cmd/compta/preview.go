package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
)

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the configuration with example values",
		Long:  `Render the Telegram message, sheet row, and calculated columns that the current configuration would produce for a day of example values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, _, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(cli.RenderPreview(session.Preview()))
			return nil
		},
	}
}
