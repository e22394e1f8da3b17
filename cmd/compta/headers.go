package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/config"
	"github.com/iarmy/compta/internal/model"
	"github.com/iarmy/compta/internal/sheets"
)

func headersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Inspect and sync sheet column headers",
		Long:  `Read the first row of the Google Sheet to learn which columns already carry data, and store the result so the editor avoids them when assigning columns.`,
	}

	cmd.AddCommand(listHeadersCmd())
	cmd.AddCommand(syncHeadersCmd())

	return cmd
}

func listHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the stored column headers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := requireUserID()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, mc, err := loadSession(ctx, store, userID)
			if err != nil {
				return err
			}

			headers := mc.Config.Headers()
			if len(headers) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No headers stored. Run 'compta headers sync' first."))
				return nil
			}

			columns := make([]string, 0, len(headers))
			for c := range headers {
				columns = append(columns, c)
			}
			sort.Strings(columns)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, c := range columns {
				fmt.Fprintf(w, "%s\t%s\n", c, headers[c])
			}
			return nil
		},
	}
}

func syncHeadersCmd() *cobra.Command {
	var sheetID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Re-read headers from the Google Sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := requireUserID()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			_, mc, err := loadSession(ctx, store, userID)
			if err != nil {
				return err
			}

			if sheetID == "" {
				sheetID = mc.SheetID
			}
			if sheetID == "" {
				return fmt.Errorf("no sheet configured (pass --sheet or run setup)")
			}

			sheetsCfg, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("sheets credentials not configured: %w", err)
			}
			reader, err := sheets.NewHeaderReader(ctx, *sheetsCfg)
			if err != nil {
				return fmt.Errorf("failed to connect to Google Sheets: %w", err)
			}

			headers, err := reader.ReadHeaders(ctx, sheetID)
			if err != nil {
				return fmt.Errorf("failed to read headers: %w", err)
			}

			detected := make([]model.DetectedColumn, 0, len(headers))
			for _, column := range model.Columns {
				if name, ok := headers[column]; ok {
					detected = append(detected, model.DetectedColumn{Column: column, Name: name})
				}
			}

			mc.SheetID = sheetID
			mc.Config.DetectedColumns = detected
			if err := store.SaveModuleConfig(ctx, mc); err != nil {
				return fmt.Errorf("failed to save headers: %w", err)
			}
			common.LogInfo("Synced sheet headers", common.Fields{
				"user":    userID,
				"sheet":   sheetID,
				"columns": len(detected),
			})

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d column headers", len(detected))))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetID, "sheet", "", "Google Sheet id (defaults to the stored one)")
	return cmd
}
