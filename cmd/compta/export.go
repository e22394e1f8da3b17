package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/config"
	"github.com/iarmy/compta/internal/export"
	"github.com/iarmy/compta/internal/service"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export monthly sheets as PDF",
		Long:  `Generate the accountant PDF for a month of the Google Sheet, or list the months available for export.`,
	}

	cmd.AddCommand(exportMonthsCmd())
	cmd.AddCommand(exportPDFCmd())
	cmd.AddCommand(exportSettingsCmd())

	return cmd
}

func exportMonthsCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "months",
		Short: "List months available for export",
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}

			months := export.AvailableMonths(year, now)
			if len(months) == 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Nothing to export for %d yet.", year)))
				return nil
			}
			for _, m := range months {
				fmt.Println(export.SheetRangeLabel(m, year))
			}
			if export.CanExportFullYear(year, now) {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Full year %d is also available.", year)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year to list (defaults to the current year)")
	return cmd
}

func exportPDFCmd() *cobra.Command {
	var (
		month  int
		year   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Generate the PDF for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if export.MonthName(month) == "" {
				return fmt.Errorf("invalid month %d", month)
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

			_, mc, err := loadSession(ctx, store, userID)
			if err != nil {
				return err
			}
			if mc.SheetID == "" {
				return fmt.Errorf("no sheet configured (run 'compta headers sync --sheet <id>' first)")
			}

			client, err := config.LoadExportClient()
			if err != nil {
				return err
			}

			label := export.SheetRangeLabel(month, year)
			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Generating %s...[reset]", label)),
				progressbar.OptionSpinnerType(14),
			)
			done := make(chan struct{})
			go func() {
				for {
					select {
					case <-done:
						return
					case <-time.After(100 * time.Millisecond):
						_ = bar.Add(1)
					}
				}
			}()

			pdf, err := client.Export(ctx, service.ExportRequest{
				SheetID:   mc.SheetID,
				SheetName: label,
				Title:     label,
			})
			close(done)
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			common.LogDebug("Export downloaded", common.Fields{
				"sheet": label,
				"bytes": len(pdf),
			})

			if output == "" {
				output = export.Filename(month, year)
			}
			if err := os.WriteFile(output, pdf, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			if err := store.RecordExportRun(ctx, userID, moduleName, label, "pdf"); err != nil {
				return fmt.Errorf("failed to record export: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s (%d bytes)", output, len(pdf))))
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month to export, 1-12 (defaults to the current month)")
	cmd.Flags().IntVar(&year, "year", 0, "year to export (defaults to the current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to compta-<month>-<year>.pdf)")
	return cmd
}

func exportSettingsCmd() *cobra.Command {
	var (
		autoExport bool
		email      string
		day        string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Configure automatic monthly exports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings := session.ExportSettings()
			if cmd.Flags().Changed("auto") {
				settings.AutoExportEnabled = autoExport
			}
			if cmd.Flags().Changed("email") {
				settings.ExportEmail = email
			}
			if cmd.Flags().Changed("day") {
				settings.AutoExportDay = day
			}
			if cmd.Flags().Changed("format") {
				settings.AutoExportFormat = format
			}

			if err := export.ValidateSettings(&settings); err != nil {
				return err
			}
			session.SetExportSettings(settings)

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Export settings saved"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoExport, "auto", false, "enable automatic monthly export")
	cmd.Flags().StringVar(&email, "email", "", "address the monthly PDF is mailed to")
	cmd.Flags().StringVar(&day, "day", "", "day of month the export runs")
	cmd.Flags().StringVar(&format, "format", "", "export format (pdf)")
	return cmd
}
