package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/compta"
	"github.com/iarmy/compta/internal/model"
	"github.com/iarmy/compta/internal/tui"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit keywords interactively",
		Long:  `Open the interactive keyword editor. Changes are saved automatically a moment after you stop typing, and flushed on exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			flush := func(fctx context.Context, cfg model.ComptaConfig) error {
				return store.MergeComptaConfig(fctx, userID, cfg)
			}
			saver := compta.NewSaver(ctx, session, flush, nil, func(saveErr error) {
				common.LogError(saveErr, "autosave failed", common.Fields{"user": userID})
			})
			session.OnChange(saver.MarkDirty)

			p := tea.NewProgram(tui.New(session), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}

			// Whatever the debounce left pending goes out now.
			if err := saver.Flush(ctx); err != nil {
				return fmt.Errorf("failed to save on exit: %w", err)
			}
			return nil
		},
	}
}
