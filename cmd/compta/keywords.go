package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/compta"
)

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Manage detection keywords",
		Long:  `List, add, rename, and delete the keywords Telegram messages are matched against, and manage their aliases.`,
	}

	cmd.AddCommand(listKeywordsCmd())
	cmd.AddCommand(addKeywordCmd())
	cmd.AddCommand(renameKeywordCmd())
	cmd.AddCommand(setColumnCmd())
	cmd.AddCommand(aliasCmd())
	cmd.AddCommand(deleteKeywordCmd())

	return cmd
}

func listKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keywords",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, _, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			keywords := session.Keywords()
			if len(keywords) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No keywords configured. Use 'compta keywords add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("#"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Column"),
				cli.TableHeaderStyle.Render("Aliases"))

			for i, k := range keywords {
				name := k.Name
				if name == "" {
					name = cli.SubtleStyle.Render("(unnamed)")
				}
				column := k.Column
				if column == "" {
					column = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, name, column, strings.Join(k.VisibleAliases(), ", "))
			}
			return nil
		},
	}
}

func addKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new keyword",
		Long:  `Create a keyword. The first free sheet column is assigned automatically and common aliases are attached based on the name.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			index := session.AddKeyword()
			if len(args) == 1 {
				res := session.SetKeywordName(index, args[0])
				if msg := rejectionMessage(res, args[0]); msg != "" {
					return fmt.Errorf("%s", msg)
				}
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}

			k := session.Keywords()[index]
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added keyword %q in column %s", k.Name, k.Column)))
			return nil
		},
	}
}

func renameKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> <name>",
		Short: "Rename a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res := session.SetKeywordName(index, args[1])
			if msg := rejectionMessage(res, args[1]); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed keyword %d to %q", index, session.Keywords()[index].Name)))
			return nil
		},
	}
}

func setColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "column <index> <letter>",
		Short: "Assign a sheet column to a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			column := strings.ToUpper(strings.TrimSpace(args[1]))
			res := session.SetKeywordColumn(index, column)
			if msg := rejectionMessage(res, column); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Keyword %d now writes to column %s", index, column)))
			return nil
		},
	}
}

func aliasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage keyword aliases",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <index> <alias>",
		Short: "Add an alias to a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res := session.AddAlias(index, args[1])
			if msg := rejectionMessage(res, strings.ToLower(strings.TrimSpace(args[1]))); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			if !res.IsApplied() {
				// Silent rejections (empty, too long, same as name) end here.
				return nil
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added alias %q", strings.ToLower(strings.TrimSpace(args[1])))))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <index> <alias-index>",
		Short: "Remove an alias from a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := keywordIndex(args[0])
			if err != nil {
				return err
			}
			aliasIndex, err := keywordIndex(args[1])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if res := session.DeleteAlias(index, aliasIndex); !res.IsApplied() {
				return fmt.Errorf("no alias at index %d", aliasIndex)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Alias removed"))
			return nil
		},
	})

	return cmd
}

func deleteKeywordCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a keyword",
		Long:  `Delete a keyword. Deleting a named keyword requires --yes; unnamed drafts are removed immediately.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res := session.DeleteKeyword(index)
			switch res.Outcome {
			case compta.NeedsConfirmation:
				if !yes {
					session.Cancel(res.Confirmation)
					return fmt.Errorf("deleting %q requires --yes", res.Confirmation.Description)
				}
				if confirmed := session.Confirm(res.Confirmation); !confirmed.IsApplied() {
					return fmt.Errorf("delete was not applied")
				}
			case compta.Rejected:
				return fmt.Errorf("no keyword at index %d", index)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Keyword deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion without prompting")
	return cmd
}

// keywordIndex parses a positional index argument.
func keywordIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return index, nil
}

// rejectionMessage phrases a rejected mutation for terminal output.
// Applied results and silent rejections return "".
func rejectionMessage(res compta.MutationResult, value string) string {
	if res.Outcome != compta.Rejected {
		return ""
	}
	if res.Conflict != nil {
		switch res.Conflict.Type {
		case compta.ConflictKeyword:
			return fmt.Sprintf("%q is already a keyword", value)
		case compta.ConflictAlias:
			return fmt.Sprintf("%q is already an alias of %s", value, res.Conflict.Name)
		}
	}
	return res.Reason
}
