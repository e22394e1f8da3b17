package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/compta"
	"github.com/iarmy/compta/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage calculated columns",
		Long:  `List and edit the calculation rules that derive columns (like TOTAL) from keyword values.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(setTermCmd())
	cmd.AddCommand(setTargetCmd())
	cmd.AddCommand(addTermCmd())
	cmd.AddCommand(deleteTermCmd())
	cmd.AddCommand(deleteRuleCmd())
	cmd.AddCommand(targetsCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all calculation rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, _, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rules := session.Rules()
			if len(rules) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No calculation rules. Use 'compta rules add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("#"),
				cli.TableHeaderStyle.Render("Target"),
				cli.TableHeaderStyle.Render("Formula"))

			for i, r := range rules {
				target := r.Target
				if target == "" {
					target = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, target, formatFormula(r))
			}
			return nil
		},
	}
}

// formatFormula renders "A + B - C" with empty slots shown as "…".
func formatFormula(r model.Rule) string {
	parts := make([]string, 0, len(r.Terms)*2)
	for i, t := range r.Terms {
		name := t.Name
		if name == "" {
			name = "…"
		}
		if i == 0 {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, string(t.Op), name)
	}
	return strings.Join(parts, " ")
}

func addRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add an empty calculation rule",
		Long:  `Create a rule with two empty terms. Fill them in with 'compta rules term' and set the destination with 'compta rules target'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			index := session.AddRule()
			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added rule %d", index)))
			return nil
		},
	}
}

func setTermCmd() *cobra.Command {
	var op string

	cmd := &cobra.Command{
		Use:   "term <rule> <term> <keyword>",
		Short: "Set a term of a rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ruleIndex, err := keywordIndex(args[0])
			if err != nil {
				return err
			}
			termIndex, err := keywordIndex(args[1])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if res := session.SetRuleTermName(ruleIndex, termIndex, args[2]); !res.IsApplied() {
				return fmt.Errorf("no term %d in rule %d", termIndex, ruleIndex)
			}
			if op != "" {
				if res := session.SetRuleTermOp(ruleIndex, termIndex, model.Operator(op)); !res.IsApplied() {
					return fmt.Errorf("invalid operator %q (use + or -)", op)
				}
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Term updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&op, "op", "", "operator applied to the term (+ or -)")
	return cmd
}

func setTargetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target <rule> <column>",
		Short: "Set the destination column of a rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ruleIndex, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if res := session.SetRuleTarget(ruleIndex, args[1]); !res.IsApplied() {
				return fmt.Errorf("no rule at index %d", ruleIndex)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rule %d now targets %s", ruleIndex, args[1])))
			return nil
		},
	}
}

func addTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-term <rule>",
		Short: "Append an empty term to a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ruleIndex, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if res := session.AddRuleTerm(ruleIndex); !res.IsApplied() {
				return fmt.Errorf("no rule at index %d", ruleIndex)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Term added"))
			return nil
		},
	}
}

func deleteTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-term <rule> <term>",
		Short: "Remove a term from a rule",
		Long:  `Remove a term. A rule always keeps at least two terms; removing below that is refused.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ruleIndex, err := keywordIndex(args[0])
			if err != nil {
				return err
			}
			termIndex, err := keywordIndex(args[1])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if res := session.DeleteRuleTerm(ruleIndex, termIndex); !res.IsApplied() {
				return fmt.Errorf("cannot remove term %d from rule %d", termIndex, ruleIndex)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Term removed"))
			return nil
		},
	}
}

func deleteRuleCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <rule>",
		Short: "Delete a calculation rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ruleIndex, err := keywordIndex(args[0])
			if err != nil {
				return err
			}

			session, userID, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res := session.DeleteRule(ruleIndex)
			switch res.Outcome {
			case compta.NeedsConfirmation:
				if !yes {
					session.Cancel(res.Confirmation)
					return fmt.Errorf("deleting rule %q requires --yes", res.Confirmation.Description)
				}
				if confirmed := session.Confirm(res.Confirmation); !confirmed.IsApplied() {
					return fmt.Errorf("delete was not applied")
				}
			case compta.Rejected:
				return fmt.Errorf("no rule at index %d", ruleIndex)
			}

			if err := persistSession(ctx, store, userID, session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Rule deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion without prompting")
	return cmd
}

func targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List columns a rule may target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, _, store, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, t := range session.RuleTargets() {
				fmt.Println(t)
			}
			return nil
		},
	}
}
