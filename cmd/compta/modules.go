package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iarmy/compta/internal/catalog"
	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/model"
)

func modulesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Browse the module catalog",
		Long:  `List the iArmy modules, optionally filtered by category.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			modules := catalog.ByCategory(catalog.Modules(), category)
			if len(modules) == 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No modules in category %q.", category)))
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Module"),
				cli.TableHeaderStyle.Render("Status"),
				cli.TableHeaderStyle.Render("Price"),
				cli.TableHeaderStyle.Render("Description"))

			for _, m := range modules {
				name := fmt.Sprintf("%s %s", m.Icon, m.Name)
				if badge := catalog.Badge(m, now); badge != model.BadgeNone {
					name += " " + cli.WarningStyle.Render(string(badge))
				}
				price := m.Price
				if m.PriceUnit != "" {
					price += " " + m.PriceUnit
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, m.Status, price, m.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "category filter (all, restaurant, bar)")
	return cmd
}
