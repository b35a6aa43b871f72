package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the photo categories of a report",
		Long:  `Lists the photo categories in report order, with the slots each one holds. Use these names in build manifests.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("#"),
				headerStyle.Render("Category"),
				headerStyle.Render("Slots"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 2),
				strings.Repeat("-", 34),
				strings.Repeat("-", 5))

			for i, c := range models.Categories {
				fmt.Fprintf(w, "%d\t%s\t0-%d\n", i+1, c, models.SlotsPerCategory-1)
			}
			return nil
		},
	}
}
