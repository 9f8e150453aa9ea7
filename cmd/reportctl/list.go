package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"report-system/internal/reports"
	"report-system/pkg/reporter"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Показать доступные отчёты и их поля",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cmdLogger(cmd)
			definitions, _ := cmd.Flags().GetString("reports")
			registry, err := reports.NewRegistry(definitions, logger)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE\tFIELDS")
			for _, e := range registry.Entries() {
				r, err := reporter.New(e.Declarer)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Title, strings.Join(r.Fields(), ","))
			}
			return tw.Flush()
		},
	}
}
