package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/upb/career-advisor/handlers"
	"github.com/upb/career-advisor/services/routing"
)

func newPlanCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the provider attempts a run would make, without calling an LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := loadDependencies(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close(cmd.Context())

			return printPlan(cmd.OutOrStdout(), deps.ProviderConfig(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func printPlan(out io.Writer, cfg routing.ProviderConfig, asJSON bool) error {
	views := handlers.PlanView(cfg)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROVIDER\tMODEL\tBASE URL\tOVERRIDES")
	for _, v := range views {
		overrides, err := json.Marshal(v.Overrides)
		if err != nil {
			return err
		}
		if len(v.Overrides) == 0 {
			overrides = []byte("-")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.Index, v.Provider, v.Model, v.BaseURL, overrides)
	}
	return tw.Flush()
}
