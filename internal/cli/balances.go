package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newBalancesCommand(opts *RootOptions, open Opener) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balances <employee-id>",
		Short: "Show an employee's leave balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			var at *time.Time
			if !date.IsZero() {
				at = &date
			}

			return withEnv(cmd, opts, open, func(ctx context.Context, env *Env) error {
				balances, err := env.Modules.Balances.GetBalances(ctx, args[0], at)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), balances)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "LEAVE TYPE\tYEAR\tPERIOD\tENTITLED\tPENDING\tUSED\tAVAILABLE\tEVENT")
				for _, b := range balances {
					fmt.Fprintf(tw, "%s\t%d\t%s..%s\t%d\t%d\t%d\t%d\t%t\n",
						b.LeaveTypeID, b.AnniversaryYear, b.PeriodStart, b.PeriodEnd,
						b.EntitledDays, b.PendingDays, b.UsedDays, b.AvailableDays, b.IsEventBased)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "only balances whose period contains this date (YYYY-MM-DD)")
	return cmd
}
