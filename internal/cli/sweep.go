package cli

import (
	"context"
	"fmt"
	"time"

	"go-leave/internal/shared/dateutil"
	"go-leave/internal/sweep"

	"github.com/spf13/cobra"
)

func newSweepCommand(opts *RootOptions, open Opener) *cobra.Command {
	var asOf, employeeID string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Materialise missing annual balances",
		Long: `Run the anniversary sweep once, outside the worker's schedule.

Without --employee every active employee is swept. The sweep only creates
balances that do not exist yet, so it is safe to repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			return withEnv(cmd, opts, open, func(ctx context.Context, env *Env) error {
				if date.IsZero() {
					date = env.Modules.Clock.Today()
				}

				var res sweep.Result
				if employeeID != "" {
					res, err = env.Modules.Sweeper.SweepEmployee(ctx, employeeID, date)
				} else {
					res, err = env.Modules.Sweeper.Run(ctx, date)
				}
				if err != nil {
					return err
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), sweep.RunSweepResponse{AsOf: dateutil.Format(date), Result: res})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "as of %s: %d employees, %d balances created, %d failures\n",
					dateutil.Format(date), res.Employees, res.BalancesCreated, res.Failures)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluation date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&employeeID, "employee", "", "sweep a single employee")
	return cmd
}

func parseAsOf(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	d, err := dateutil.Parse(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: %w", err)
	}
	return d, nil
}
