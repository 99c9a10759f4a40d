package cli

import (
	"context"
	"fmt"
	"strings"

	"go-leave/internal/shared/dateutil"
	"go-leave/internal/workday"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newHolidaysCommand(opts *RootOptions, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the holiday calendar used for working-day counts",
	}
	cmd.AddCommand(newHolidaysAddCommand(opts, open))
	cmd.AddCommand(newHolidaysListCommand(opts, open))
	return cmd
}

func newHolidaysAddCommand(opts *RootOptions, open Opener) *cobra.Command {
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add <YYYY-MM-DD> <name...>",
		Short: "Add a holiday",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.Parse(args[0])
			if err != nil {
				return err
			}
			h := workday.Holiday{
				ID:        uuid.New(),
				Date:      date,
				Name:      strings.Join(args[1:], " "),
				Recurring: recurring,
			}
			return withEnv(cmd, opts, open, func(ctx context.Context, env *Env) error {
				if err := env.Modules.Holidays.Create(ctx, &h); err != nil {
					return fmt.Errorf("add holiday: %w", err)
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), h)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", dateutil.Format(h.Date), h.Name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&recurring, "recurring", false, "repeat on the same month and day every year")
	return cmd
}

func newHolidaysListCommand(opts *RootOptions, open Opener) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one-off holidays between two dates plus every recurring one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.Parse(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := dateutil.Parse(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			return withEnv(cmd, opts, open, func(ctx context.Context, env *Env) error {
				holidays, err := env.Modules.Holidays.ListRelevant(ctx, start, end)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), holidays)
				}
				for _, h := range holidays {
					suffix := ""
					if h.Recurring {
						suffix = " (every year)"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s%s\n", dateutil.Format(h.Date), h.Name, suffix)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
