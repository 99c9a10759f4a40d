package cli

import (
	"context"
	"fmt"

	"go-leave/internal/schema"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the default role policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, open, func(ctx context.Context, env *Env) error {
				if err := schema.Migrate(ctx, env.Modules.DB, env.Logger); err != nil {
					return err
				}
				if err := env.Modules.RBACRepo.SeedDefaults(ctx); err != nil {
					return fmt.Errorf("seed rbac policy: %w", err)
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"migrated": true, "tables": len(schema.Models())})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables, default role policy seeded\n", len(schema.Models()))
				return nil
			})
		},
	}
}
