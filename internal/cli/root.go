// Package cli implements leavectl, the operator command line for the leave
// engine.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go-leave/internal/app"
	"go-leave/internal/bootstrap"
	"go-leave/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ValidFormats = []string{"text", "json"}

type RootOptions struct {
	ConfigPath string
	Format     string
}

// Env is what a command runs against. Close releases the connections.
type Env struct {
	Config  *config.Config
	Modules *app.Modules
	Logger  *zap.Logger
	Close   func()
}

// Opener builds an Env. Tests swap in one backed by sqlite.
type Opener func(ctx context.Context, opts *RootOptions) (*Env, error)

// OpenPostgres loads the configuration and connects to the configured
// database. The CLI never talks to redis, so the leave-type cache is off.
func OpenPostgres(_ context.Context, opts *RootOptions) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logCfg := cfg.Logger
	logCfg.Format = "console"
	logger, err := bootstrap.NewLogger(logCfg)
	if err != nil {
		return nil, err
	}

	db, err := app.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	modules, err := app.NewModules(cfg, db, nil, logger)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config:  cfg,
		Modules: modules,
		Logger:  logger,
		Close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			_ = logger.Sync()
		},
	}, nil
}

func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "leavectl",
		Short: "Operate the leave entitlement engine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newMigrateCommand(opts, open))
	cmd.AddCommand(newSweepCommand(opts, open))
	cmd.AddCommand(newBalancesCommand(opts, open))
	cmd.AddCommand(newHolidaysCommand(opts, open))

	return cmd
}

// withEnv opens an Env for the duration of fn.
func withEnv(cmd *cobra.Command, opts *RootOptions, open Opener, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(ctx, env)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
