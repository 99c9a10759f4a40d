package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go-leave/internal/app"
	"go-leave/internal/balance"
	"go-leave/internal/cli"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leavetype"
	"go-leave/internal/schema/schematest"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/sweep"
	"go-leave/internal/workday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteOpener(t *testing.T) (cli.Opener, *app.Modules) {
	t.Helper()
	cfg := &config.Config{
		Accrual:        config.AccrualConfig{EligibilityMonths: 6, Schedule: config.DefaultSchedule()},
		Workday:        config.WorkdayConfig{RestDays: []string{"sunday"}},
		Sweep:          config.SweepConfig{Concurrency: 2},
		Classification: config.DefaultClassification(),
	}
	modules, err := app.NewModules(cfg, schematest.NewSQLite(t), nil, zap.NewNop())
	require.NoError(t, err)

	open := func(context.Context, *cli.RootOptions) (*cli.Env, error) {
		return &cli.Env{Config: cfg, Modules: modules, Logger: zap.NewNop(), Close: func() {}}, nil
	}
	return open, modules
}

func run(t *testing.T, open cli.Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, modules *app.Modules, hire string) employee.Employee {
	t.Helper()
	ctx := context.Background()

	yes := true
	_, err := modules.LeaveTypes.Define(ctx, uuid.NewString(), leavetype.DefineLeaveTypeRequest{
		Name:             "Vacaciones",
		IsPaid:           &yes,
		RequiresApproval: &yes,
		SeniorityScaled:  true,
	})
	require.NoError(t, err)

	date, err := dateutil.Parse(hire)
	require.NoError(t, err)
	emp := employee.Employee{ID: uuid.New(), TaxID: "GOMA900202XY3", FullName: "Ana Gomez", HireDate: date, IsActive: true}
	require.NoError(t, modules.Employees.Sync(ctx, emp))
	return emp
}

func TestMigrate(t *testing.T) {
	open, modules := sqliteOpener(t)

	out, err := run(t, open, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "default role policy seeded")

	perms, err := modules.RBACRepo.GetRolePermissions(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, perms)

	_, err = run(t, open, "migrate")
	assert.NoError(t, err)
}

func TestSweepAndBalances(t *testing.T) {
	open, modules := sqliteOpener(t)
	emp := seed(t, modules, "2021-01-10")

	out, err := run(t, open, "--format", "json", "sweep", "--as-of", "2023-06-01")
	require.NoError(t, err)
	var res sweep.RunSweepResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2023-06-01", res.AsOf)
	assert.Equal(t, 1, res.Employees)
	assert.Equal(t, 3, res.BalancesCreated)

	out, err = run(t, open, "sweep", "--as-of", "2023-06-01", "--employee", emp.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "0 balances created")

	out, err = run(t, open, "--format", "json", "balances", emp.ID.String(), "--as-of", "2023-06-01")
	require.NoError(t, err)
	var balances []balance.BalanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &balances))
	require.Len(t, balances, 1)
	assert.Equal(t, 2, balances[0].AnniversaryYear)
	assert.Equal(t, 16, balances[0].EntitledDays)

	out, err = run(t, open, "balances", emp.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "AVAILABLE")
	assert.Contains(t, out, "2023-01-10..2024-01-09")
}

func TestSweepRejectsBadDate(t *testing.T) {
	open, _ := sqliteOpener(t)

	_, err := run(t, open, "sweep", "--as-of", "01/06/2023")
	assert.ErrorIs(t, err, dateutil.ErrInvalidDate)
}

func TestHolidays(t *testing.T) {
	open, modules := sqliteOpener(t)

	_, err := run(t, open, "holidays", "add", "2024-09-16", "Independence", "Day")
	require.NoError(t, err)
	_, err = run(t, open, "holidays", "add", "2020-12-25", "Christmas", "--recurring")
	require.NoError(t, err)

	d, _ := dateutil.Parse("2025-12-25")
	isHoliday, err := modules.Workdays.IsHoliday(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, isHoliday)

	out, err := run(t, open, "--format", "json", "holidays", "list", "--from", "2024-09-01", "--to", "2024-09-30")
	require.NoError(t, err)
	var holidays []workday.Holiday
	require.NoError(t, json.Unmarshal([]byte(out), &holidays))
	require.Len(t, holidays, 2)
	assert.Equal(t, "Christmas", holidays[0].Name)
	assert.Equal(t, "Independence Day", holidays[1].Name)

	_, err = run(t, open, "--format", "yaml", "holidays", "list", "--from", "2024-09-01", "--to", "2024-09-30")
	assert.Error(t, err)
}
