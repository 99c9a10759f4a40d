package balance_test

import (
	"context"
	"testing"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	employeemock "go-leave/internal/employee/mock"
	leavetypemock "go-leave/internal/leavetype/mock"
	"go-leave/internal/schema/schematest"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBalanceService_EnsureBalance(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, today string) (balance.Service, *employeemock.MockDirectory, *leavetypemock.MockService, string, string) {
		ctrl := gomock.NewController(t)
		db := schematest.NewSQLite(t)
		emp := seedEmployee(t, db, "2018-03-15")
		lt := seedLeaveType(t, db, vacation())

		dir := employeemock.NewMockDirectory(ctrl)
		types := leavetypemock.NewMockService(ctrl)
		dir.EXPECT().GetByID(gomock.Any(), emp.ID.String()).Return(emp, nil).AnyTimes()
		types.EXPECT().GetByID(gomock.Any(), lt.ID.String()).Return(lt, nil).AnyTimes()

		svc := balance.NewService(
			db,
			balance.NewRepository(db),
			balance.NewLedger(testCalculator(), nil),
			dir,
			types,
			dateutil.FixedClock(mustDate(t, today)),
		)
		return svc, dir, types, emp.ID.String(), lt.ID.String()
	}

	t.Run("defaults to the current anniversary year", func(t *testing.T) {
		svc, _, _, empID, ltID := setup(t, "2024-06-01")

		resp, err := svc.EnsureBalance(ctx, empID, ltID, nil)
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, 6, resp.Balance.AnniversaryYear)
		assert.Equal(t, 22, resp.Balance.EntitledDays)
		assert.Equal(t, 22, resp.Balance.AvailableDays)
		assert.Equal(t, "2024-03-15", resp.Balance.PeriodStart)

		again, err := svc.EnsureBalance(ctx, empID, ltID, nil)
		require.NoError(t, err)
		assert.False(t, again.Created)
		assert.Equal(t, resp.Balance.ID, again.Balance.ID)
	})

	t.Run("next year may be opened early", func(t *testing.T) {
		svc, _, _, empID, ltID := setup(t, "2024-06-01")

		resp, err := svc.EnsureBalance(ctx, empID, ltID, intPtr(7))
		require.NoError(t, err)
		assert.Equal(t, 22, resp.Balance.EntitledDays)
		assert.Equal(t, "2025-03-15", resp.Balance.PeriodStart)
	})

	t.Run("years beyond the next are refused", func(t *testing.T) {
		svc, _, _, empID, ltID := setup(t, "2024-06-01")

		_, err := svc.EnsureBalance(ctx, empID, ltID, intPtr(8))
		assert.ErrorIs(t, err, balanceerrors.ErrYearNotReached)
	})

	t.Run("before first eligibility", func(t *testing.T) {
		svc, _, _, empID, ltID := setup(t, "2018-09-14")

		_, err := svc.EnsureBalance(ctx, empID, ltID, nil)
		assert.ErrorIs(t, err, balanceerrors.ErrNotYetEligible)
	})

	t.Run("invalid identifiers", func(t *testing.T) {
		svc, _, _, empID, _ := setup(t, "2024-06-01")

		_, err := svc.EnsureBalance(ctx, "nope", uuid.NewString(), nil)
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
		_, err = svc.EnsureBalance(ctx, empID, "nope", nil)
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidLeaveTypeID)
		_, err = svc.EnsureBalance(ctx, empID, uuid.NewString(), intPtr(-1))
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidAnniversaryYear)
	})
}

func TestBalanceService_GetBalances(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	db := schematest.NewSQLite(t)
	emp := seedEmployee(t, db, "2018-03-15")
	lt := seedLeaveType(t, db, vacation())

	ledger := balance.NewLedger(testCalculator(), nil)
	repo := balance.NewRepository(db)
	for year := 0; year <= 6; year++ {
		_, _, err := ledger.Ensure(ctx, repo, emp, lt, year)
		require.NoError(t, err)
	}

	dir := employeemock.NewMockDirectory(ctrl)
	dir.EXPECT().GetByID(gomock.Any(), emp.ID.String()).Return(emp, nil).Times(2)

	svc := balance.NewService(db, repo, ledger, dir, leavetypemock.NewMockService(ctrl), dateutil.FixedClock(mustDate(t, "2024-06-01")))

	all, err := svc.GetBalances(ctx, emp.ID.String(), nil)
	require.NoError(t, err)
	require.Len(t, all, 7)
	want := []int{12, 14, 16, 18, 20, 22, 22}
	for i, b := range all {
		assert.Equal(t, i, b.AnniversaryYear)
		assert.Equal(t, want[i], b.EntitledDays)
	}

	asOf := mustDate(t, "2024-06-01")
	current, err := svc.GetBalances(ctx, emp.ID.String(), &asOf)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, 6, current[0].AnniversaryYear)
}
