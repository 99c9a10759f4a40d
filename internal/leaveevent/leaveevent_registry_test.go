package leaveevent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/leaveevent"
	leaveeventerrors "go-leave/internal/leaveevent/errors"
	"go-leave/internal/leaveevent/mock"
	"go-leave/internal/schema/schematest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestRegistry_OneTimeBenefitLifecycle(t *testing.T) {
	ctx := context.Background()
	db := schematest.NewSQLite(t)
	registry := leaveevent.NewRegistry(leaveevent.NewRepository(db))

	employeeID, leaveTypeID := uuid.New(), uuid.New()
	date := time.Date(2024, 4, 20, 15, 30, 0, 0, time.UTC)

	used, err := registry.HasUsedOneTimeBenefit(ctx, employeeID, leaveTypeID)
	require.NoError(t, err)
	assert.False(t, used)

	eventID, err := registry.Register(ctx, employeeID, leaveTypeID, date, "civil wedding")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, eventID)

	used, err = registry.HasUsedOneTimeBenefit(ctx, employeeID, leaveTypeID)
	require.NoError(t, err)
	assert.True(t, used)

	otherType, err := registry.HasUsedOneTimeBenefit(ctx, employeeID, uuid.New())
	require.NoError(t, err)
	assert.False(t, otherType)

	_, err = registry.Register(ctx, employeeID, leaveTypeID, date, "again")
	assert.ErrorIs(t, err, leaveeventerrors.ErrEventAlreadyRegistered)

	require.NoError(t, registry.Revoke(ctx, eventID))
	used, err = registry.HasUsedOneTimeBenefit(ctx, employeeID, leaveTypeID)
	require.NoError(t, err)
	assert.False(t, used)

	assert.ErrorIs(t, registry.Revoke(ctx, eventID), leaveeventerrors.ErrEventNotFound)
}

func TestRegistry_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := schematest.NewSQLite(t)
	registry := leaveevent.NewRegistry(leaveevent.NewRepository(db))
	employeeID, leaveTypeID := uuid.New(), uuid.New()

	rollback := errors.New("rollback")
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := registry.WithTx(tx).Register(ctx, employeeID, leaveTypeID, time.Now(), ""); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	used, err := registry.HasUsedOneTimeBenefit(ctx, employeeID, leaveTypeID)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestRegistry_RegisterStoresDateOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *leaveevent.Event) error {
		assert.Equal(t, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), e.EventDate)
		assert.Equal(t, "civil wedding", e.Description)
		return nil
	})

	registry := leaveevent.NewRegistry(repo)
	_, err := registry.Register(context.Background(), uuid.New(), uuid.New(), time.Date(2024, 4, 20, 23, 0, 0, 0, time.UTC), "civil wedding")
	assert.NoError(t, err)
}

func TestRegistry_RevokePropagatesStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("connection reset")
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), boom)

	err := leaveevent.NewRegistry(repo).Revoke(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}

func TestRepository_PostgresLocksBenefitBeforeCounting(t *testing.T) {
	ctx := context.Background()
	db, sqlMock := schematest.NewSQLMock(t)
	registry := leaveevent.NewRegistry(leaveevent.NewRepository(db))
	employeeID, leaveTypeID := uuid.New(), uuid.New()

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs(employeeID.String() + ":" + leaveTypeID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "leave_events" WHERE employee_id = .* AND leave_type_id = .*`).
		WithArgs(employeeID.String(), leaveTypeID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	sqlMock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		used, err := registry.WithTx(tx).HasUsedOneTimeBenefit(ctx, employeeID, leaveTypeID)
		require.NoError(t, err)
		assert.True(t, used)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRegistry_LockFailureStopsTheCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("lock timeout")
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().LockBenefit(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)
	repo.EXPECT().ExistsFor(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := leaveevent.NewRegistry(repo).HasUsedOneTimeBenefit(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, boom)
}
