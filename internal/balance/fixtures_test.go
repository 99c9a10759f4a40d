package balance_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/accrual"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testCalculator() *accrual.Calculator {
	return config.AccrualConfig{EligibilityMonths: 6, Schedule: config.DefaultSchedule()}.Calculator()
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := dateutil.Parse(v)
	require.NoError(t, err)
	return d
}

func seedEmployee(t *testing.T, db *gorm.DB, hire string) employee.Employee {
	t.Helper()
	e := employee.Employee{
		ID:       uuid.New(),
		TaxID:    uuid.NewString()[:12],
		FullName: "Ana Torres",
		HireDate: mustDate(t, hire),
		IsActive: true,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(&e).Error)
	return e
}

func seedLeaveType(t *testing.T, db *gorm.DB, lt leavetype.LeaveType) leavetype.LeaveType {
	t.Helper()
	if lt.ID == uuid.Nil {
		lt.ID = uuid.New()
	}
	require.NoError(t, db.WithContext(context.Background()).Create(&lt).Error)
	return lt
}

func vacation() leavetype.LeaveType {
	return leavetype.LeaveType{
		Name:             "Vacaciones",
		IsPaid:           true,
		RequiresApproval: true,
		SeniorityScaled:  true,
		Classification:   leavetype.ClassificationAnnual,
	}
}

func intPtr(v int) *int {
	return &v
}

func seedlessEmployee() employee.Employee {
	return employee.Employee{ID: uuid.New(), IsActive: true}
}
