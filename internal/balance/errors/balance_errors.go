package balanceerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidAnniversaryYear = apperror.New(
		apperror.CodeInvalidInput,
		"anniversary_year must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidAsOfDate = apperror.New(
		apperror.CodeInvalidInput,
		"as_of must be a date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"balance not found",
		http.StatusNotFound,
	)
	ErrNotAnnualLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"balances can only be ensured for ANNUAL leave types",
		http.StatusBadRequest,
	)
	ErrNotYetEligible = apperror.New(
		apperror.CodeInvalidState,
		"employee has not reached first leave eligibility",
		http.StatusConflict,
	)
	ErrNoEntitlement = apperror.New(
		apperror.CodeInvalidState,
		"leave type has no configured entitlement",
		http.StatusConflict,
	)
	ErrYearNotReached = apperror.New(
		apperror.CodeInvalidState,
		"anniversary year has not started for this employee",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance",
		http.StatusConflict,
	)
	ErrEventBalanceInUse = apperror.New(
		apperror.CodeEventBalanceInUse,
		"an event-based balance for this period is already in use",
		http.StatusConflict,
	)
	ErrLedgerIntegrityFault = apperror.New(
		apperror.CodeLedgerIntegrityFault,
		"leave balance is missing or inconsistent",
		http.StatusInternalServerError,
	)
	ErrConcurrencyConflict = apperror.New(
		apperror.CodeConcurrencyConflict,
		"balance was modified concurrently, retry the operation",
		http.StatusConflict,
	)
)
