package leavetypeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrInvalidClassification = apperror.New(
		apperror.CodeInvalidInput,
		"classification must be one of ANNUAL, ONE_TIME, EVENT_REPEATABLE",
		http.StatusBadRequest,
	)
	ErrReclassificationUnsupported = apperror.New(
		apperror.CodeReclassificationNotAllowed,
		"leave type cannot be reclassified once balances exist",
		http.StatusConflict,
	)
	ErrLeaveTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"leave type name already exists",
		http.StatusConflict,
	)
	ErrSeniorityRequiresAnnual = apperror.New(
		apperror.CodeInvalidInput,
		"seniority scaling only applies to ANNUAL leave types",
		http.StatusBadRequest,
	)
)
