package leaveeventerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrBenefitExhausted = apperror.New(
		apperror.CodeBenefitExhausted,
		"this one-time leave benefit has already been used",
		http.StatusConflict,
	)
	ErrEventAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"an event for this leave type is already registered on that date",
		http.StatusConflict,
	)
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave event not found",
		http.StatusNotFound,
	)
)
