package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Leave ledger
	CodeInvalidTransition          = "INVALID_TRANSITION"
	CodeBenefitExhausted           = "BENEFIT_EXHAUSTED"
	CodeEventBalanceInUse          = "EVENT_BALANCE_IN_USE"
	CodeConcurrencyConflict        = "CONCURRENCY_CONFLICT"
	CodeReclassificationNotAllowed = "RECLASSIFICATION_UNSUPPORTED"
	CodeLedgerIntegrityFault       = "LEDGER_INTEGRITY_FAULT"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
