package sweep

import (
	"errors"
	"io"
	"net/http"

	"go-leave/internal/bootstrap"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ErrInvalidAsOfDate = apperror.New(
	apperror.CodeInvalidInput,
	"as_of must be YYYY-MM-DD",
	http.StatusBadRequest,
)

type Handler struct {
	service Service
	clock   dateutil.Clock
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewHandler(service Service, clock dateutil.Clock, audit bootstrap.AuditLogger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("sweep.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sweep.handler")
	}
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	return &Handler{service: service, clock: clock, audit: audit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("sweep request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Run triggers a sweep synchronously. An empty body sweeps as of today.
func (h *Handler) Run(c *gin.Context) {
	var req RunSweepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	asOf := h.clock.Today()
	if req.AsOf != "" {
		d, err := dateutil.Parse(req.AsOf)
		if err != nil {
			h.writeServiceError(c, ErrInvalidAsOfDate)
			return
		}
		asOf = d
	}

	res, err := h.service.Run(c.Request.Context(), asOf)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Log(c.Request.Context(), bootstrap.AuditLog{
			Action:  "sweep.run",
			Message: "anniversary sweep triggered manually",
			Meta: map[string]any{
				"as_of":            dateutil.Format(asOf),
				"employees":        res.Employees,
				"balances_created": res.BalancesCreated,
				"failures":         res.Failures,
			},
		})
	}
	response.Success(c, http.StatusOK, RunSweepResponse{AsOf: dateutil.Format(asOf), Result: res}, nil)
}
