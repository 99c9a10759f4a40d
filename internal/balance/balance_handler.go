package balance

import (
	"net/http"
	"time"

	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetBalances(c *gin.Context) {
	employeeID := c.Param("id")

	var asOf *time.Time
	if v := c.Query("as_of"); v != "" {
		d, err := dateutil.Parse(v)
		if err != nil {
			h.writeServiceError(c, balanceerrors.ErrInvalidAsOfDate)
			return
		}
		asOf = &d
	}

	resp, err := h.service.GetBalances(c.Request.Context(), employeeID, asOf)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Ensure(c *gin.Context) {
	employeeID := c.Param("id")
	h.logger.Debug("http ensure balance", zap.String("employee_id", employeeID))

	var req EnsureBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http ensure balance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.EnsureBalance(c.Request.Context(), employeeID, req.LeaveTypeID, req.AnniversaryYear)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}
