package rbac

import (
	"net/http"
	"strings"

	"go-leave/internal/domain"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers for the calling actor only; roles cannot be probed on
// someone else's behalf.
func (h *Handler) Enforce(c *gin.Context) {
	var req CheckPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	enforceReq := domain.EnforceRequest{
		ActorID:  c.GetString(middleware.ContextActorID),
		Role:     c.GetString(middleware.ContextActorRole),
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	}

	allowed, err := h.service.Enforce(enforceReq)
	if err != nil {
		h.logger.Error("rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "authorization check failed", nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Role:     enforceReq.Role,
		Resource: enforceReq.Resource,
		Action:   enforceReq.Action,
		Allowed:  allowed,
	}, nil)
}

// Reload re-reads the stored policy, picking up operator edits without a
// restart.
func (h *Handler) Reload(c *gin.Context) {
	if err := h.service.LoadPolicy(c.Request.Context()); err != nil {
		h.logger.Error("rbac reload failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "policy reload failed", nil)
		return
	}
	h.logger.Info("rbac policy reloaded", zap.String("actor_id", c.GetString(middleware.ContextActorID)))
	response.Success(c, http.StatusOK, gin.H{"reloaded": true}, nil)
}
