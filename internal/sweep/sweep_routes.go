package sweep

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.POST("/sweeps",
		middleware.RateLimitByActor(0.1, 1),
		middleware.RBACAuthorize(rbacService, "sweep", "run"),
		handler.Run,
	)
}
