package leavetype

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	types := r.Group("/leave-types")
	{
		types.GET("",
			middleware.RateLimitByActor(5, 20),
			middleware.RBACAuthorize(rbacService, "leave_type", "read"),
			handler.GetAll,
		)
		types.GET("/:id",
			middleware.RateLimitByActor(5, 20),
			middleware.RBACAuthorize(rbacService, "leave_type", "read"),
			handler.GetByID,
		)
		types.PUT("/:id",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_type", "define"),
			handler.Define,
		)
	}
}
