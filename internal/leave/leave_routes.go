package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave-requests")
	{
		leaves.POST("",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		leaves.GET("/:id",
			middleware.RateLimitByActor(5, 20),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetByID,
		)
		leaves.POST("/:id/transition",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_request", "transition"),
			handler.Transition,
		)
		leaves.POST("/:id/approve",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_request", "reject"),
			handler.Reject,
		)
		leaves.POST("/:id/cancel",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_request", "cancel"),
			handler.Cancel,
		)
	}

	r.GET("/employees/:id/leave-requests",
		middleware.RateLimitByActor(5, 20),
		middleware.RBACAuthorize(rbacService, "leave_request", "read"),
		handler.ListByEmployee,
	)
}
