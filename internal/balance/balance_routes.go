package balance

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	employees := r.Group("/employees/:id/balances")
	{
		employees.GET("",
			middleware.RateLimitByActor(5, 20),
			middleware.RBACAuthorize(rbacService, "balance", "read"),
			handler.GetBalances,
		)
		employees.POST("/ensure",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "balance", "ensure"),
			handler.Ensure,
		)
	}
}
