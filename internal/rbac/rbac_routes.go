package rbac

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", middleware.RateLimitByActor(5, 20), handler.Enforce)
		group.POST("/reload",
			middleware.RateLimitByActor(0.1, 1),
			middleware.RBACAuthorize(service, "rbac", "reload"),
			handler.Reload,
		)
	}
}
