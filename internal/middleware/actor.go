package middleware

import (
	"net/http"

	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	ContextActorID   = "actor_id"
	ContextActorRole = "actor_role"
)

// ActorFromHeaders trusts the identity headers set by the gateway in front
// of the API. Requests without them never reach a handler.
func ActorFromHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		role := c.GetHeader(HeaderActorRole)

		if actorID == "" || role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Actor identity headers are required", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(actorID); err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_ACTOR", "X-Actor-ID must be a uuid", nil)
			c.Abort()
			return
		}

		c.Set(ContextActorID, actorID)
		c.Set(ContextActorRole, role)
		ctx := contextutil.WithActor(c.Request.Context(), actorID, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
