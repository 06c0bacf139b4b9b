package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key under which the upstream identity layer places the
// acting user's ID. Authentication itself happens before requests reach this
// service; we only read the result.
const actorKey = contextKey("actorID")

// ActorHeader is the header the identity layer uses to convey the acting user.
const ActorHeader = "X-Actor-ID"

// ActorFromHeader copies the acting user ID from the request header into the
// Gin context.
func ActorFromHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Set(string(actorKey), actor)
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(actorKey))
	if !exists {
		return "", false
	}
	actor, ok := v.(string)
	if !ok {
		return "", false
	}
	return actor, true
}
