package middleware

import (
	"calibration_quiz/internal/util"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// IdentityResolver turns a session id or bearer token into an identity.
type IdentityResolver interface {
	IdentityFromSession(ctx context.Context, sessionID string) (util.Identity, error)
	IdentityFromToken(token string) (util.Identity, error)
}

// IdentityMiddleware resolves the caller from the session cookie, falling
// back to an Authorization bearer token. Unresolvable callers are anonymous.
func IdentityMiddleware(resolver IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := util.Anonymous()

		if sessionID, err := c.Cookie(cookieName); err == nil && sessionID != "" {
			c.Set(util.ContextSessionID, sessionID)
			if resolved, err := resolver.IdentityFromSession(c.Request.Context(), sessionID); err == nil {
				id = resolved
			}
		}

		if !id.IsAuthenticated {
			if token := bearerToken(c); token != "" {
				if resolved, err := resolver.IdentityFromToken(token); err == nil {
					id = resolved
				}
			}
		}

		util.SetIdentity(c, id)
		c.Next()
	}
}

// AuthMiddleware rejects requests without an authenticated identity.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !util.GetIdentity(c).IsAuthenticated {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
