package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/config"
	"github.com/rs/zerolog"
)

// identityHeader carries the signed-in user's email, set by the upstream
// authentication provider. The provider is trusted; this service only
// checks the allow-list.
const identityHeader = "X-User-Email"

// authMiddleware gates the admin surface behind the configured allow-list.
// Binary decision: listed emails are admins, everyone else is denied.
func authMiddleware(admin *config.AdminConfig, log zerolog.Logger) gin.HandlerFunc {
	authLog := log.With().Str("component", "auth").Logger()

	return func(c *gin.Context) {
		email := c.GetHeader(identityHeader)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		if !admin.IsAdmin(email) {
			authLog.Warn().Str("email", email).Str("path", c.Request.URL.Path).
				Msg("Admin access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Not authorized for moderation",
			})
			return
		}

		c.Set("admin_email", email)
		c.Next()
	}
}
