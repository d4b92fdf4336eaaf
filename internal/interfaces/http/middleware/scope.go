package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
	"github.com/faithconnect/backend/internal/domain/authz"
	"github.com/faithconnect/backend/internal/interfaces/http/dto"
)

// RequireScope guards a route group with the role scope it needs. The
// caller's role comes from their stored profile when one exists, falling
// back to the token claims, so a role change takes effect without waiting
// for the token to be reissued.
//
// Denials redirect browsers (303) to the section the caller may use and
// return a JSON error with the same redirect target to API clients.
func RequireScope(scope authz.Scope, profiles *appidentity.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		session := SessionFromContext(c)

		profile := profiles.ResolveProfile(c.Request.Context(), session)

		decision := authz.Authorize(session, profile, scope)
		if decision.Allowed() {
			c.Next()
			return
		}

		logger.Warn("access denied",
			zap.String("path", c.Request.URL.Path),
			zap.String("scope", string(scope)),
			zap.String("redirect", decision.RedirectTarget))

		if acceptsHTML(c) {
			c.Abort()
			c.Redirect(http.StatusSeeOther, decision.RedirectTarget)
			return
		}

		status := http.StatusForbidden
		if session == nil || session.IsExpired() {
			status = http.StatusUnauthorized
		}
		c.AbortWithStatusJSON(status, dto.NewDenialResponse(decision.RedirectTarget))
	}
}

// acceptsHTML reports whether the client is a browser navigation rather
// than an API call. API clients send Accept: application/json or nothing.
func acceptsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
