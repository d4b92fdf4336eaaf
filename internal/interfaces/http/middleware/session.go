package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/infrastructure/auth"
)

// Context keys set by the session middleware
const (
	ContextKeySession  = "session"
	ContextKeyClaims   = "token_claims"
	ContextKeyUserID   = "user_id"
	ContextKeyBranchID = "branch_id"
)

// Session returns a middleware that resolves the caller's session from a
// Bearer token. Requests without a valid token pass through unauthenticated;
// route guards decide whether that is acceptable for a given route.
func Session(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			logger.Debug("rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("token blacklist lookup failed", zap.Error(err))
			}
			if revoked {
				c.Next()
				return
			}

			invalidated, err := blacklist.IsUserTokenInvalidated(c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				logger.Warn("user token invalidation lookup failed", zap.Error(err))
			}
			if invalidated {
				c.Next()
				return
			}
		}

		session, err := claims.ToSession()
		if err != nil {
			logger.Debug("malformed token claims", zap.Error(err))
			c.Next()
			return
		}

		c.Set(ContextKeySession, session)
		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, session.UserID.String())
		if session.BranchID != nil {
			c.Set(ContextKeyBranchID, session.BranchID.String())
		}

		c.Next()
	}
}

// SessionFromContext returns the authenticated session, or nil when the
// request carried no valid token.
func SessionFromContext(c *gin.Context) *identity.Session {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	session, ok := value.(*identity.Session)
	if !ok {
		return nil
	}
	return session
}

// ClaimsFromContext returns the validated token claims, or nil when the
// request carried no valid token.
func ClaimsFromContext(c *gin.Context) *auth.Claims {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
