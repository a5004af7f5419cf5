package middleware

import (
	"errors"
	"net/http"
	"strings"

	"servicehub/models"
	"servicehub/services/session"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerToken returns the token from an "Authorization: Bearer" header, or "".
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// SessionAuthMiddleware resolves the bearer token to a live browse session and puts the
// user and session ids into the context.
func SessionAuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil || claims.SessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}

		state, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Session expired"})
				return
			}
			utils.GetLogger().Error("session lookup failed", zap.String("sessionID", claims.SessionID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal server error"})
			return
		}
		if state.UserID != claims.Subject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Token mismatch"})
			return
		}

		c.Set(utils.ContextToken, tokenString)
		c.Set(utils.ContextUserID, claims.Subject)
		c.Set(utils.ContextSessionID, claims.SessionID)
		c.Set(utils.ContextUser, &models.User{ID: claims.Subject, Email: claims.Email})
		c.Next()
	}
}
