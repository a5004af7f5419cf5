package handlers

import (
	"errors"
	"net/http"

	"servicehub/services/ads"
	"servicehub/services/auth"
	"servicehub/services/catalog"
	"servicehub/services/chat"
	"servicehub/services/session"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a request-scoped zap logger from the gin context, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// sessionID is set by the session auth middleware.
func sessionID(c *gin.Context) string {
	return c.GetString(utils.ContextSessionID)
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var chatErr *chat.ChatError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		utils.JSONError(c, http.StatusUnauthorized, "session not found", err.Error())
	case errors.Is(err, auth.ErrInvalidCredential):
		utils.JSONError(c, http.StatusUnauthorized, "invalid credential", err.Error())
	case errors.Is(err, catalog.ErrProviderNotFound), errors.Is(err, catalog.ErrCategoryNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, chat.ErrPanelClosed), errors.Is(err, ads.ErrNoVideoAd):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, chat.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ads.ErrNotSkippable):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.As(err, &chatErr):
		getLogger(c).Error("chat failure", zap.String("code", chatErr.Code), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, chatErr.Message, chatErr.Code)
	default:
		getLogger(c).Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal server error", "")
	}
}
