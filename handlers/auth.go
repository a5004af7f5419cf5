package handlers

import (
	"net/http"
	"time"

	"servicehub/middleware"
	"servicehub/services/auth"
	"servicehub/services/premium"
	"servicehub/services/session"
	"servicehub/utils"
	"servicehub/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Provider auth.Provider
	Sessions *session.Manager
	Premium  *premium.PremiumService
	TokenTTL time.Duration
}

// Login handles POST /api/auth/login. It signs the user in, starts a browse session and
// returns a token bound to it.
func (h *AuthHandler) Login(c *gin.Context) {
	var cred auth.Credential
	if err := c.ShouldBindJSON(&cred); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Provider.Login(ctx, cred)
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.IsPremium {
		if state, err = h.Premium.Upgrade(ctx, state.ID); err != nil {
			respondError(c, err)
			return
		}
	}

	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = utils.DefaultSessionTTL
	}
	token, err := utils.GenerateToken(user.ID, user.Email, state.ID, ttl)
	if err != nil {
		getLogger(c).Error("Login: failed to sign token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign token", "")
		return
	}

	getLogger(c).Info("user signed in", zap.String("userID", user.ID), zap.String("sessionID", state.ID))
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"sessionId": state.ID,
		"user":      user,
		"premium":   state.IsPremium(),
	})
}

// State handles GET /api/auth/state. It is public: a missing or stale token resolves to
// the signed-out view.
func (h *AuthHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	state := auth.Resolve(ctx, h.Provider.Subscribe(ctx, middleware.BearerToken(c)))
	c.JSON(http.StatusOK, views.NewAuthView(state))
}

// Logout handles POST /api/auth/logout by ending the browse session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.End(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
