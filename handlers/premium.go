package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/premium"
	"servicehub/views"

	"github.com/gin-gonic/gin"
)

type PremiumHandler struct {
	Premium *premium.PremiumService
}

func premiumBody(state models.SessionState) gin.H {
	return gin.H{
		"state":   state.Premium,
		"premium": state.IsPremium(),
		"gate":    views.NewPremiumGateView(state),
	}
}

// GetPremium handles GET /api/premium.
func (h *PremiumHandler) GetPremium(c *gin.Context) {
	state, err := h.Premium.Sessions.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, premiumBody(state))
}

// OpenGate handles POST /api/premium/gate.
func (h *PremiumHandler) OpenGate(c *gin.Context) {
	state, err := h.Premium.OpenGate(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, premiumBody(state))
}

// CloseGate handles DELETE /api/premium/gate.
func (h *PremiumHandler) CloseGate(c *gin.Context) {
	state, err := h.Premium.CloseGate(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, premiumBody(state))
}

// Upgrade handles POST /api/premium/upgrade. The demo upgrade always succeeds.
func (h *PremiumHandler) Upgrade(c *gin.Context) {
	state, err := h.Premium.Upgrade(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	body := premiumBody(state)
	body["message"] = premium.UpgradeConfirmation
	c.JSON(http.StatusOK, body)
}
