package handlers

import (
	"net/http"

	"servicehub/services/ads"
	"servicehub/services/session"
	"servicehub/views"

	"github.com/gin-gonic/gin"
)

type AdHandler struct {
	Ads      *ads.AdService
	Sessions *session.Manager
}

// GetBanner handles GET /api/ads/banner.
func (h *AdHandler) GetBanner(c *gin.Context) {
	state, err := h.Sessions.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewBannerView(state))
}

// DismissBanner handles DELETE /api/ads/banner.
func (h *AdHandler) DismissBanner(c *gin.Context) {
	state, err := h.Ads.DismissBanner(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewBannerView(state))
}

// GetVideo handles GET /api/ads/video.
func (h *AdHandler) GetVideo(c *gin.Context) {
	id := sessionID(c)
	state, ok := h.Ads.Video(id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"visible": false, "pending": h.Ads.Pending(id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"visible": state.Phase != ads.VideoClosed, "video": views.NewVideoAdView(state)})
}

// SkipVideo handles POST /api/ads/video/skip.
func (h *AdHandler) SkipVideo(c *gin.Context) {
	state, err := h.Ads.Skip(sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewVideoAdView(state))
}

// CloseVideo handles DELETE /api/ads/video.
func (h *AdHandler) CloseVideo(c *gin.Context) {
	state, err := h.Ads.Close(sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewVideoAdView(state))
}
