package handlers

import (
	"net/http"

	"servicehub/services/catalog"
	"servicehub/services/session"
	"servicehub/views"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog  catalog.CatalogService
	Sessions *session.Manager
}

// GetCategories handles GET /api/categories.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.CategoryGrid(categories))
}

// GetProviders handles GET /api/providers. The optional category and q query
// parameters filter the list; cards are masked unless the session is premium.
func (h *CatalogHandler) GetProviders(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.Sessions.Get(ctx, sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Catalog.Browse(ctx, c.Query("category"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(result.Providers),
		"providers": views.ProviderCards(result.Providers, state.IsPremium()),
	})
}

// GetProvider handles GET /api/providers/:id.
func (h *CatalogHandler) GetProvider(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.Sessions.Get(ctx, sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	provider, err := h.Catalog.Provider(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewProviderCard(*provider, state.IsPremium()))
}
