package handlers

import (
	"context"
	"net/http"

	"servicehub/models"
	"servicehub/resolvers"
	"servicehub/utils"
	"servicehub/views"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	Resolver *resolvers.Resolver
}

func currentUser(c *gin.Context) *models.User {
	if u, ok := c.Get(utils.ContextUser); ok {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}

func (h *HomeHandler) render(c *gin.Context, build func(ctx context.Context, id string, user *models.User) (*views.HomeView, error)) {
	view, err := build(c.Request.Context(), sessionID(c), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetHome handles GET /api/home.
func (h *HomeHandler) GetHome(c *gin.Context) {
	h.render(c, h.Resolver.Home)
}

// Search handles POST /api/browse/search.
func (h *HomeHandler) Search(c *gin.Context) {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	h.render(c, func(ctx context.Context, id string, user *models.User) (*views.HomeView, error) {
		return h.Resolver.Search(ctx, id, body.Query, user)
	})
}

// SelectCategory handles POST /api/browse/category.
func (h *HomeHandler) SelectCategory(c *gin.Context) {
	var body struct {
		CategoryID string `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	h.render(c, func(ctx context.Context, id string, user *models.User) (*views.HomeView, error) {
		return h.Resolver.SelectCategory(ctx, id, body.CategoryID, user)
	})
}

// ClearQuery handles DELETE /api/browse/query.
func (h *HomeHandler) ClearQuery(c *gin.Context) {
	h.render(c, h.Resolver.ClearQuery)
}

// ClearCategory handles DELETE /api/browse/category.
func (h *HomeHandler) ClearCategory(c *gin.Context) {
	h.render(c, h.Resolver.ClearCategory)
}

// ClearFilters handles DELETE /api/browse/filters.
func (h *HomeHandler) ClearFilters(c *gin.Context) {
	h.render(c, h.Resolver.ClearFilters)
}
