package resolvers

import (
	"context"
	"errors"
	"fmt"

	"servicehub/models"
	"servicehub/services/ads"
	"servicehub/services/catalog"
	"servicehub/services/chat"
	"servicehub/services/session"
	"servicehub/utils"
	"servicehub/views"

	"go.uber.org/zap"
)

// Resolver builds the home page for a session and applies browse actions to it.
type Resolver struct {
	Catalog  catalog.CatalogService
	Sessions *session.Manager
	Chat     *chat.ChatService
	Ads      *ads.AdService
}

// Home assembles the current view. The first call for a session also rolls its video ad.
func (r *Resolver) Home(ctx context.Context, sessionID string, user *models.User) (*views.HomeView, error) {
	logger := utils.GetLogger()

	if r.Ads != nil {
		if _, err := r.Ads.Arm(ctx, sessionID); err != nil {
			logger.Warn("failed to arm video ad", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	state, err := r.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	categories, err := r.Catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result, err := r.Catalog.Browse(ctx, state.CategoryID, state.Query)
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		// The catalog no longer has the selected category; drop the filter.
		logger.Warn("selected category vanished", zap.String("categoryID", state.CategoryID))
		state, err = r.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
			st.ClearCategory()
			return nil
		})
		if err != nil {
			return nil, err
		}
		result, err = r.Catalog.Browse(ctx, "", state.Query)
	}
	if err != nil {
		return nil, err
	}

	in := views.HomeInput{
		State:      state,
		User:       user,
		Categories: categories,
		Category:   result.Category,
		Providers:  result.Providers,
	}
	if r.Chat != nil {
		if snap, err := r.Chat.Current(sessionID); err == nil {
			in.Chat = &snap
		}
	}
	if r.Ads != nil {
		if video, ok := r.Ads.Video(sessionID); ok {
			in.Video = &video
		}
	}

	view := views.Home(in)
	return &view, nil
}

// Search replaces the category filter with a text query.
func (r *Resolver) Search(ctx context.Context, sessionID, query string, user *models.User) (*views.HomeView, error) {
	if _, err := r.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		st.Search(query)
		return nil
	}); err != nil {
		return nil, err
	}
	return r.Home(ctx, sessionID, user)
}

// SelectCategory replaces the text query with a category filter.
func (r *Resolver) SelectCategory(ctx context.Context, sessionID, categoryID string, user *models.User) (*views.HomeView, error) {
	if _, err := r.Catalog.Category(ctx, categoryID); err != nil {
		return nil, err
	}
	if _, err := r.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		st.SelectCategory(categoryID)
		return nil
	}); err != nil {
		return nil, err
	}
	return r.Home(ctx, sessionID, user)
}

// ClearQuery, ClearCategory and ClearFilters remove one or both filters.
func (r *Resolver) ClearQuery(ctx context.Context, sessionID string, user *models.User) (*views.HomeView, error) {
	return r.mutate(ctx, sessionID, user, (*models.SessionState).ClearQuery)
}

func (r *Resolver) ClearCategory(ctx context.Context, sessionID string, user *models.User) (*views.HomeView, error) {
	return r.mutate(ctx, sessionID, user, (*models.SessionState).ClearCategory)
}

func (r *Resolver) ClearFilters(ctx context.Context, sessionID string, user *models.User) (*views.HomeView, error) {
	return r.mutate(ctx, sessionID, user, (*models.SessionState).ClearFilters)
}

func (r *Resolver) mutate(ctx context.Context, sessionID string, user *models.User, fn func(*models.SessionState)) (*views.HomeView, error) {
	if _, err := r.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		fn(st)
		return nil
	}); err != nil {
		return nil, err
	}
	return r.Home(ctx, sessionID, user)
}
