package handlers

import (
	"time"

	"servicehub/resolvers"
	"servicehub/services/ads"
	"servicehub/services/auth"
	"servicehub/services/catalog"
	"servicehub/services/chat"
	"servicehub/services/premium"
	"servicehub/services/session"
)

// Services are the dependencies the handlers are built from.
type Services struct {
	Auth     auth.Provider
	Catalog  catalog.CatalogService
	Sessions *session.Manager
	Premium  *premium.PremiumService
	Chat     *chat.ChatService
	Ads      *ads.AdService
	TokenTTL time.Duration
}

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	Sessions *session.Manager

	Auth    *AuthHandler
	Catalog *CatalogHandler
	Home    *HomeHandler
	Premium *PremiumHandler
	Chat    *ChatHandler
	Ads     *AdHandler
}

func NewHandlerBundle(s Services) *HandlerBundle {
	return &HandlerBundle{
		Sessions: s.Sessions,
		Auth:     &AuthHandler{Provider: s.Auth, Sessions: s.Sessions, Premium: s.Premium, TokenTTL: s.TokenTTL},
		Catalog:  &CatalogHandler{Catalog: s.Catalog, Sessions: s.Sessions},
		Home: &HomeHandler{Resolver: &resolvers.Resolver{
			Catalog:  s.Catalog,
			Sessions: s.Sessions,
			Chat:     s.Chat,
			Ads:      s.Ads,
		}},
		Premium: &PremiumHandler{Premium: s.Premium},
		Chat:    &ChatHandler{Chat: s.Chat, Sessions: s.Sessions},
		Ads:     &AdHandler{Ads: s.Ads, Sessions: s.Sessions},
	}
}

// WireLifecycle connects the session and premium hooks: upgrading drops any video ad,
// and ending a session tears down its chat panel and ads.
func (s Services) WireLifecycle() {
	if s.Premium != nil && s.Ads != nil {
		s.Premium.OnUpgrade(s.Ads.Cancel)
	}
	if s.Sessions == nil {
		return
	}
	if s.Chat != nil {
		s.Sessions.OnEnd(s.Chat.Forget)
	}
	if s.Ads != nil {
		s.Sessions.OnEnd(s.Ads.Cancel)
	}
}
