package views

import (
	"fmt"

	"servicehub/models"
	"servicehub/services/ads"
	"servicehub/services/chat"
)

const (
	HeroTitle        = "Find Trusted Service Providers"
	HeroSubtitle     = "Connect with KYC-verified professionals for all your service needs"
	EmptyMessage     = "No service providers found matching your criteria"
	EmptyResetLabel  = "View All Providers"
	FeaturedHeading  = "Featured Providers"
	BrowseHeading    = "Browse Services"
	ClearFiltersText = "Clear all"
)

type ActiveFilter struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type EmptyState struct {
	Message    string `json:"message"`
	ResetLabel string `json:"resetLabel"`
}

type HeaderView struct {
	Premium     bool         `json:"premium"`
	ShowUpgrade bool         `json:"showUpgrade"`
	User        *models.User `json:"user,omitempty"`
}

// HomeView is everything the signed-in home page renders for one session.
type HomeView struct {
	Header           HeaderView      `json:"header"`
	HeroTitle        string          `json:"heroTitle"`
	HeroSubtitle     string          `json:"heroSubtitle"`
	Banner           BannerView      `json:"banner"`
	ActiveFilters    []ActiveFilter  `json:"activeFilters"`
	ClearFiltersText string          `json:"clearFiltersText,omitempty"`
	ShowCategories   bool            `json:"showCategories"`
	CategoriesTitle  string          `json:"categoriesTitle,omitempty"`
	Categories       []CategoryTile  `json:"categories,omitempty"`
	Heading          string          `json:"heading"`
	Count            int             `json:"count"`
	CountLabel       string          `json:"countLabel"`
	Providers        []ProviderCard  `json:"providers"`
	EmptyState       *EmptyState     `json:"emptyState,omitempty"`
	Chat             *ChatPanelView  `json:"chat,omitempty"`
	PremiumGate      PremiumGateView `json:"premiumGate"`
	VideoAd          *VideoAdView    `json:"videoAd,omitempty"`
}

// HomeInput carries what a home page is built from. Category is the selected
// category, if any; Providers is already filtered.
type HomeInput struct {
	State      models.SessionState
	User       *models.User
	Categories []models.ServiceCategory
	Category   *models.ServiceCategory
	Providers  []models.ServiceProvider
	Chat       *chat.Snapshot
	Video      *ads.VideoAdState
}

// Heading names the provider list for the current filter.
func Heading(category *models.ServiceCategory, query string) string {
	switch {
	case category != nil:
		return category.Name + " Providers"
	case query != "":
		return fmt.Sprintf("Search Results for %q", query)
	default:
		return FeaturedHeading
	}
}

func ActiveFilters(category *models.ServiceCategory, query string) []ActiveFilter {
	filters := []ActiveFilter{}
	if category != nil {
		filters = append(filters, ActiveFilter{Kind: "category", Label: category.Name})
	}
	if query != "" {
		filters = append(filters, ActiveFilter{Kind: "query", Label: fmt.Sprintf("%q", query)})
	}
	return filters
}

func Home(in HomeInput) HomeView {
	premium := in.State.IsPremium()
	v := HomeView{
		Header:        HeaderView{Premium: premium, ShowUpgrade: !premium, User: in.User},
		HeroTitle:     HeroTitle,
		HeroSubtitle:  HeroSubtitle,
		Banner:        NewBannerView(in.State),
		ActiveFilters: ActiveFilters(in.Category, in.State.Query),
		Heading:       Heading(in.Category, in.State.Query),
		Count:         len(in.Providers),
		CountLabel:    fmt.Sprintf("%d providers found", len(in.Providers)),
		Providers:     ProviderCards(in.Providers, premium),
		PremiumGate:   NewPremiumGateView(in.State),
	}
	if in.State.HasFilter() {
		v.ClearFiltersText = ClearFiltersText
	} else {
		v.ShowCategories = true
		v.CategoriesTitle = BrowseHeading
		v.Categories = CategoryGrid(in.Categories)
	}
	if len(in.Providers) == 0 {
		v.EmptyState = &EmptyState{Message: EmptyMessage, ResetLabel: EmptyResetLabel}
	}
	if in.Chat != nil {
		cv := NewChatPanelView(*in.Chat, premium)
		v.Chat = &cv
	}
	if in.Video != nil && in.Video.Phase != ads.VideoClosed {
		av := NewVideoAdView(*in.Video)
		v.VideoAd = &av
	}
	return v
}
