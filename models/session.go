package models

import "time"

// PremiumState is the state of the premium gate.
type PremiumState string

const (
	PremiumLocked   PremiumState = "locked"
	PremiumUnlocked PremiumState = "unlocked"
)

// SessionState is everything a signed-in visitor's view depends on.
// It is only mutated through session.Manager.Update.
type SessionState struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"userId"`
	Query              string       `json:"query"`
	CategoryID         string       `json:"categoryId,omitempty"`
	Premium            PremiumState `json:"premium"`
	PremiumGateOpen    bool         `json:"premiumGateOpen"`
	BannerDismissed    bool         `json:"bannerDismissed"`
	VideoAdRolled      bool         `json:"videoAdRolled"` // the once-per-session video ad roll has happened
	SelectedProviderID string       `json:"selectedProviderId,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// NewSessionState returns a Locked session with no filters.
func NewSessionState(id, userID string, now time.Time) SessionState {
	return SessionState{
		ID:        id,
		UserID:    userID,
		Premium:   PremiumLocked,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPremium reports whether the gate is unlocked.
func (s SessionState) IsPremium() bool {
	return s.Premium == PremiumUnlocked
}

// Search sets the free-text query and clears the selected category.
func (s *SessionState) Search(query string) {
	s.Query = query
	s.CategoryID = ""
}

// SelectCategory selects a category and clears the query.
func (s *SessionState) SelectCategory(categoryID string) {
	s.CategoryID = categoryID
	s.Query = ""
}

func (s *SessionState) ClearQuery()    { s.Query = "" }
func (s *SessionState) ClearCategory() { s.CategoryID = "" }

// ClearFilters drops both the query and the category.
func (s *SessionState) ClearFilters() {
	s.Query = ""
	s.CategoryID = ""
}

// HasFilter reports whether a query or category is active.
func (s SessionState) HasFilter() bool {
	return s.Query != "" || s.CategoryID != ""
}
