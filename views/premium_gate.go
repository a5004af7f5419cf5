package views

import (
	"servicehub/models"
	"servicehub/services/premium"
)

const (
	GateTitle = "Upgrade to Premium"
	GateNote  = "Cancel anytime. No hidden fees."
)

type PremiumGateView struct {
	Open     bool                 `json:"open"`
	Title    string               `json:"title"`
	Features []string             `json:"features"`
	Plans    []models.PricingPlan `json:"plans"`
	Note     string               `json:"note"`
}

func NewPremiumGateView(state models.SessionState) PremiumGateView {
	features := premium.Features()
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name)
	}
	return PremiumGateView{
		Open:     state.PremiumGateOpen,
		Title:    GateTitle,
		Features: names,
		Plans:    premium.Plans(),
		Note:     GateNote,
	}
}
