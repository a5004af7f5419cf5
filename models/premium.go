package models

// PremiumFeature is one bullet in the upgrade dialog.
type PremiumFeature struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsPremiumOnly bool   `json:"isPremiumOnly"`
}

// PricingPlan is one of the plans offered by the upgrade dialog.
type PricingPlan struct {
	ID     string  `json:"id"` // "monthly" or "yearly"
	Label  string  `json:"label"`
	Price  float64 `json:"price"`
	Period string  `json:"period"`
	Note   string  `json:"note,omitempty"`
}
