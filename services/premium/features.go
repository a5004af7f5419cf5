package premium

import "servicehub/models"

// Features lists what the upgrade dialog advertises.
func Features() []models.PremiumFeature {
	return []models.PremiumFeature{
		{ID: "ratings", Name: "View ratings and reviews", IsPremiumOnly: true},
		{ID: "experience", Name: "See years of experience", IsPremiumOnly: true},
		{ID: "attachments", Name: "Send attachments in chat", IsPremiumOnly: true},
		{ID: "voice", Name: "Send voice messages", IsPremiumOnly: true},
		{ID: "no-video-ads", Name: "No video ads", IsPremiumOnly: true},
		{ID: "priority-support", Name: "Priority support", IsPremiumOnly: true},
	}
}

// Plans are the prices shown in the dialog; nothing is charged.
func Plans() []models.PricingPlan {
	return []models.PricingPlan{
		{ID: "monthly", Label: "Monthly", Price: 99, Period: "month", Note: "Billed monthly"},
		{ID: "yearly", Label: "Yearly", Price: 599, Period: "year", Note: "Save 50%"},
	}
}
