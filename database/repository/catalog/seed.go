package catalogRepo

import (
	"time"

	"servicehub/models"
)

// SeedCategories returns the compiled-in category list.
func SeedCategories() []models.ServiceCategory {
	return []models.ServiceCategory{
		{ID: "cleaning", Name: "House Cleaning", Icon: "Sparkles", Description: "Professional house cleaning services"},
		{ID: "plumbing", Name: "Plumbing", Icon: "Wrench", Description: "Plumbing repairs and installations"},
		{ID: "electrical", Name: "Electrical Work", Icon: "Zap", Description: "Electrical repairs and installations"},
		{ID: "driving", Name: "Driver Services", Icon: "Car", Description: "Personal driver and transportation"},
		{ID: "security", Name: "Security Guard", Icon: "Shield", Description: "Security and guard services"},
		{ID: "furniture", Name: "Furniture Repair", Icon: "Hammer", Description: "Furniture repair and maintenance"},
	}
}

func mustParse(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedProviders returns the compiled-in provider listings.
func SeedProviders() []models.ServiceProvider {
	categories := SeedCategories()
	security, cleaning, plumbing := categories[4], categories[0], categories[1]

	return []models.ServiceProvider{
		{
			ID:                 "1",
			UserID:             "user1",
			Category:           security,
			Title:              "Professional Security Guard",
			Description:        "Experienced security professional with 8 years in residential and commercial security.",
			Experience:         8,
			Rating:             4.8,
			TotalReviews:       127,
			HourlyRate:         250,
			Location:           "Mumbai, Maharashtra",
			Availability:       true,
			ProfileImage:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			VerificationBadges: []string{"ID Verified", "Background Check"},
			CreatedAt:          mustParse("2024-01-15T10:00:00Z"),
		},
		{
			ID:                 "2",
			UserID:             "user2",
			Category:           cleaning,
			Title:              "Expert House Cleaner",
			Description:        "Professional cleaning service with eco-friendly products and attention to detail.",
			Experience:         5,
			Rating:             4.9,
			TotalReviews:       89,
			HourlyRate:         180,
			Location:           "Delhi, NCR",
			Availability:       true,
			ProfileImage:       "https://images.unsplash.com/photo-1494790108755-2616b9e0e4b0?w=150&h=150&fit=crop&crop=face",
			VerificationBadges: []string{"ID Verified", "Insurance"},
			CreatedAt:          mustParse("2024-02-01T10:00:00Z"),
		},
		{
			ID:                 "3",
			UserID:             "user3",
			Category:           plumbing,
			Title:              "Licensed Plumber",
			Description:        "Certified plumber specializing in residential repairs and installations.",
			Experience:         12,
			Rating:             4.7,
			TotalReviews:       203,
			HourlyRate:         300,
			Location:           "Bangalore, Karnataka",
			Availability:       false,
			ProfileImage:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			VerificationBadges: []string{"ID Verified", "Licensed", "Insurance"},
			CreatedAt:          mustParse("2024-01-20T10:00:00Z"),
		},
	}
}
