package models

import "time"

// ServiceCategory is immutable reference data for the category grid.
type ServiceCategory struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Icon        string `bson:"icon" json:"icon"` // icon identifier, e.g. "Wrench"
	Description string `bson:"description" json:"description"`
}

// ServiceProvider is a display-only catalog listing.
type ServiceProvider struct {
	ID                 string          `bson:"id" json:"id"`
	UserID             string          `bson:"userId" json:"userId"`
	Category           ServiceCategory `bson:"category" json:"category"`
	Title              string          `bson:"title" json:"title"`
	Description        string          `bson:"description" json:"description"`
	Experience         int             `bson:"experience" json:"experience"` // years
	Rating             float64         `bson:"rating" json:"rating"`
	TotalReviews       int             `bson:"totalReviews" json:"totalReviews"`
	HourlyRate         float64         `bson:"hourlyRate" json:"hourlyRate"`
	Location           string          `bson:"location" json:"location"`
	Availability       bool            `bson:"availability" json:"availability"`
	ProfileImage       string          `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	VerificationBadges []string        `bson:"verificationBadges" json:"verificationBadges"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
}

// Review is a customer review of a provider.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	Rating     float64   `bson:"rating" json:"rating"` // 1 to 5
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
