package views

import (
	"fmt"
	"strconv"
	"strings"

	"servicehub/models"
)

// LockedPlaceholder replaces premium-only fields on a locked card.
const LockedPlaceholder = "Premium feature"

// ProviderCard is a provider as listed on the home page. Rating, review count and
// experience are omitted unless the viewer is premium.
type ProviderCard struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Initials        string   `json:"initials"`
	ProfileImage    string   `json:"profileImage,omitempty"`
	Location        string   `json:"location"`
	Available       bool     `json:"available"`
	Availability    string   `json:"availability"`
	Badges          []string `json:"badges"`
	HourlyRate      float64  `json:"hourlyRate"`
	RateLabel       string   `json:"rateLabel"`
	Locked          bool     `json:"locked"`
	Rating          *float64 `json:"rating,omitempty"`
	TotalReviews    *int     `json:"totalReviews,omitempty"`
	Experience      *int     `json:"experience,omitempty"`
	RatingLabel     string   `json:"ratingLabel"`
	ExperienceLabel string   `json:"experienceLabel"`
}

// Initials takes the first letter of each word of a title.
func Initials(title string) string {
	var b strings.Builder
	for _, w := range strings.Fields(title) {
		r := []rune(w)
		b.WriteRune(r[0])
	}
	return b.String()
}

func AvailabilityLabel(available bool) string {
	if available {
		return "Available"
	}
	return "Busy"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func NewProviderCard(p models.ServiceProvider, premium bool) ProviderCard {
	badges := append([]string{}, p.VerificationBadges...)
	card := ProviderCard{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category.Name,
		Initials:        Initials(p.Title),
		ProfileImage:    p.ProfileImage,
		Location:        p.Location,
		Available:       p.Availability,
		Availability:    AvailabilityLabel(p.Availability),
		Badges:          badges,
		HourlyRate:      p.HourlyRate,
		RateLabel:       "₹" + formatNumber(p.HourlyRate) + "/hour",
		Locked:          !premium,
		RatingLabel:     LockedPlaceholder,
		ExperienceLabel: LockedPlaceholder,
	}
	if premium {
		rating, reviews, exp := p.Rating, p.TotalReviews, p.Experience
		card.Rating = &rating
		card.TotalReviews = &reviews
		card.Experience = &exp
		card.RatingLabel = fmt.Sprintf("%s (%d reviews)", formatNumber(rating), reviews)
		card.ExperienceLabel = fmt.Sprintf("%d years exp.", exp)
	}
	return card
}

func ProviderCards(providers []models.ServiceProvider, premium bool) []ProviderCard {
	cards := make([]ProviderCard, 0, len(providers))
	for _, p := range providers {
		cards = append(cards, NewProviderCard(p, premium))
	}
	return cards
}
