package models

import "time"

// User is the signed-in account as reported by the auth provider.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName"`
	Avatar        string    `json:"avatar,omitempty"`
	IsKycVerified bool      `json:"isKycVerified"`
	IsPremium     bool      `json:"isPremium"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuthState is what auth subscribers observe: a user (or nil) and whether auth is still resolving.
type AuthState struct {
	User      *User `json:"user"`
	IsLoading bool  `json:"isLoading"`
}
