package auth

import (
	"context"
	"fmt"
	"time"

	"servicehub/models"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// premiumClaim is the custom claim that marks a Firebase user as premium.
const premiumClaim = "premium"

// FirebaseProvider verifies Firebase ID tokens and reads users from Firebase Auth.
type FirebaseProvider struct {
	client *fbauth.Client
}

// NewFirebaseProvider initializes the Firebase app. An empty credentialsFile falls back
// to application default credentials.
func NewFirebaseProvider(ctx context.Context, credentialsFile string) (*FirebaseProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) Login(ctx context.Context, cred Credential) (*models.User, error) {
	if cred.IDToken == "" {
		return nil, fmt.Errorf("%w: missing id token", ErrInvalidCredential)
	}
	tok, err := p.client.VerifyIDToken(ctx, cred.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return p.lookup(ctx, tok.UID)
}

func (p *FirebaseProvider) Subscribe(ctx context.Context, token string) <-chan models.AuthState {
	return subscribe(ctx, token, p.lookup)
}

func (p *FirebaseProvider) lookup(ctx context.Context, uid string) (*models.User, error) {
	rec, err := p.client.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("firebase: get user %s: %w", uid, err)
	}
	return userFromRecord(rec), nil
}

func userFromRecord(rec *fbauth.UserRecord) *models.User {
	u := &models.User{IsKycVerified: rec.EmailVerified}
	if rec.UserInfo != nil {
		u.ID = rec.UID
		u.Email = rec.Email
		u.DisplayName = rec.DisplayName
		u.Avatar = rec.PhotoURL
	}
	if rec.UserMetadata != nil && rec.UserMetadata.CreationTimestamp > 0 {
		u.CreatedAt = time.UnixMilli(rec.UserMetadata.CreationTimestamp).UTC()
	}
	if premium, ok := rec.CustomClaims[premiumClaim].(bool); ok {
		u.IsPremium = premium
	}
	return u
}
