package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ============================================================================
// USER PROFILE
// ============================================================================

// UserProfile is a singleton per session identity. ID equals the auth user id.
type UserProfile struct {
	ID        string    `json:"id" validate:"required"`
	FullName  string    `json:"full_name" validate:"required,min=2"`
	Email     *string   `json:"email,omitempty" validate:"omitempty,email"`
	AvatarURL *string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Theme     *Theme    `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	Currency  *string   `json:"currency,omitempty" validate:"omitempty,len=3,alpha,uppercase"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

// ProfilePatch supports changing a single field (e.g. only Currency).
type ProfilePatch struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Theme     *Theme  `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	Currency  *string `json:"currency,omitempty" validate:"omitempty,len=3,alpha,uppercase"`
}

func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = p.AvatarURL
	}
	if p.Theme != nil {
		u.Theme = p.Theme
	}
	if p.Currency != nil {
		u.Currency = p.Currency
	}
	return u
}

// ============================================================================
// ACCOUNT (server-side credentials, never sent to clients)
// ============================================================================

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	TOTPSecret   string    `json:"totp_secret,omitempty"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// Identity is the session handed out by the auth collaborator.
type Identity struct {
	UserID      string    `json:"user_id" validate:"required"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token" validate:"required"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

type AuthResponse struct {
	Identity Identity    `json:"identity"`
	Profile  UserProfile `json:"profile"`
}
