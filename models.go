package authclient

import (
	"time"

	"github.com/google/uuid"
)

// Role is the user's role on the rental platform
type Role = string

const (
	// RoleTenant rents property
	RoleTenant Role = "tenant"
	// RoleLandlord lists property
	RoleLandlord Role = "landlord"
	// RoleOwner owns property managed by a landlord account
	RoleOwner Role = "owner"
	// RoleBroker brokers rentals on behalf of tenants
	RoleBroker Role = "broker"
	// RoleAdmin administers the platform
	RoleAdmin Role = "admin"
)

// Language is a preferred UI language code
type Language = string

const (
	LanguageEnglish Language = "en"
	LanguageAmharic Language = "am"
	LanguageOromo   Language = "om"
)

// Currency is a preferred display currency
type Currency = string

const (
	CurrencyETB Currency = "ETB"
	CurrencyUSD Currency = "USD"
)

// UserProfile is the server's representation of the authenticated user.
// Created server-side on registration, fetched after login or refresh,
// mutated only through profile updates; the server copy is authoritative.
type UserProfile struct {
	ID                string     `json:"id,omitempty"`
	Email             string     `json:"email,omitempty"`
	FullName          string     `json:"full_name,omitempty"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	Role              Role       `json:"role,omitempty"`
	IsActive          bool       `json:"is_active,omitempty"`
	ProfilePhoto      string     `json:"profile_photo,omitempty"`
	PreferredLanguage Language   `json:"preferred_language,omitempty"`
	PreferredCurrency Currency   `json:"preferred_currency,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// UserUUID parses the server-assigned ID as a UUID
func (u *UserProfile) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(u.ID)
}

// TokenPair is the credential payload returned by the login and refresh
// endpoints. RefreshToken may be absent; callers keep the previous one.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// MessageResponse is the `{message}` body returned by the password reset
// endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Text returns the human readable part of the response, whichever field the
// backend variant used.
func (m MessageResponse) Text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Detail
}
