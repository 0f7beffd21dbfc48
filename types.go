package authclient

import (
	"context"
	"fmt"
	"io"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the single read/write surface for the bearer and refresh
// tokens. Implementations persist to durable per-user storage; no expiry
// tracking happens here, validity is discovered by a failed request.
type TokenStore interface {
	Get() string
	GetRefresh() string
	Set(access, refresh string) error
	Clear() error
}

// Navigator performs a hard navigation, the window.location.href analog of
// the browser client this package replaces. Implementations decide what
// "navigate" means for their host process.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

// SessionAuthenticator exposes the session lifecycle operations consumed by
// the HTTP surface (route guard and controller).
type SessionAuthenticator interface {
	Login(ctx context.Context, email, password string) (*UserProfile, error)
	Signup(ctx context.Context, payload SignupRequest) (*UserProfile, error)
	Logout(ctx context.Context)
	SetTokenAndFetchUser(ctx context.Context, access, refresh string) (*UserProfile, error)
	Current() SessionState
}

// ProfileService fetches and mutates the authenticated user's profile.
type ProfileService interface {
	Fetch(ctx context.Context) (*UserProfile, error)
	Update(ctx context.Context, data ProfileUpdate) (*UserProfile, error)
}

// ProfileUpdate carries the mutable profile fields. Nil pointers are left
// untouched server-side. A non-nil Photo switches the update to multipart.
type ProfileUpdate struct {
	FullName          *string
	PhoneNumber       *string
	PreferredLanguage *Language
	PreferredCurrency *Currency
	Photo             io.Reader
	PhotoFilename     string
}

// Config holds client options
type Config interface {
	GetAPIBaseURL() string
	GetLoginRoute() string
	GetLandingRoute() string
	GetTokenFile() string
	GetRequestTimeout() time.Duration
	GetGoogleClientID() string
	GetAdminFrontendURL() string
	GetLandlordFrontendURL() string
	GetTenantFrontendURL() string
	GetDebug() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
