package authclient

import (
	"net/url"
	"strings"
)

// RoleRedirectPolicy maps a user role to the base URL of the separately
// deployed frontend serving that role. Landlord and owner share the landlord
// shell; tenant and broker share the tenant shell. Navigation itself is a
// side effect the caller performs; the policy only computes URLs.
type RoleRedirectPolicy struct {
	targets map[Role]string
}

// NewRoleRedirectPolicy builds the policy from the configured microfrontend
// URLs. Roles whose URL is unset simply have no external destination and
// stay on the internal landing route.
func NewRoleRedirectPolicy(cfg Config) *RoleRedirectPolicy {
	targets := map[Role]string{}

	if u := strings.TrimSpace(cfg.GetAdminFrontendURL()); u != "" {
		targets[RoleAdmin] = u
	}
	if u := strings.TrimSpace(cfg.GetLandlordFrontendURL()); u != "" {
		targets[RoleLandlord] = u
		targets[RoleOwner] = u
	}
	if u := strings.TrimSpace(cfg.GetTenantFrontendURL()); u != "" {
		targets[RoleTenant] = u
		targets[RoleBroker] = u
	}

	return &RoleRedirectPolicy{targets: targets}
}

// BaseURL returns the external destination configured for a role.
func (p *RoleRedirectPolicy) BaseURL(role Role) (string, bool) {
	u, ok := p.targets[role]
	return u, ok
}

// CallbackURL assembles the hard-redirect hand-off URL carrying the access
// token: <base>/auth/callback?token=<encoded token>.
func (p *RoleRedirectPolicy) CallbackURL(role Role, token string) (string, bool) {
	base, ok := p.targets[role]
	if !ok || token == "" {
		return "", false
	}

	return strings.TrimRight(base, "/") + "/auth/callback?token=" + url.QueryEscape(token), true
}
