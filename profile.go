package authclient

import (
	"context"
	"sync"
)

// ProfileManager fetches and mutates the authenticated user's profile. The
// server representation always replaces the local one; there is no
// optimistic merge.
type ProfileManager struct {
	client *Client
	logger Logger

	mu        sync.RWMutex
	profile   *UserProfile
	isLoading bool
	lastError string
}

var _ ProfileService = (*ProfileManager)(nil)

// NewProfileManager builds a profile manager over the shared client.
func NewProfileManager(client *Client) *ProfileManager {
	return &ProfileManager{
		client: client,
		logger: defLogger{},
	}
}

func (p *ProfileManager) WithLogger(logger Logger) *ProfileManager {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Profile returns the last fetched profile, or nil.
func (p *ProfileManager) Profile() *UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile
}

// LastError returns the surfaced message of the most recent failure, empty
// after a success.
func (p *ProfileManager) LastError() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastError
}

// IsLoading reports whether a fetch or update is in flight.
func (p *ProfileManager) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isLoading
}

// Fetch loads the current user's profile.
func (p *ProfileManager) Fetch(ctx context.Context) (*UserProfile, error) {
	p.setLoading(true)

	profile := &UserProfile{}
	if err := p.client.Get(ctx, "/users/me", profile); err != nil {
		p.logger.Error("profile fetch failed: %v", err)
		p.fail(ErrorMessage(err))
		return nil, err
	}

	p.succeed(profile)
	return profile, nil
}

// Update submits the changed fields and replaces local state with whatever
// the server returns. A photo switches the request to multipart.
func (p *ProfileManager) Update(ctx context.Context, data ProfileUpdate) (*UserProfile, error) {
	p.setLoading(true)

	updated := &UserProfile{}
	var err error

	if data.Photo != nil {
		err = p.client.PutMultipart(ctx, "/users/me", multipartFields(data),
			"profile_photo", photoFilename(data), data.Photo, updated)
	} else {
		err = p.client.PutJSON(ctx, "/users/me", jsonFields(data), updated)
	}

	if err != nil {
		p.logger.Error("profile update failed: %v", err)
		p.fail(ErrorMessage(err))
		return nil, err
	}

	p.succeed(updated)
	return updated, nil
}

func (p *ProfileManager) setLoading(loading bool) {
	p.mu.Lock()
	p.isLoading = loading
	if loading {
		p.lastError = ""
	}
	p.mu.Unlock()
}

func (p *ProfileManager) succeed(profile *UserProfile) {
	p.mu.Lock()
	p.profile = profile
	p.isLoading = false
	p.lastError = ""
	p.mu.Unlock()
}

func (p *ProfileManager) fail(message string) {
	p.mu.Lock()
	p.isLoading = false
	p.lastError = message
	p.mu.Unlock()
}

func jsonFields(data ProfileUpdate) map[string]any {
	fields := map[string]any{}
	if data.FullName != nil {
		fields["full_name"] = *data.FullName
	}
	if data.PhoneNumber != nil {
		fields["phone_number"] = *data.PhoneNumber
	}
	if data.PreferredLanguage != nil {
		fields["preferred_language"] = *data.PreferredLanguage
	}
	if data.PreferredCurrency != nil {
		fields["preferred_currency"] = *data.PreferredCurrency
	}
	return fields
}

func multipartFields(data ProfileUpdate) map[string]string {
	fields := map[string]string{}
	if data.FullName != nil {
		fields["full_name"] = *data.FullName
	}
	if data.PhoneNumber != nil {
		fields["phone_number"] = *data.PhoneNumber
	}
	if data.PreferredLanguage != nil {
		fields["preferred_language"] = string(*data.PreferredLanguage)
	}
	if data.PreferredCurrency != nil {
		fields["preferred_currency"] = string(*data.PreferredCurrency)
	}
	return fields
}

func photoFilename(data ProfileUpdate) string {
	if data.PhotoFilename != "" {
		return data.PhotoFilename
	}
	return "profile-photo"
}
