package authclient

import (
	"context"
	"net/url"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// Manager orchestrates login, signup, logout and token-bootstrap flows and
// owns the in-memory session state. It is constructor-injected everywhere it
// is used; there is no package-level session singleton.
type Manager struct {
	client *Client
	store  TokenStore
	logger Logger

	mu    sync.RWMutex
	state SessionState

	subMu sync.Mutex
	subs  map[int]Subscriber
	nextSub int
}

var _ SessionAuthenticator = (*Manager)(nil)

// NewManager returns a session manager in the anonymous state.
func NewManager(client *Client, store TokenStore) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: defLogger{},
		state: SessionState{
			Status: StatusAnonymous,
		},
		subs: map[int]Subscriber{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether an access token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Subscribe registers a listener notified after every state change. The
// returned function removes it.
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// Login submits credentials form-encoded, persists the returned tokens and
// fetches the current user before reporting success. A 401 surfaces as
// "Incorrect email or password"; any failure leaves the session anonymous
// with the error recorded.
func (m *Manager) Login(ctx context.Context, email, password string) (*UserProfile, error) {
	payload := LoginRequest{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	m.setLoading(true)

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	pair := &TokenPair{}
	if err := m.client.PostForm(ctx, "/auth/login", form, pair); err != nil {
		m.logger.Error("login request failed: %v", err)
		m.failAnonymous(ErrorMessage(err))
		return nil, err
	}

	if err := m.store.Set(pair.AccessToken, pair.RefreshToken); err != nil {
		m.logger.Error("failed to persist tokens: %v", err)
		m.failAnonymous(ErrorMessage(err))
		return nil, err
	}

	user, err := m.fetchUser(ctx)
	if err != nil {
		m.logger.Error("post-login user fetch failed: %v", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to clear tokens after fetch failure: %v", clearErr)
		}
		m.failAnonymous(ErrorMessage(err))
		return nil, err
	}

	m.become(StatusAuthenticated, func(s *SessionState) {
		s.User = user
		s.AccessToken = pair.AccessToken
		s.RefreshToken = m.store.GetRefresh()
		s.IsLoading = false
		s.Error = ""
	})

	m.logger.Info("session authenticated for user %s role %s", user.ID, user.Role)

	return user, nil
}

// Signup validates and submits a registration. It does not authenticate the
// new account; callers navigate to the login route afterwards.
func (m *Manager) Signup(ctx context.Context, payload SignupRequest) (*UserProfile, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid signup payload")
	}

	user := &UserProfile{}
	if err := m.client.PostJSON(ctx, "/users/register", payload, user); err != nil {
		m.logger.Error("signup request failed: %v", err)
		return nil, err
	}

	return user, nil
}

// Logout clears the token store and in-memory session synchronously. The
// server logout call is best-effort; its failure does not block the local
// teardown.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.PostJSON(ctx, "/auth/logout", map[string]string{}, nil); err != nil {
		m.logger.Debug("server logout call failed, ignoring: %v", err)
	}

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear token store on logout: %v", err)
	}

	m.become(StatusAnonymous, func(s *SessionState) {
		s.User = nil
		s.AccessToken = ""
		s.RefreshToken = ""
		s.IsLoading = false
		s.Error = ""
	})
}

// SetTokenAndFetchUser accepts an externally obtained token (SSO callback,
// pre-existing storage), persists it and resolves the profile behind it. On
// failure the storage is cleared and the error returned.
func (m *Manager) SetTokenAndFetchUser(ctx context.Context, access, refresh string) (*UserProfile, error) {
	if access == "" {
		return nil, ErrNoSession
	}

	if err := m.store.Set(access, refresh); err != nil {
		return nil, err
	}

	m.setLoading(true)

	user, err := m.fetchUser(ctx)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to clear tokens after callback failure: %v", clearErr)
		}
		m.failAnonymous(ErrorMessage(err))
		return nil, err
	}

	m.become(StatusAuthenticated, func(s *SessionState) {
		s.User = user
		s.AccessToken = m.store.Get()
		s.RefreshToken = m.store.GetRefresh()
		s.IsLoading = false
		s.Error = ""
	})

	return user, nil
}

// Bootstrap rehydrates a persisted session at application start. A stored
// token seeds role and subject hints from its unverified claims, then the
// user is fetched; a token the server rejects (and that the transport could
// not refresh) clears the session back to anonymous.
func (m *Manager) Bootstrap(ctx context.Context) error {
	access := m.store.Get()
	if access == "" {
		m.become(StatusAnonymous, func(s *SessionState) {
			s.IsLoading = false
		})
		return nil
	}

	if hints, err := PeekClaims(access); err == nil {
		m.logger.Debug("rehydrating session for subject %s role %s", hints.UserID, hints.Role)
	}

	m.setLoading(true)

	user, err := m.fetchUser(ctx)
	if err != nil {
		m.logger.Warn("session rehydration failed: %v", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to clear stale tokens: %v", clearErr)
		}
		m.failAnonymous(ErrorMessage(err))
		return err
	}

	m.become(StatusAuthenticated, func(s *SessionState) {
		s.User = user
		s.AccessToken = m.store.Get()
		s.RefreshToken = m.store.GetRefresh()
		s.IsLoading = false
		s.Error = ""
	})

	return nil
}

// ChangePassword submits an authenticated password change.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid change password payload")
	}

	if !m.IsAuthenticated() {
		return ErrNoSession
	}

	return m.client.PostJSON(ctx, "/auth/change-password", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}, nil)
}

func (m *Manager) fetchUser(ctx context.Context) (*UserProfile, error) {
	user := &UserProfile{}
	if err := m.client.Get(ctx, "/users/me", user); err != nil {
		return nil, err
	}
	return user, nil
}

// become applies a status transition plus mutation under the lock and
// notifies subscribers with the resulting snapshot.
func (m *Manager) become(target SessionStatus, mutate func(*SessionState)) {
	m.mu.Lock()

	if err := validateTransition(m.state.Status, target); err != nil {
		// The table only forbids states the flows never produce; log and
		// keep going so a caller bug cannot wedge the session.
		m.logger.Error("session transition rejected: %v", err)
	} else {
		m.state.Status = target
	}

	if mutate != nil {
		mutate(&m.state)
	}

	snapshot := m.state
	m.mu.Unlock()

	m.notify(snapshot)
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.state.IsLoading = loading
	if loading {
		m.state.Error = ""
	}
	snapshot := m.state
	m.mu.Unlock()

	m.notify(snapshot)
}

// failAnonymous records an operation failure without a status transition;
// the session stays (or returns to) anonymous with the message surfaced.
func (m *Manager) failAnonymous(message string) {
	m.mu.Lock()
	m.state.Status = StatusAnonymous
	m.state.User = nil
	m.state.AccessToken = ""
	m.state.RefreshToken = ""
	m.state.IsLoading = false
	m.state.Error = message
	snapshot := m.state
	m.mu.Unlock()

	m.notify(snapshot)
}

func (m *Manager) notify(snapshot SessionState) {
	m.subMu.Lock()
	subs := make([]Subscriber, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
