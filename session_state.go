package authclient

import (
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidTransition = "INVALID_SESSION_TRANSITION"

// ErrInvalidSessionTransition is returned when a requested status change is
// not allowed by the session lifecycle.
var ErrInvalidSessionTransition = goerrors.New("invalid session state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// SessionStatus is the lifecycle position of the auth session.
type SessionStatus string

const (
	// StatusAnonymous means no credentials are held.
	StatusAnonymous SessionStatus = "anonymous"
	// StatusAuthenticated means a bearer token is held and a user was
	// fetched.
	StatusAuthenticated SessionStatus = "authenticated"
)

// sessionTransitions is the allowed transition table. A failed login is not
// a transition, the session stays anonymous with the error recorded.
var sessionTransitions = map[SessionStatus]map[SessionStatus]struct{}{
	StatusAnonymous: {
		StatusAuthenticated: {},
	},
	StatusAuthenticated: {
		StatusAnonymous: {},
	},
}

func canTransition(from, to SessionStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := sessionTransitions[from]
	if !ok {
		return false
	}
	_, exists := allowed[to]
	return exists
}

func validateTransition(from, to SessionStatus) error {
	if canTransition(from, to) {
		return nil
	}
	return ErrInvalidSessionTransition.WithMetadata(map[string]any{
		"from": string(from),
		"to":   string(to),
	})
}

// SessionState is the observable snapshot of the auth session. AccessToken
// being non-empty is what "authenticated" means; User should follow it but
// the fetch is not atomic with token acquisition.
type SessionState struct {
	Status       SessionStatus
	User         *UserProfile
	AccessToken  string
	RefreshToken string
	IsLoading    bool
	Error        string
}

// IsAuthenticated reports whether a session is active.
func (s SessionState) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// Subscriber receives a state snapshot after every change.
type Subscriber func(SessionState)
