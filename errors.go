package authclient

import (
	"encoding/json"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeIncorrectCredentials marks a rejected login attempt
	TextCodeIncorrectCredentials = "INCORRECT_CREDENTIALS"
	// TextCodeSessionExpired marks an unrecoverable 401 after refresh
	TextCodeSessionExpired = "SESSION_EXPIRED"
	// TextCodeNetworkFailure marks requests that never got a response
	TextCodeNetworkFailure = "NETWORK_FAILURE"
)

// ErrNoSession is returned when an operation needs an authenticated session
// and none is active.
var ErrNoSession = goerrors.New("no active session", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoRefreshToken is returned when a 401 cannot be recovered because the
// store holds no refresh token.
var ErrNoRefreshToken = goerrors.New("no refresh token available", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrPasswordMismatch blocks password reset submissions before any request
// is sent.
var ErrPasswordMismatch = goerrors.New("Passwords do not match.", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// apiErrorBody covers the error shapes the backend variants return:
// {detail}, {message}, {error}, with detail sometimes being a list.
type apiErrorBody struct {
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (b apiErrorBody) text() string {
	if len(b.Detail) > 0 {
		var s string
		if err := json.Unmarshal(b.Detail, &s); err == nil {
			return s
		}
		var list []string
		if err := json.Unmarshal(b.Detail, &list); err == nil {
			return strings.Join(list, ", ")
		}
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// errorFromResponse maps an HTTP error response to a rich error carrying a
// human-readable message keyed by status code, the category the status
// implies, and the raw server detail as metadata.
func errorFromResponse(status int, body []byte) *goerrors.Error {
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)
	detail := parsed.text()

	err := goerrors.New(messageForStatus(status, detail), categoryForStatus(status)).
		WithMetadata(map[string]any{
			"status_code": status,
			"detail":      detail,
		})

	switch status {
	case 400, 422:
		err = err.WithCode(goerrors.CodeBadRequest)
	case 401:
		err = err.WithCode(goerrors.CodeUnauthorized)
	case 404:
		err = err.WithCode(goerrors.CodeNotFound)
	case 409:
		err = err.WithCode(goerrors.CodeConflict)
	default:
		err = err.WithCode(goerrors.CodeInternal)
	}

	return err
}

func categoryForStatus(status int) goerrors.Category {
	switch {
	case status == 401 || status == 403:
		return goerrors.CategoryAuth
	case status == 404:
		return goerrors.CategoryNotFound
	case status == 409:
		return goerrors.CategoryConflict
	case status == 400 || status == 422:
		return goerrors.CategoryValidation
	default:
		return goerrors.CategoryInternal
	}
}

// messageForStatus mirrors the message table the web client showed users,
// preferring specific server detail where it reads better than the generic
// line.
func messageForStatus(status int, detail string) string {
	lower := strings.ToLower(detail)

	switch status {
	case 400:
		if detail != "" {
			return detail
		}
		return "Invalid request. Please check your input."
	case 401:
		if strings.Contains(lower, "incorrect") ||
			strings.Contains(lower, "invalid credentials") ||
			strings.Contains(lower, "wrong password") {
			return "Incorrect email or password"
		}
		if strings.Contains(lower, "email") {
			return "Email not found. Please check your email or sign up."
		}
		if detail != "" {
			return detail
		}
		return "Authentication failed. Please check your credentials."
	case 403:
		if strings.Contains(lower, "disabled") || strings.Contains(lower, "inactive") {
			return "Your account has been disabled. Please contact support."
		}
		return "Access denied. You don't have permission to perform this action."
	case 404:
		if strings.Contains(lower, "user") || strings.Contains(lower, "account") {
			return "Account not found. Please check your email or sign up."
		}
		if strings.Contains(lower, "email") {
			return "Email not registered. Please sign up first."
		}
		if detail != "" {
			return detail
		}
		return "Resource not found."
	case 409:
		if strings.Contains(lower, "email") || strings.Contains(lower, "already exists") {
			return "This email is already registered. Please login or use a different email."
		}
		if detail != "" {
			return detail
		}
		return "Conflict. This resource already exists."
	case 422:
		if detail != "" {
			return detail
		}
		return "Validation error. Please check all fields."
	case 429:
		return "Too many requests. Please wait a moment and try again."
	default:
		if status >= 500 {
			return "Server error. Something went wrong on our end. Please try again later."
		}
		if detail != "" {
			return detail
		}
		return "An unexpected error occurred"
	}
}

// StatusFromError extracts the HTTP status an API error carried, or 0.
func StatusFromError(err error) int {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return 0
	}
	if richErr.Metadata == nil {
		return 0
	}
	if status, ok := richErr.Metadata["status_code"].(int); ok {
		return status
	}
	return 0
}

// IsUnauthorizedError reports whether err represents an HTTP 401.
func IsUnauthorizedError(err error) bool {
	return StatusFromError(err) == 401
}

// IsNetworkError reports whether the request never received a response.
func IsNetworkError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeNetworkFailure
}

// ErrorMessage resolves the string surfaced to users for any error the
// managers produce.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}
