package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenHints are the claims the client reads out of a bearer token without
// verifying it. The client never validates signatures; hints only seed
// session state during bootstrap, the server remains the authority on
// whether a token is still good.
type TokenHints struct {
	Subject   string
	UserID    string
	Role      Role
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

type hintClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// PeekClaims decodes a JWT payload without signature verification.
func PeekClaims(raw string) (*TokenHints, error) {
	claims := &hintClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to decode token claims")
	}

	hints := &TokenHints{
		Subject: claims.RegisteredClaims.Subject,
		UserID:  claims.UID,
		Role:    Role(claims.UserRole),
	}

	if hints.UserID == "" {
		hints.UserID = hints.Subject
	}

	if claims.RegisteredClaims.IssuedAt != nil {
		t := claims.RegisteredClaims.IssuedAt.Time
		hints.IssuedAt = &t
	}

	if claims.RegisteredClaims.ExpiresAt != nil {
		t := claims.RegisteredClaims.ExpiresAt.Time
		hints.ExpiresAt = &t
	}

	return hints, nil
}
