package authclient

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// PasswordResetManager drives the email-based reset flow against the
// backend. The reset token travels by email; the client only ever relays it.
type PasswordResetManager struct {
	client *Client
	logger Logger
}

// NewPasswordResetManager builds a reset manager over the shared client.
func NewPasswordResetManager(client *Client) *PasswordResetManager {
	return &PasswordResetManager{
		client: client,
		logger: defLogger{},
	}
}

func (p *PasswordResetManager) WithLogger(logger Logger) *PasswordResetManager {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Forgot requests a reset email and returns the server's confirmation
// message.
func (p *PasswordResetManager) Forgot(ctx context.Context, email string) (string, error) {
	payload := ForgotPasswordRequest{Email: email}
	if err := payload.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid forgot password payload")
	}

	resp := &MessageResponse{}
	if err := p.client.PostJSON(ctx, "/auth/forgot-password", payload, resp); err != nil {
		p.logger.Error("forgot password request failed: %v", err)
		return "", err
	}

	return resp.Text(), nil
}

// Reset finalizes a reset with the emailed token. A confirmation mismatch
// blocks the submission before any request is sent.
func (p *PasswordResetManager) Reset(ctx context.Context, token, password, passwordConfirm string) (string, error) {
	if password != passwordConfirm {
		return "", ErrPasswordMismatch
	}

	payload := ResetPasswordRequest{
		Token:           token,
		Password:        password,
		PasswordConfirm: passwordConfirm,
	}
	if err := payload.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid reset password payload")
	}

	resp := &MessageResponse{}
	if err := p.client.PostJSON(ctx, "/auth/reset-password", payload, resp); err != nil {
		p.logger.Error("reset password request failed: %v", err)
		return "", err
	}

	return resp.Text(), nil
}
