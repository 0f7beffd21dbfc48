package authclient

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is the region used to parse national-format numbers.
const defaultPhoneRegion = "ET"

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required.Error("email required"),
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required.Error("password required"),
		),
	)
}

// SignupRequest is the registration payload
type SignupRequest struct {
	FullName          string   `form:"full_name" json:"full_name"`
	Email             string   `form:"email" json:"email"`
	Password          string   `form:"password" json:"password"`
	ConfirmPassword   string   `form:"confirm_password" json:"-"`
	PhoneNumber       string   `form:"phone_number" json:"phone_number,omitempty"`
	Role              Role     `form:"role" json:"role,omitempty"`
	PreferredLanguage Language `form:"preferred_language" json:"preferred_language,omitempty"`
	PreferredCurrency Currency `form:"preferred_currency" json:"preferred_currency,omitempty"`
}

// Validate will validate the payload
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.PhoneNumber, validation.By(validatePhoneNumber)),
		validation.Field(&r.Role, validation.By(validateOptionalRole)),
		validation.Field(&r.PreferredLanguage, validation.By(validateOptionalLanguage)),
		validation.Field(&r.PreferredCurrency, validation.By(validateOptionalCurrency)),
	)
}

// ForgotPasswordRequest holds the email a reset link is sent to
type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest finalizes an email-based password reset
type ResetPasswordRequest struct {
	Token           string `form:"token" json:"token"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"-"`
}

// Validate will validate the payload
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.PasswordConfirm,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

// ChangePasswordRequest is an authenticated password change
type ChangePasswordRequest struct {
	OldPassword string `form:"old_password" json:"old_password"`
	NewPassword string `form:"new_password" json:"new_password"`
}

// Validate will validate the payload
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
	)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

func validatePhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(s, defaultPhoneRegion)
	if err != nil {
		return errors.New("must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

func validateOptionalRole(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !IsValidRole(Role(s)) {
		return errors.New("must be a valid role")
	}
	return nil
}

func validateOptionalLanguage(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !IsValidLanguage(Language(s)) {
		return errors.New("must be a valid language")
	}
	return nil
}

func validateOptionalCurrency(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !IsValidCurrency(Currency(s)) {
		return errors.New("must be a valid currency")
	}
	return nil
}

// FormatValidationErrorToMap flattens an ozzo validation error into a
// field -> message map for JSON responses.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		for field, fieldErr := range fieldErrors {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}
