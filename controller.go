package authclient

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// AuthControllerRoutes are the paths the shell applications call.
type AuthControllerRoutes struct {
	Login          string
	Logout         string
	Register       string
	ForgotPassword string
	ResetPassword  string
	ChangePassword string
	Callback       string
	Profile        string
}

// AuthController exposes the session, profile and password-reset flows as
// JSON endpoints for the microfrontend shells.
type AuthController struct {
	Debug    bool
	Logger   Logger
	Sessions *Manager
	Profiles *ProfileManager
	Resets   *PasswordResetManager
	Policy   *RoleRedirectPolicy
	Routes   *AuthControllerRoutes

	LandingRoute string
	LoginRoute   string
}

// AuthControllerOption mutates controller construction.
type AuthControllerOption func(*AuthController) *AuthController

// WithSessionManager injects the session manager.
func WithSessionManager(sessions *Manager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Sessions = sessions
		return c
	}
}

// WithProfileManager injects the profile manager.
func WithProfileManager(profiles *ProfileManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Profiles = profiles
		return c
	}
}

// WithPasswordResetManager injects the reset manager.
func WithPasswordResetManager(resets *PasswordResetManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Resets = resets
		return c
	}
}

// WithRedirectPolicy injects the role redirect policy.
func WithRedirectPolicy(policy *RoleRedirectPolicy) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Policy = policy
		return c
	}
}

// WithControllerLogger overrides the default logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithControllerDebug enables request payload dumps.
func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// NewAuthController builds a controller with default routes.
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		LandingRoute: "/",
		LoginRoute:   "/login",
		Routes: &AuthControllerRoutes{
			Login:          "/login",
			Logout:         "/logout",
			Register:       "/register",
			ForgotPassword: "/forgot-password",
			ResetPassword:  "/reset-password",
			ChangePassword: "/change-password",
			Callback:       "/auth/callback",
			Profile:        "/profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Sessions == nil {
		panic("Missing session manager in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the controller on a fiber app.
func RegisterAuthRoutes(app *fiber.App, controller *AuthController) {
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Logout, controller.LogoutPost)
	app.Post(controller.Routes.Register, controller.RegisterPost)
	app.Post(controller.Routes.ForgotPassword, controller.ForgotPasswordPost)
	app.Post(controller.Routes.ResetPassword, controller.ResetPasswordPost)
	app.Post(controller.Routes.ChangePassword, controller.ChangePasswordPost)
	app.Get(controller.Routes.Callback, controller.AuthCallbackGet)

	if controller.Profiles != nil {
		app.Get(controller.Routes.Profile, controller.ProfileGet)
		app.Put(controller.Routes.Profile, controller.ProfilePut)
	}
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	user, err := a.Sessions.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	redirectURL := a.LandingRoute
	if a.Policy != nil {
		if u, ok := a.Policy.CallbackURL(user.Role, a.Sessions.Current().AccessToken); ok {
			redirectURL = u
		}
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"redirect_url": redirectURL,
	})
}

func (a *AuthController) LogoutPost(c *fiber.Ctx) error {
	a.Sessions.Logout(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	// The confirmation field is stripped from the upstream payload, so the
	// inbound body is parsed through a mirror with the full tag set.
	body := struct {
		FullName          string   `form:"full_name" json:"full_name"`
		Email             string   `form:"email" json:"email"`
		Password          string   `form:"password" json:"password"`
		ConfirmPassword   string   `form:"confirm_password" json:"confirm_password"`
		PhoneNumber       string   `form:"phone_number" json:"phone_number"`
		Role              Role     `form:"role" json:"role"`
		PreferredLanguage Language `form:"preferred_language" json:"preferred_language"`
		PreferredCurrency Currency `form:"preferred_currency" json:"preferred_currency"`
	}{}

	if err := c.BodyParser(&body); err != nil {
		a.Logger.Error("register parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	payload := &SignupRequest{
		FullName:          body.FullName,
		Email:             body.Email,
		Password:          body.Password,
		ConfirmPassword:   body.ConfirmPassword,
		PhoneNumber:       body.PhoneNumber,
		Role:              body.Role,
		PreferredLanguage: body.PreferredLanguage,
		PreferredCurrency: body.PreferredCurrency,
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": FormatValidationErrorToMap(err),
		})
	}

	user, err := a.Sessions.Signup(c.Context(), *payload)
	if err != nil {
		return a.renderError(c, err)
	}

	// Registration does not authenticate; the shell navigates to login.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":         user,
		"redirect_url": a.LoginRoute,
	})
}

func (a *AuthController) ForgotPasswordPost(c *fiber.Ctx) error {
	payload := new(ForgotPasswordRequest)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	message, err := a.Resets.Forgot(c.Context(), payload.Email)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": message})
}

func (a *AuthController) ResetPasswordPost(c *fiber.Ctx) error {
	body := struct {
		Token           string `form:"token" json:"token"`
		Password        string `form:"password" json:"password"`
		PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
	}{}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	message, err := a.Resets.Reset(c.Context(), body.Token, body.Password, body.PasswordConfirm)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": message})
}

func (a *AuthController) ChangePasswordPost(c *fiber.Ctx) error {
	payload := new(ChangePasswordRequest)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	if err := a.Sessions.ChangePassword(c.Context(), payload.OldPassword, payload.NewPassword); err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully."})
}

// AuthCallbackGet handles the SSO/hand-off entry: an externally obtained
// token arrives as a query parameter, the session is hydrated from it.
func (a *AuthController) AuthCallbackGet(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Redirect(a.LoginRoute, fiber.StatusFound)
	}

	if _, err := a.Sessions.SetTokenAndFetchUser(c.Context(), token, ""); err != nil {
		a.Logger.Warn("auth callback rejected: %v", err)
		return c.Redirect(a.LoginRoute, fiber.StatusFound)
	}

	return c.Redirect(a.LandingRoute, fiber.StatusSeeOther)
}

func (a *AuthController) ProfileGet(c *fiber.Ctx) error {
	profile, err := a.Profiles.Fetch(c.Context())
	if err != nil {
		return a.renderError(c, err)
	}
	return c.JSON(profile)
}

func (a *AuthController) ProfilePut(c *fiber.Ctx) error {
	body := struct {
		FullName          *string   `json:"full_name"`
		PhoneNumber       *string   `json:"phone_number"`
		PreferredLanguage *Language `json:"preferred_language"`
		PreferredCurrency *Currency `json:"preferred_currency"`
	}{}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
		})
	}

	profile, err := a.Profiles.Update(c.Context(), ProfileUpdate{
		FullName:          body.FullName,
		PhoneNumber:       body.PhoneNumber,
		PreferredLanguage: body.PreferredLanguage,
		PreferredCurrency: body.PreferredCurrency,
	})
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profile)
}

// renderError maps a manager error to a JSON response, reusing the HTTP
// status the backend reported where one exists.
func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)

	if status == 0 {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			switch richErr.Category {
			case goerrors.CategoryValidation:
				status = fiber.StatusUnprocessableEntity
			case goerrors.CategoryAuth:
				status = fiber.StatusUnauthorized
			case goerrors.CategoryOperation:
				status = fiber.StatusBadGateway
			default:
				status = fiber.StatusInternalServerError
			}
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": ErrorMessage(err),
	})
}
