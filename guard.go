package authclient

import (
	"github.com/gofiber/fiber/v2"
)

// SessionUserKey is the Locals key protected handlers read the user from.
const SessionUserKey = "session_user"

// GuardConfig configures a route guard instance.
type GuardConfig struct {
	Sessions     SessionAuthenticator
	LoginRoute   string
	LandingRoute string
	// RequiredRole restricts the route to one role; empty admits any
	// authenticated user.
	RequiredRole Role
	Logger       Logger
}

// RouteGuard gates protected routes on session state. While the session is
// still bootstrapping it answers neutrally instead of redirecting, so a
// reload does not flicker through the login route. Unauthenticated requests
// go to login, wrong-role requests to the landing route, everything else
// proceeds with the user stashed in Locals.
func RouteGuard(cfg GuardConfig) fiber.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	loginRoute := cfg.LoginRoute
	if loginRoute == "" {
		loginRoute = "/login"
	}

	landingRoute := cfg.LandingRoute
	if landingRoute == "" {
		landingRoute = "/"
	}

	return func(c *fiber.Ctx) error {
		state := cfg.Sessions.Current()

		if state.IsLoading {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "loading",
			})
		}

		if !state.IsAuthenticated() {
			logger.Debug("guard rejecting %s, no session", c.OriginalURL())
			return c.Redirect(loginRoute, fiber.StatusFound)
		}

		if cfg.RequiredRole != "" {
			if state.User == nil || state.User.Role != cfg.RequiredRole {
				logger.Info("guard redirecting %s, role mismatch", c.OriginalURL())
				return c.Redirect(landingRoute, fiber.StatusSeeOther)
			}
		}

		c.Locals(SessionUserKey, state.User)
		return c.Next()
	}
}

// GuardedUser returns the profile the guard stored for the request, or nil
// on unguarded routes.
func GuardedUser(c *fiber.Ctx) *UserProfile {
	user, _ := c.Locals(SessionUserKey).(*UserProfile)
	return user
}
