package authclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/renthub-et/go-authclient"
)

// stubSessions serves a fixed session state to the guard.
type stubSessions struct {
	state authclient.SessionState
}

func (s *stubSessions) Login(context.Context, string, string) (*authclient.UserProfile, error) {
	return nil, nil
}

func (s *stubSessions) Signup(context.Context, authclient.SignupRequest) (*authclient.UserProfile, error) {
	return nil, nil
}

func (s *stubSessions) Logout(context.Context) {}

func (s *stubSessions) SetTokenAndFetchUser(context.Context, string, string) (*authclient.UserProfile, error) {
	return nil, nil
}

func (s *stubSessions) Current() authclient.SessionState {
	return s.state
}

func guardedApp(t *testing.T, cfg authclient.GuardConfig) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/dashboard", authclient.RouteGuard(cfg), func(c *fiber.Ctx) error {
		user := authclient.GuardedUser(c)
		require.NotNil(t, user)
		return c.JSON(fiber.Map{"email": user.Email})
	})
	return app
}

func authenticatedState(role authclient.Role) authclient.SessionState {
	return authclient.SessionState{
		Status:      authclient.StatusAuthenticated,
		User:        testUser(role),
		AccessToken: "access-abc",
	}
}

func TestRouteGuardLoadingSession(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions: &stubSessions{state: authclient.SessionState{IsLoading: true}},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"a bootstrapping session must not redirect")
}

func TestRouteGuardUnauthenticated(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions:   &stubSessions{state: authclient.SessionState{Status: authclient.StatusAnonymous}},
		LoginRoute: "/login",
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouteGuardRoleMismatch(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions:     &stubSessions{state: authenticatedState(authclient.RoleTenant)},
		LandingRoute: "/",
		RequiredRole: authclient.RoleAdmin,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestRouteGuardAdmitsMatchingRole(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions:     &stubSessions{state: authenticatedState(authclient.RoleAdmin)},
		RequiredRole: authclient.RoleAdmin,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuardAdmitsAnyRoleWhenUnrestricted(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions: &stubSessions{state: authenticatedState(authclient.RoleBroker)},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuardDefaultRoutes(t *testing.T) {
	app := guardedApp(t, authclient.GuardConfig{
		Sessions: &stubSessions{state: authclient.SessionState{Status: authclient.StatusAnonymous}},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
