package authclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/renthub-et/go-authclient"
)

func TestRoleHelpers(t *testing.T) {
	for _, role := range authclient.GetAllRoles() {
		assert.True(t, authclient.IsValidRole(role), "role %s", role)
	}
	assert.False(t, authclient.IsValidRole("superuser"))
	assert.False(t, authclient.IsValidRole(""))

	role, ok := authclient.ParseRole("landlord")
	require.True(t, ok)
	assert.Equal(t, authclient.RoleLandlord, role)

	_, ok = authclient.ParseRole("root")
	assert.False(t, ok)
}

func TestLanguageAndCurrencyHelpers(t *testing.T) {
	assert.True(t, authclient.IsValidLanguage(authclient.LanguageOromo))
	assert.False(t, authclient.IsValidLanguage("fr"))

	assert.True(t, authclient.IsValidCurrency(authclient.CurrencyUSD))
	assert.False(t, authclient.IsValidCurrency("EUR"))
}

func TestUserProfileUUID(t *testing.T) {
	user := testUser(authclient.RoleTenant)
	id, err := user.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.String())

	user.ID = "not-a-uuid"
	_, err = user.UserUUID()
	assert.Error(t, err)
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	nav := authclient.NavigatorFunc(func(url string) { got = url })
	nav.Navigate("/login")
	assert.Equal(t, "/login", got)
}

func TestMessageResponseText(t *testing.T) {
	assert.Equal(t, "from message", authclient.MessageResponse{Message: "from message"}.Text())
	assert.Equal(t, "from detail", authclient.MessageResponse{Detail: "from detail"}.Text())
	assert.Equal(t, "from message", authclient.MessageResponse{
		Message: "from message",
		Detail:  "from detail",
	}.Text())
	assert.Empty(t, authclient.MessageResponse{}.Text())
}
