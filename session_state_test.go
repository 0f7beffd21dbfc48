package authclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authclient "github.com/renthub-et/go-authclient"
)

func TestSessionStateIsAuthenticated(t *testing.T) {
	assert.False(t, authclient.SessionState{}.IsAuthenticated())
	assert.False(t, authclient.SessionState{
		Status: authclient.StatusAuthenticated,
	}.IsAuthenticated(), "status without a token is not a session")
	assert.True(t, authclient.SessionState{
		AccessToken: "access-abc",
	}.IsAuthenticated())
}

func TestSessionStateSnapshotsAreIndependent(t *testing.T) {
	store := authclient.NewMemoryTokenStore()
	client := authclient.NewClient(testConfig("http://localhost:8000/api/v1"), store, nil)
	mgr := authclient.NewManager(client, store)

	first := mgr.Current()
	first.Error = "mutated locally"

	assert.Empty(t, mgr.Current().Error, "Current must return a copy")
	assert.Equal(t, authclient.StatusAnonymous, mgr.Current().Status)
}
