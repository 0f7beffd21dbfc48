package authclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/renthub-et/go-authclient"
)

func newProfileFixture(t *testing.T, handler http.Handler) *authclient.ProfileManager {
	t.Helper()
	srv := newTestServer(t, handler)
	store := authclient.NewMemoryTokenStore()
	require.NoError(t, store.Set("access-abc", "refresh-abc"))
	client := authclient.NewClient(testConfig(srv.URL), store, nil)
	return authclient.NewProfileManager(client)
}

func strPtr(s string) *string { return &s }

func TestProfileManagerFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, testUser(authclient.RoleTenant))
	})
	profiles := newProfileFixture(t, mux)

	profile, err := profiles.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", profile.Email)

	assert.Equal(t, profile, profiles.Profile())
	assert.False(t, profiles.IsLoading())
	assert.Empty(t, profiles.LastError())
}

func TestProfileManagerUpdateServerWins(t *testing.T) {
	serverProfile := testUser(authclient.RoleTenant)
	serverProfile.FullName = "Server Canonical Name"

	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		writeJSON(w, http.StatusOK, serverProfile)
	})
	profiles := newProfileFixture(t, mux)

	lang := authclient.LanguageAmharic
	updated, err := profiles.Update(context.Background(), authclient.ProfileUpdate{
		FullName:          strPtr("Requested Name"),
		PreferredLanguage: &lang,
	})
	require.NoError(t, err)

	assert.Equal(t, "Requested Name", gotBody["full_name"])
	assert.Equal(t, "am", gotBody["preferred_language"])
	assert.NotContains(t, gotBody, "phone_number", "unchanged fields must be omitted")

	assert.Equal(t, "Server Canonical Name", updated.FullName,
		"the server response is authoritative over the requested values")
	assert.Equal(t, "Server Canonical Name", profiles.Profile().FullName)
}

func TestProfileManagerUpdateWithPhotoUsesMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "New Name", r.FormValue("full_name"))

		file, header, err := r.FormFile("profile_photo")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "avatar.jpg", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake-jpeg-bytes", string(content))

		writeJSON(w, http.StatusOK, testUser(authclient.RoleTenant))
	})
	profiles := newProfileFixture(t, mux)

	_, err := profiles.Update(context.Background(), authclient.ProfileUpdate{
		FullName:      strPtr("New Name"),
		Photo:         strings.NewReader("fake-jpeg-bytes"),
		PhotoFilename: "avatar.jpg",
	})
	require.NoError(t, err)
}

func TestProfileManagerUpdateFailureKeepsLastProfile(t *testing.T) {
	failNext := false
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if failNext {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "Phone number is invalid"})
			return
		}
		writeJSON(w, http.StatusOK, testUser(authclient.RoleTenant))
	})
	profiles := newProfileFixture(t, mux)

	_, err := profiles.Fetch(context.Background())
	require.NoError(t, err)

	failNext = true
	_, err = profiles.Update(context.Background(), authclient.ProfileUpdate{
		PhoneNumber: strPtr("bogus"),
	})
	require.Error(t, err)

	assert.Equal(t, "Phone number is invalid", profiles.LastError())
	require.NotNil(t, profiles.Profile(), "a failed update must not drop the cached profile")
	assert.Equal(t, "test@example.com", profiles.Profile().Email)
	assert.False(t, profiles.IsLoading())
}
