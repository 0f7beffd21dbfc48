package authclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	authclient "github.com/renthub-et/go-authclient"
)

func testConfig(baseURL string) *authclient.AppConfig {
	return &authclient.AppConfig{
		APIBaseURL:          baseURL,
		LoginRoute:          "/login",
		LandingRoute:        "/",
		RequestTimeout:      5 * time.Second,
		AdminFrontendURL:    "https://admin.renthub.example",
		LandlordFrontendURL: "https://landlord.renthub.example",
		TenantFrontendURL:   "https://tenant.renthub.example",
	}
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func testUser(role authclient.Role) *authclient.UserProfile {
	return &authclient.UserProfile{
		ID:                "8b76076c-5eed-4aae-9e46-79b2fd001d21",
		Email:             "test@example.com",
		FullName:          "Abebe Kebede",
		Role:              role,
		IsActive:          true,
		PreferredLanguage: authclient.LanguageEnglish,
		PreferredCurrency: authclient.CurrencyETB,
	}
}

// recordingNavigator captures hard-redirect destinations.
type recordingNavigator struct {
	mu   sync.Mutex
	urls []string
}

func (r *recordingNavigator) Navigate(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
}

func (r *recordingNavigator) visited() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}
