package authclient

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"
)

type contextKey string

// retriedRequestKey marks a replayed request so it can never trigger a
// second refresh cycle.
const retriedRequestKey contextKey = "authclient.retried"

// refreshGroupKey collapses concurrent refresh attempts into one call.
const refreshGroupKey = "token-refresh"

// RefreshFunc exchanges a refresh token for a new token pair. It must hit
// the refresh endpoint directly, outside the intercepted client.
type RefreshFunc func(ctx context.Context, refreshToken string) (*TokenPair, error)

// Transport is an http.RoundTripper that attaches the bearer token to every
// outgoing request and performs a single deduplicated refresh-and-retry when
// a response comes back 401.
//
// Concurrent requests failing inside the same refresh window all wait on the
// one in-flight refresh and are replayed with the new token; exactly one
// refresh call reaches the backend per window.
type Transport struct {
	Base       http.RoundTripper
	Store      TokenStore
	Refresh    RefreshFunc
	Navigator  Navigator
	LoginRoute string
	Logger     Logger

	group singleflight.Group
}

var _ http.RoundTripper = (*Transport)(nil)

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) logger() Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return defLogger{}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	outgoing := req.Clone(req.Context())
	if token := t.Store.Get(); token != "" {
		outgoing.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base().RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A replayed request keeps its 401, otherwise a rotating token could
	// loop forever.
	if req.Context().Value(retriedRequestKey) != nil {
		return resp, nil
	}

	refreshToken := t.Store.GetRefresh()
	if refreshToken == "" {
		// Nothing to recover with, the caller sees the original 401.
		return resp, nil
	}

	pair, refreshErr := t.refreshOnce(req.Context(), refreshToken)
	if refreshErr != nil {
		t.logger().Warn("token refresh failed, clearing session: %v", refreshErr)
		if clearErr := t.Store.Clear(); clearErr != nil {
			t.logger().Error("failed to clear token store: %v", clearErr)
		}
		t.navigateToLogin()
		return resp, nil
	}

	drain(resp)

	retry := req.Clone(context.WithValue(req.Context(), retriedRequestKey, true))
	retry.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}

	return t.base().RoundTrip(retry)
}

// refreshOnce serializes callers behind a single in-flight refresh call.
func (t *Transport) refreshOnce(ctx context.Context, refreshToken string) (*TokenPair, error) {
	result, err, _ := t.group.Do(refreshGroupKey, func() (any, error) {
		pair, err := t.Refresh(ctx, refreshToken)
		if err != nil {
			return nil, err
		}
		if err := t.Store.Set(pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, err
		}
		return pair, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*TokenPair), nil
}

func (t *Transport) navigateToLogin() {
	nav := t.Navigator
	if nav == nil {
		nav = noopNavigator{}
	}

	route := t.LoginRoute
	if route == "" {
		route = "/login"
	}

	nav.Navigate(route)
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
