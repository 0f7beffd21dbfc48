// Package authclient implements the authentication and profile layer of the
// RentHub rental platform's client side: token persistence, an HTTP client
// with automatic refresh-on-401, session lifecycle management, profile
// access, and the route guard / hand-off glue for the per-role shell
// applications.
//
// Session lifecycle:
//   - The Manager owns the in-memory session state and moves it between the
//     anonymous and authenticated statuses. It is constructor-injected;
//     subscribers receive a snapshot after every change.
//   - Tokens live in a TokenStore (file-backed by default). The store is the
//     single source of truth for whether a session is active; no expiry is
//     tracked locally.
//
// Refresh-on-401:
//   - The Transport attaches the bearer token to every request and, on a
//     401, performs exactly one refresh attempt per window. Concurrent
//     failures are collapsed behind a singleflight call and replayed with
//     the new token. A failed refresh clears the store and hands the host a
//     navigation to the login route.
//
// Role hand-off:
//   - RoleRedirectPolicy maps roles to the independently deployed frontend
//     serving them and builds the callback URL that carries the token
//     across. Navigation is a side effect the host performs.
package authclient
